// Package emit turns a resolved model into one text artifact per backend.
//
// Emission has two phases. Preparation is sequential: for every backend the
// model is translated into a Table whose cells already hold the backend's
// code, and every missing mapping is reported as a diagnostic. Rendering
// only starts when preparation produced no errors; each backend's Table is
// handed to the Renderer registered for the backend's format, and the
// renderers run concurrently. Artifacts are returned in the order the
// backends were first named in the source.
package emit
