// Package tables defines the format-agnostic model of the built-in key
// tables: the symbol sets the resolver validates against, and the
// per-backend code tables the emitter renders with.
//
// Tables are loaded once by a Loader (see the `hcl` package for the concrete
// implementation), are immutable afterwards and are passed to the resolver
// and emitter as parameters.
package tables
