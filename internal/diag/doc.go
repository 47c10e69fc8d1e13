// Package diag defines the diagnostic taxonomy shared by every compilation
// stage. Diagnostics are plain hcl.Diagnostic values; the stage-specific code
// travels in the Extra field as an *Info so that reporting, ordering and
// deduplication can work across stages without a custom error hierarchy.
package diag
