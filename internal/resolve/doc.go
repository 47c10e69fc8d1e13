// Package resolve binds parsed layers to the physical geometry and to the
// symbol tables, producing the backend-agnostic model.
//
// Resolution never stops at the first problem: every layer, row and cell is
// visited once and all reference and geometry diagnostics are returned
// together. The returned model is complete in shape even when diagnostics
// are present; callers decide whether it is usable.
package resolve
