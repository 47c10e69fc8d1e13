// Package rust renders backend tables as a keyberon-style Rust source file: a
// rectangular action matrix per layer, plus the combos mapped onto extra
// matrix slots.
package rust

import (
	"github.com/vk/keygridgo/internal/registry"
)

// FormatName is the value of `format` in a backend table that selects this
// renderer.
const FormatName = "rust"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the renderer with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFormat(FormatName, &Renderer{})
}
