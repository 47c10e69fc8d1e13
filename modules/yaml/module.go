// Package yaml renders backend tables as keymap-drawer YAML: every layer as
// rows of {tap, hold} keys, and combos as flat key positions.
package yaml

import (
	"github.com/vk/keygridgo/internal/registry"
)

// FormatName is the value of `format` in a backend table that selects this
// renderer.
const FormatName = "yaml"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the renderer with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFormat(FormatName, &Renderer{})
}
