package registry

import (
	"github.com/vk/keygridgo/internal/emit"
)

// Module is the interface that all output format modules must implement to
// be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the registered renderers of a single application instance.
type Registry struct {
	FormatRegistry map[string]emit.Renderer
}

var _ emit.Formats = (*Registry)(nil)

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		FormatRegistry: make(map[string]emit.Renderer),
	}
}

// RegisterModules lets every module register itself.
func (r *Registry) RegisterModules(modules ...Module) {
	for _, m := range modules {
		m.Register(r)
	}
}
