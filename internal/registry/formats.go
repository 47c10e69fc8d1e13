package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/keygridgo/internal/emit"
)

// RegisterFormat registers the renderer of an output format.
func (r *Registry) RegisterFormat(name string, renderer emit.Renderer) {
	if _, exists := r.FormatRegistry[name]; exists {
		panic(fmt.Sprintf("renderer for format '%s' already registered", name))
	}
	slog.Debug("Registering output format.", "format", name)
	r.FormatRegistry[name] = renderer
}

// Renderer implements emit.Formats.
func (r *Registry) Renderer(format string) (emit.Renderer, bool) {
	renderer, ok := r.FormatRegistry[format]
	return renderer, ok
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.FormatRegistry))
	for name := range r.FormatRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
