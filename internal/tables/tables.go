package tables

import (
	"context"
	"slices"
	"sort"
)

// Loader reads table files and produces a merged, validated Tables value.
type Loader interface {
	// Load reads the built-in tables followed by every extra path, in order.
	// Later files replace same-named backends and extend the symbol sets.
	Load(ctx context.Context, paths ...string) (*Tables, error)
}

// Symbols lists every identifier a layer may reference without declaring it.
type Symbols struct {
	// Named keys usable as a tap (esc, space, f1, ...).
	Named []string
	// Modifiers usable as a tap or after '@'.
	Modifiers []string
	// Chars holds every single-character literal a cell may use.
	Chars []string
}

// Backend is the code table of one firmware target.
type Backend struct {
	Name string
	// Format selects the renderer registered in the registry.
	Format string
	// Extension is the output file extension, without the dot.
	Extension string

	NoOp        string
	Transparent string
	// HoldTap wraps a tap and a hold; it contains {tap} and {hold}.
	HoldTap string
	// Layer switches layers while held; it contains {index} and/or {name}.
	Layer string

	Named     map[string]string
	Modifiers map[string]string
	Chars     map[string]string
	Options   map[string]string
}

// Option returns the named option or def when it is not set.
func (b *Backend) Option(name, def string) string {
	if v, ok := b.Options[name]; ok && v != "" {
		return v
	}
	return def
}

// Tables is the merged result of every loaded table file.
type Tables struct {
	Symbols  Symbols
	Backends map[string]*Backend
}

// New returns an empty Tables value.
func New() *Tables {
	return &Tables{Backends: make(map[string]*Backend)}
}

// Backend returns the table of the named backend.
func (t *Tables) Backend(name string) (*Backend, bool) {
	b, ok := t.Backends[name]
	return b, ok
}

// BackendNames returns the names of all known backends, sorted.
func (t *Tables) BackendNames() []string {
	names := make([]string, 0, len(t.Backends))
	for name := range t.Backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsNamedKey reports whether name is a built-in named key.
func (t *Tables) IsNamedKey(name string) bool {
	return slices.Contains(t.Symbols.Named, name)
}

// IsModifier reports whether name is a built-in modifier.
func (t *Tables) IsModifier(name string) bool {
	return slices.Contains(t.Symbols.Modifiers, name)
}

// IsChar reports whether the character has a built-in mapping.
func (t *Tables) IsChar(r rune) bool {
	return slices.Contains(t.Symbols.Chars, string(r))
}

// NamedKeys returns the named keys, for suggestions.
func (t *Tables) NamedKeys() []string {
	return t.Symbols.Named
}

// Modifiers returns the modifiers, for suggestions.
func (t *Tables) Modifiers() []string {
	return t.Symbols.Modifiers
}
