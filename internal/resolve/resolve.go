package resolve

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/vk/keygridgo/internal/diag"
	"github.com/vk/keygridgo/internal/model"
	"github.com/vk/keygridgo/internal/syntax"
)

// Symbols is the read-only view of the built-in tables the resolver needs.
type Symbols interface {
	IsNamedKey(name string) bool
	IsModifier(name string) bool
	IsChar(r rune) bool
	NamedKeys() []string
	Modifiers() []string
}

// resolver carries the lookup state of one Resolve call.
type resolver struct {
	geo     *model.Geometry
	sym     Symbols
	keys    map[string]*model.CustomKey
	keyList []string // declared key names in source order
	layers  map[string]int
	used    map[string]bool
	diags   hcl.Diagnostics

	// truncated documents lost their tail, so names may be declared or
	// used past the cut. cut is the layer the source ended in.
	truncated bool
	cut       *syntax.LayerDef
}

// Resolve validates doc against geo and sym and builds the model.
func Resolve(doc *syntax.Document, geo *model.Geometry, sym Symbols) (*model.Model, hcl.Diagnostics) {
	r := &resolver{
		geo:    geo,
		sym:    sym,
		keys:   make(map[string]*model.CustomKey),
		layers: make(map[string]int),
		used:   make(map[string]bool),

		truncated: doc.Truncated,
	}
	if doc.Truncated && len(doc.Layers) > 0 {
		r.cut = doc.Layers[len(doc.Layers)-1]
	}

	m := &model.Model{
		Source:     doc.Range.Filename,
		Geometry:   geo,
		CustomKeys: r.keys,
	}
	m.Backends = r.collectKeys(doc.Keys)
	defs := r.collectLayers(doc.Layers)

	for _, def := range defs {
		layer, combos := r.resolveLayer(def)
		m.Layers = append(m.Layers, layer)
		m.Combos = append(m.Combos, combos...)
	}

	for _, name := range r.keyList {
		if !r.used[name] && !r.truncated {
			key := r.keys[name]
			r.diags = append(r.diags, diag.Warningf(diag.UnusedKey, key.Range, "key %q is declared but never used", name))
		}
	}
	return m, r.diags
}

func (r *resolver) errorf(code diag.Code, subject hcl.Range, format string, args ...any) {
	r.diags = append(r.diags, diag.Errorf(code, subject, format, args...))
}
