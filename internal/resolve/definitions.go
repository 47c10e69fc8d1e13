package resolve

import (
	"github.com/vk/keygridgo/internal/diag"
	"github.com/vk/keygridgo/internal/model"
	"github.com/vk/keygridgo/internal/syntax"
)

// collectKeys registers every custom key and returns the backends named by
// their output clauses, in order of first appearance. Repeated names keep
// the first definition.
func (r *resolver) collectKeys(defs []*syntax.KeyDef) []model.Backend {
	var backends []model.Backend
	seen := make(map[string]bool)

	for _, def := range defs {
		if prev, dup := r.keys[def.Name]; dup {
			r.errorf(diag.DuplicateDefinition, def.NameRange,
				"key %q is already defined at line %d", def.Name, prev.Range.Start.Line)
			continue
		}

		key := &model.CustomKey{
			Name:      def.Name,
			Templates: make(map[string]string, len(def.Outputs)),
			Range:     def.NameRange,
		}
		for _, out := range def.Outputs {
			if _, dup := key.Templates[out.Backend]; dup {
				r.errorf(diag.DuplicateDefinition, out.BackendRange,
					"key %q already has an output for backend %q", def.Name, out.Backend)
				continue
			}
			key.Templates[out.Backend] = out.Template
			if !seen[out.Backend] {
				seen[out.Backend] = true
				backends = append(backends, model.Backend{Name: out.Backend, Range: out.BackendRange})
			}
		}
		r.keys[def.Name] = key
		r.keyList = append(r.keyList, def.Name)
	}
	return backends
}

// collectLayers assigns layer indices in source order and drops repeated
// names, so that every @[layer] reference has exactly one target.
func (r *resolver) collectLayers(defs []*syntax.LayerDef) []*syntax.LayerDef {
	kept := make([]*syntax.LayerDef, 0, len(defs))
	first := make(map[string]*syntax.LayerDef, len(defs))

	for _, def := range defs {
		if prev, dup := first[def.Name]; dup {
			r.errorf(diag.DuplicateDefinition, def.NameRange,
				"layer %q is already defined at line %d", def.Name, prev.NameRange.Start.Line)
			continue
		}
		first[def.Name] = def
		r.layers[def.Name] = len(kept)
		kept = append(kept, def)
	}
	return kept
}

func (r *resolver) layerNames() []string {
	names := make([]string, len(r.layers))
	for name, i := range r.layers {
		names[i] = name
	}
	return names
}
