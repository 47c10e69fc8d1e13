package resolve

import (
	"fmt"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/keygridgo/internal/diag"
	"github.com/vk/keygridgo/internal/didyoumean"
	"github.com/vk/keygridgo/internal/model"
	"github.com/vk/keygridgo/internal/syntax"
)

// resolveCell turns a cell into an action. Unresolvable parts are reported
// and replaced by a transparent tap or dropped hold.
func (r *resolver) resolveCell(cell *syntax.Cell) model.Action {
	if cell.Kind == syntax.Combo {
		return r.resolveCell(cell.Inner)
	}

	action := model.Action{Tap: r.resolveTap(cell)}
	if cell.Hold != nil {
		action.Hold = r.resolveHold(cell.Hold)
	}
	return action
}

func (r *resolver) resolveTap(cell *syntax.Cell) model.Tap {
	tap := model.Tap{Kind: model.TapTransparent, Range: cell.Range}

	switch cell.Kind {
	case syntax.Transparent:
	case syntax.Literal:
		if cell.Invalid {
			break
		}
		if !r.sym.IsChar(cell.Char) {
			r.errorf(diag.UnresolvedReference, cell.Range, "unknown character %q", cell.Char)
			break
		}
		tap.Kind = model.TapLiteral
		tap.Char = cell.Char
	case syntax.Named:
		switch {
		case r.sym.IsNamedKey(cell.Name) || r.sym.IsModifier(cell.Name):
			tap.Kind = model.TapNamed
			tap.Name = cell.Name
		case r.keys[cell.Name] != nil:
			r.used[cell.Name] = true
			tap.Kind = model.TapCustom
			tap.Name = cell.Name
		default:
			candidates := slices.Concat(r.sym.NamedKeys(), r.sym.Modifiers(), r.keyList)
			r.unresolved(cell.Range, "key", cell.Name, candidates)
		}
	}
	return tap
}

func (r *resolver) resolveHold(h *syntax.Hold) *model.Hold {
	switch h.Kind {
	case syntax.HoldLayer:
		index, ok := r.layers[h.Name]
		if !ok {
			r.unresolved(h.Range, "layer", h.Name, r.layerNames())
			return nil
		}
		return &model.Hold{Kind: model.HoldLayer, Name: h.Name, Layer: index, Range: h.Range}
	case syntax.HoldName:
		if r.sym.IsModifier(h.Name) {
			return &model.Hold{Kind: model.HoldModifier, Name: h.Name, Range: h.Range}
		}
		if r.keys[h.Name] != nil {
			r.used[h.Name] = true
			return &model.Hold{Kind: model.HoldCustom, Name: h.Name, Range: h.Range}
		}
		candidates := slices.Concat(r.sym.Modifiers(), r.keyList)
		r.unresolved(h.Range, "modifier or key", h.Name, candidates)
	}
	return nil
}

// unresolved reports an unknown identifier, with a suggestion when one of
// the candidates is close enough. A truncated document may declare the name
// after the cut, so nothing is reported for it.
func (r *resolver) unresolved(subject hcl.Range, kind, name string, candidates []string) {
	if r.truncated {
		return
	}
	d := diag.Errorf(diag.UnresolvedReference, subject, "unknown %s %q", kind, name)
	if s := didyoumean.Suggest(name, candidates); s != "" {
		d.Detail = fmt.Sprintf("did you mean %q?", s)
	}
	r.diags = append(r.diags, d)
}
