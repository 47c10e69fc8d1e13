package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/keygridgo/internal/diag"
	"github.com/vk/keygridgo/internal/model"
	"github.com/vk/keygridgo/internal/tables"
)

// preparer builds the Table of one backend.
type preparer struct {
	m       *model.Model
	backend *tables.Backend
	// reported holds the custom keys already reported as missing a template
	// for this backend.
	reported map[string]bool
	diags    hcl.Diagnostics
}

func prepare(m *model.Model, backend *tables.Backend) (*Table, hcl.Diagnostics) {
	p := &preparer{m: m, backend: backend, reported: make(map[string]bool)}

	t := &Table{
		Source:   m.Source,
		Backend:  backend,
		Geometry: m.Geometry,
		Layers:   make([]Layer, 0, len(m.Layers)),
		Combos:   make([]Combo, 0, len(m.Combos)),
	}
	for _, l := range m.Layers {
		layer := Layer{Name: l.Name, Index: l.Index, Rows: make([][]Cell, len(l.Rows))}
		for i, row := range l.Rows {
			cells := make([]Cell, len(row))
			for j, key := range row {
				cells[j] = p.cell(key.Action)
			}
			layer.Rows[i] = cells
		}
		t.Layers = append(t.Layers, layer)
	}
	for _, c := range m.Combos {
		t.Combos = append(t.Combos, Combo{
			Layer:     c.Layer,
			LayerName: c.LayerName,
			Row:       c.Row,
			Left:      c.Left,
			Right:     c.Right,
			LeftPos:   c.LeftPos,
			RightPos:  c.RightPos,
			Cell:      p.cell(c.Action),
		})
	}
	return t, p.diags
}

func (p *preparer) cell(a model.Action) Cell {
	c := Cell{
		Tap:         p.tap(a.Tap),
		Transparent: a.Tap.Kind == model.TapTransparent,
	}
	c.Code = c.Tap
	if a.Hold == nil {
		return c
	}

	c.Hold = p.hold(a.Hold)
	c.Code = expand(p.backend.HoldTap, p.backend.Options, map[string]string{
		"tap":  c.Tap,
		"hold": c.Hold,
	})
	return c
}

func (p *preparer) tap(t model.Tap) string {
	switch t.Kind {
	case model.TapTransparent:
		return p.backend.Transparent
	case model.TapLiteral:
		return p.lookup(p.backend.Chars, string(t.Char), "character", t.Range)
	case model.TapNamed:
		if code, ok := p.backend.Modifiers[t.Name]; ok {
			return code
		}
		return p.lookup(p.backend.Named, t.Name, "key", t.Range)
	case model.TapCustom:
		return p.custom(t.Name, t.Range)
	}
	return p.backend.NoOp
}

func (p *preparer) hold(h *model.Hold) string {
	switch h.Kind {
	case model.HoldModifier:
		return p.lookup(p.backend.Modifiers, h.Name, "modifier", h.Range)
	case model.HoldLayer:
		return expand(p.backend.Layer, p.backend.Options, map[string]string{
			"index": strconv.Itoa(h.Layer),
			"name":  h.Name,
		})
	case model.HoldCustom:
		return p.custom(h.Name, h.Range)
	}
	return p.backend.NoOp
}

func (p *preparer) lookup(table map[string]string, symbol, kind string, subject hcl.Range) string {
	if code, ok := table[symbol]; ok {
		return code
	}
	p.diags = append(p.diags, diag.Errorf(diag.MissingBackendMapping, subject,
		"backend %q has no mapping for %s %q", p.backend.Name, kind, symbol))
	return p.backend.NoOp
}

// custom returns the template of a custom key. A missing template is
// reported once per key, at its first use.
func (p *preparer) custom(name string, subject hcl.Range) string {
	key, ok := p.m.CustomKeys[name]
	if ok {
		if tmpl, ok := key.Templates[p.backend.Name]; ok {
			return tmpl
		}
	}
	if !p.reported[name] {
		p.reported[name] = true
		d := diag.Errorf(diag.MissingBackendMapping, subject,
			"key %q has no output for backend %q", name, p.backend.Name)
		if ok {
			d.Detail = fmt.Sprintf("add `out %s: \"...\";` to key %s", p.backend.Name, name)
		}
		p.diags = append(p.diags, d)
	}
	return p.backend.NoOp
}

// expand replaces {name} placeholders in tmpl. vars take precedence over
// options. Replacement is a single pass, so braces inside substituted values
// are left alone.
func expand(tmpl string, options, vars map[string]string) string {
	pairs := make([]string, 0, 2*(len(options)+len(vars)))
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	for k, v := range options {
		if _, shadowed := vars[k]; shadowed {
			continue
		}
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
