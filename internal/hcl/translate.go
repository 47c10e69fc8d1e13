package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/vk/keygridgo/internal/kggohcl"
	"github.com/vk/keygridgo/internal/schema"
	"github.com/vk/keygridgo/internal/tables"
)

// translate converts a decoded file into the format-agnostic tables model.
func translate(ctx *hcl.EvalContext, root *schema.File) (*tables.Tables, hcl.Diagnostics) {
	t := tables.New()
	var diags hcl.Diagnostics

	if root.Symbols != nil {
		var d hcl.Diagnostics
		t.Symbols.Named, d = kggohcl.StringList(root.Symbols.Named, ctx)
		diags = append(diags, d...)
		t.Symbols.Modifiers, d = kggohcl.StringList(root.Symbols.Modifiers, ctx)
		diags = append(diags, d...)
		t.Symbols.Chars, d = kggohcl.StringList(root.Symbols.Chars, ctx)
		diags = append(diags, d...)
		diags = append(diags, checkChars(root.Symbols.Chars, t.Symbols.Chars)...)
	}

	for _, b := range root.Backends {
		backend, d := translateBackend(ctx, b)
		diags = append(diags, d...)
		t.Backends[backend.Name] = backend
	}
	return t, diags
}

func translateBackend(ctx *hcl.EvalContext, b *schema.Backend) (*tables.Backend, hcl.Diagnostics) {
	out := &tables.Backend{
		Name:        b.Name,
		Format:      b.Format,
		Extension:   b.Extension,
		NoOp:        b.NoOp,
		Transparent: b.Transparent,
		HoldTap:     b.HoldTap,
		Layer:       b.Layer,
	}

	var diags, d hcl.Diagnostics
	out.Named, d = kggohcl.StringMap(b.Named, ctx)
	diags = append(diags, d...)
	out.Modifiers, d = kggohcl.StringMap(b.Modifiers, ctx)
	diags = append(diags, d...)
	out.Chars, d = kggohcl.StringMap(b.Chars, ctx)
	diags = append(diags, d...)
	out.Options, d = kggohcl.StringMap(b.Options, ctx)
	diags = append(diags, d...)
	return out, diags
}

// checkChars rejects character symbols that are not exactly one character.
func checkChars(expr hcl.Expression, chars []string) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, c := range chars {
		if len([]rune(c)) != 1 {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid character symbol",
				Detail:   "Every entry of chars must be exactly one character, got \"" + c + "\".",
				Subject:  expr.Range().Ptr(),
			})
		}
	}
	return diags
}
