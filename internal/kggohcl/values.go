// Package kggohcl collects small helpers on top of hcl and cty that the table
// loader needs: decoding optional expressions into plain Go maps and lists,
// and checking block labels.
package kggohcl

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// StringMap evaluates expr and decodes it into a map of strings. A missing
// optional attribute (a null value) yields an empty map.
func StringMap(expr hcl.Expression, ctx *hcl.EvalContext) (map[string]string, hcl.Diagnostics) {
	out := map[string]string{}
	val, diags := decodeAs(expr, ctx, cty.Map(cty.String))
	if diags.HasErrors() || val.IsNull() {
		return out, diags
	}
	if err := gocty.FromCtyValue(val, &out); err != nil {
		return out, append(diags, valueError(expr, err))
	}
	return out, diags
}

// StringList evaluates expr and decodes it into a list of strings. A null
// value yields nil.
func StringList(expr hcl.Expression, ctx *hcl.EvalContext) ([]string, hcl.Diagnostics) {
	val, diags := decodeAs(expr, ctx, cty.List(cty.String))
	if diags.HasErrors() || val.IsNull() {
		return nil, diags
	}
	var out []string
	if err := gocty.FromCtyValue(val, &out); err != nil {
		return nil, append(diags, valueError(expr, err))
	}
	return out, diags
}

func decodeAs(expr hcl.Expression, ctx *hcl.EvalContext, want cty.Type) (cty.Value, hcl.Diagnostics) {
	if expr == nil {
		return cty.NullVal(want), nil
	}
	val, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return cty.NullVal(want), diags
	}
	if val.IsNull() {
		return cty.NullVal(want), diags
	}
	if !val.IsWhollyKnown() {
		return cty.NullVal(want), append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unknown value",
			Detail:   "The value must be known when the tables are loaded.",
			Subject:  expr.Range().Ptr(),
		})
	}

	converted, err := convert.Convert(val, want)
	if err != nil {
		return cty.NullVal(want), append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Incorrect value type",
			Detail:   fmt.Sprintf("Expected %s: %s.", want.FriendlyName(), err),
			Subject:  expr.Range().Ptr(),
		})
	}
	return converted, diags
}

func valueError(expr hcl.Expression, err error) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Invalid value",
		Detail:   err.Error(),
		Subject:  expr.Range().Ptr(),
	}
}

// SortedAttributes returns attrs ordered by their position in the source.
func SortedAttributes(attrs hcl.Attributes) []*hcl.Attribute {
	out := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, attr)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Range, out[j].Range
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		return a.Start.Byte < b.Start.Byte
	})
	return out
}
