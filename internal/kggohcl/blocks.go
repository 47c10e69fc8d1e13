package kggohcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// Labeled is a decoded block identified by a label.
type Labeled interface {
	Label() string
	DefRange() hcl.Range
}

// DuplicateLabels returns an error diagnostic for every block whose label
// repeats the label of an earlier block of the same kind.
func DuplicateLabels[T Labeled](kind string, blocks []T) hcl.Diagnostics {
	var diags hcl.Diagnostics
	first := make(map[string]hcl.Range, len(blocks))

	for _, block := range blocks {
		label := block.Label()
		if prev, ok := first[label]; ok {
			rng := block.DefRange()
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  fmt.Sprintf("Duplicate %s %q", kind, label),
				Detail:   fmt.Sprintf("A %s named %q was already declared at %s.", kind, label, prev),
				Subject:  &rng,
			})
			continue
		}
		first[label] = block.DefRange()
	}
	return diags
}
