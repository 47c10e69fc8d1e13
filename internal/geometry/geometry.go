// Package geometry turns the layout block into the column arena used by the
// rest of the compiler.
package geometry

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/vk/keygridgo/internal/diag"
	"github.com/vk/keygridgo/internal/model"
	"github.com/vk/keygridgo/internal/syntax"
)

// MaxColumns bounds the column arena. Column references name indices up to
// syntax.MaxNumber, so the arena holds exactly that many plus one.
const MaxColumns = syntax.MaxNumber + 1

// Resolve walks the layout row by row. Key groups allocate fresh sequential
// columns, column references reuse an already allocated column and spacers
// only widen the gap in front of the next key.
//
// A nil layout yields an empty geometry. Rows with errors are kept (marked
// Partial) so later stages can skip width checks against them.
func Resolve(layout *syntax.LayoutBlock) (*model.Geometry, hcl.Diagnostics) {
	geo := &model.Geometry{}
	if layout == nil {
		return geo, nil
	}

	var diags hcl.Diagnostics
	for i, row := range layout.Rows {
		resolved, rowDiags := resolveRow(geo, i, row)
		diags = append(diags, rowDiags...)
		geo.Rows = append(geo.Rows, resolved)
	}
	return geo, diags
}

func resolveRow(geo *model.Geometry, index int, row *syntax.PhysicalRow) (model.GeometryRow, hcl.Diagnostics) {
	out := model.GeometryRow{Range: row.Range, Partial: row.Recovered}
	var diags hcl.Diagnostics
	used := make(map[int]bool)
	gap := 0

	place := func(col int) {
		out.Columns = append(out.Columns, col)
		out.Gaps = append(out.Gaps, gap)
		used[col] = true
		gap = 0
	}

	for _, seg := range row.Segments {
		switch seg.Kind {
		case syntax.KeyGroup:
			if len(geo.Columns)+seg.N > MaxColumns {
				diags = append(diags, diag.Errorf(diag.TooManyColumns, seg.Range,
					"row %d allocates %d more columns, but a layout holds at most %d and %d are allocated",
					index+1, seg.N, MaxColumns, len(geo.Columns)))
				out.Partial = true
				continue
			}
			for n := 0; n < seg.N; n++ {
				col := len(geo.Columns)
				geo.Columns = append(geo.Columns, model.Column{Index: col, Row: index, Range: seg.Range})
				place(col)
			}
		case syntax.SpacerGroup:
			gap += seg.N
		case syntax.ColumnRef:
			switch {
			case seg.N >= len(geo.Columns):
				diags = append(diags, diag.Errorf(diag.ColumnRefOutOfRange, seg.Range,
					"column [%d] in row %d is not allocated yet; %d columns are allocated", seg.N, index+1, len(geo.Columns)))
				out.Partial = true
			case used[seg.N]:
				diags = append(diags, diag.Errorf(diag.DuplicateColumn, seg.Range,
					"column [%d] is used twice in row %d", seg.N, index+1))
				out.Partial = true
			default:
				place(seg.N)
			}
		}
	}
	out.Gaps = append(out.Gaps, gap)

	if len(out.Columns) == 0 && !out.Partial {
		diags = append(diags, diag.Errorf(diag.EmptyRow, row.Range, "row %d has no keys", index+1))
		out.Partial = true
	}
	return out, diags
}
