package resolve

import (
	"github.com/vk/keygridgo/internal/diag"
	"github.com/vk/keygridgo/internal/model"
	"github.com/vk/keygridgo/internal/syntax"
)

// transparent fills positions a broken layer does not cover.
var transparent = model.Action{Tap: model.Tap{Kind: model.TapTransparent}}

// resolveLayer produces a layer shaped exactly like the geometry, plus the
// combos declared in it.
func (r *resolver) resolveLayer(def *syntax.LayerDef) (*model.Layer, []*model.Combo) {
	index := r.layers[def.Name]
	layer := &model.Layer{Name: def.Name, Index: index, Range: def.NameRange}
	var combos []*model.Combo

	height := r.geo.Height()
	if height > 0 && len(def.Rows) != height && def != r.cut {
		r.errorf(diag.RowCountMismatch, def.NameRange,
			"layer %q has %d rows, the layout has %d", def.Name, len(def.Rows), height)
	}

	for i, geoRow := range r.geo.Rows {
		keys := make([]model.Key, geoRow.Width())
		for j, col := range geoRow.Columns {
			keys[j] = model.Key{Row: i, Column: col, Action: transparent}
		}

		if i < len(def.Rows) {
			combos = append(combos, r.resolveRow(def, index, i, def.Rows[i], keys)...)
		}
		layer.Rows = append(layer.Rows, keys)
	}

	// Rows beyond the layout still get their references checked.
	for i := height; i < len(def.Rows); i++ {
		for _, cell := range def.Rows[i].Cells {
			r.resolveCell(cell)
		}
	}
	return layer, combos
}

// resolveRow resolves the cells of one layer row into keys (which already
// carry their row and column) and returns the row's combos.
func (r *resolver) resolveRow(def *syntax.LayerDef, layerIndex, rowIndex int, row *syntax.LayerRow, keys []model.Key) []*model.Combo {
	geoRow := r.geo.Rows[rowIndex]
	primary := row.Primary()
	if primary != len(keys) && !row.Recovered && !geoRow.Partial {
		r.errorf(diag.RowLengthMismatch, row.Range,
			"row %d of layer %q should have %d keys, but it has %d", rowIndex+1, def.Name, len(keys), primary)
	}

	var combos []*model.Combo
	pos := 0 // index of the next primary cell
	for i, cell := range row.Cells {
		action := r.resolveCell(cell)

		if cell.Kind != syntax.Combo {
			if pos < len(keys) {
				keys[pos].Action = action
			}
			pos++
			continue
		}

		if !hasNeighbours(row.Cells, i) {
			r.errorf(diag.ComboMissingNeighbor, cell.Range,
				"combo at position %d of row %d in layer %q must sit between two keys", i+1, rowIndex+1, def.Name)
			continue
		}
		// pos-1 and pos are the primaries on either side.
		if pos >= len(keys) {
			continue
		}
		offset := r.geo.Offset(rowIndex)
		combos = append(combos, &model.Combo{
			Layer:     layerIndex,
			LayerName: def.Name,
			Row:       rowIndex,
			Left:      geoRow.Columns[pos-1],
			Right:     geoRow.Columns[pos],
			LeftPos:   offset + pos - 1,
			RightPos:  offset + pos,
			Action:    action,
			Range:     cell.Range,
		})
	}
	return combos
}

func hasNeighbours(cells []*syntax.Cell, i int) bool {
	if i == 0 || i == len(cells)-1 {
		return false
	}
	return cells[i-1].Kind != syntax.Combo && cells[i+1].Kind != syntax.Combo
}
