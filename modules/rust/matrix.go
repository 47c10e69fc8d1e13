package rust

import (
	"github.com/vk/keygridgo/internal/emit"
)

// position is a matrix slot.
type position struct {
	Row, Col int
}

// comboSlot maps a pair of physical keys to the extra slot that fires when
// both are pressed.
type comboSlot struct {
	Left, Right, Slot position
}

// matrix is the rectangular layout of one table: the physical rows followed
// by the extra rows allocated for combos.
type matrix struct {
	width, physical, extra int
	slots                  []comboSlot
	byPair                 map[[2]position]position
	next                   position
}

func newMatrix(t *emit.Table) *matrix {
	m := &matrix{
		width:    t.Geometry.Width(),
		physical: t.Geometry.Height(),
		byPair:   make(map[[2]position]position),
	}
	m.next = position{Row: m.physical, Col: 0}
	for _, c := range t.Combos {
		m.slot(c)
	}
	return m
}

// slot returns the extra slot of a combo, allocating one the first time a
// key pair is seen. Pairs shared by several layers share a slot.
func (m *matrix) slot(c emit.Combo) position {
	pair := [2]position{{Row: c.Row, Col: c.Left}, {Row: c.Row, Col: c.Right}}
	if pos, ok := m.byPair[pair]; ok {
		return pos
	}

	pos := m.next
	m.extra = pos.Row - m.physical + 1
	m.next.Col++
	if m.next.Col >= m.width {
		m.next.Col = 0
		m.next.Row++
	}
	m.byPair[pair] = pos
	m.slots = append(m.slots, comboSlot{Left: pair[0], Right: pair[1], Slot: pos})
	return pos
}

func (m *matrix) rows() int {
	return m.physical + m.extra
}

// layer lays the cells of one layer out on the matrix. Empty slots hold
// noop.
func (m *matrix) layer(t *emit.Table, l emit.Layer, noop string) [][]string {
	out := make([][]string, m.rows())
	for i := range out {
		out[i] = make([]string, m.width)
		for j := range out[i] {
			out[i][j] = noop
		}
	}

	for i, row := range l.Rows {
		cols := t.Geometry.Rows[i].Columns
		for j, cell := range row {
			out[i][cols[j]] = cell.Code
		}
	}
	for _, c := range t.Combos {
		if c.Layer != l.Index {
			continue
		}
		pos := m.slot(c)
		out[pos.Row][pos.Col] = c.Cell.Code
	}
	return out
}
