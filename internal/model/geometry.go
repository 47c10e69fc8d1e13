// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the physical geometry produced by the geometry resolver.
package model

import "github.com/hashicorp/hcl/v2"

// Column is one slot of the column arena. Its identity is its index in
// Geometry.Columns.
type Column struct {
	Index int
	// Row is the physical row whose key group allocated the column.
	Row   int
	Range hcl.Range
}

// GeometryRow lists the column identities of one physical row, left to right.
type GeometryRow struct {
	Columns []int
	// Gaps[i] is the number of spacer units in front of Columns[i]; the last
	// element holds the trailing gap, so len(Gaps) == len(Columns)+1.
	Gaps  []int
	Range hcl.Range
	// Partial is set when the layout row could not be parsed completely, so
	// its width is not reliable.
	Partial bool
}

// Width returns the number of physical keys in the row.
func (r GeometryRow) Width() int {
	return len(r.Columns)
}

// Geometry is the resolved layout block.
type Geometry struct {
	Columns []Column
	Rows    []GeometryRow
}

// Width returns the number of allocated columns.
func (g *Geometry) Width() int {
	return len(g.Columns)
}

// Height returns the number of physical rows.
func (g *Geometry) Height() int {
	return len(g.Rows)
}

// Offset returns the flat key position of the first key of row, counting
// keys row by row.
func (g *Geometry) Offset(row int) int {
	n := 0
	for i := 0; i < row && i < len(g.Rows); i++ {
		n += g.Rows[i].Width()
	}
	return n
}
