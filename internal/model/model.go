// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the resolved model handed from the layer resolver to the
// emitter.
package model

import "github.com/hashicorp/hcl/v2"

// Key is one resolved physical key of a layer.
type Key struct {
	Row    int
	Column int // column identity from the geometry arena
	Action Action
}

// Layer is a resolved layer. Rows mirrors Geometry.Rows: Rows[i][j] sits on
// column Geometry.Rows[i].Columns[j].
type Layer struct {
	Name  string
	Index int
	Rows  [][]Key
	Range hcl.Range
}

// Combo binds an action to the simultaneous press of two neighbouring keys
// of the same row.
type Combo struct {
	Layer     int
	LayerName string
	Row       int
	Left      int // column identity of the left key
	Right     int // column identity of the right key
	// LeftPos and RightPos are flat key positions (see Geometry.Offset).
	LeftPos  int
	RightPos int
	Action   Action
	Range    hcl.Range
}

// CustomKey is a declared key with its per-backend templates.
type CustomKey struct {
	Name      string
	Templates map[string]string
	Range     hcl.Range
}

// Backend is a backend requested by an output clause, with the location of
// its first mention.
type Backend struct {
	Name  string
	Range hcl.Range
}

// Model is the fully resolved keyboard.
type Model struct {
	Source     string
	Geometry   *Geometry
	Layers     []*Layer
	Combos     []*Combo
	CustomKeys map[string]*CustomKey
	Backends   []Backend
}

// LayerIndex returns the index of the named layer.
func (m *Model) LayerIndex(name string) (int, bool) {
	for _, l := range m.Layers {
		if l.Name == name {
			return l.Index, true
		}
	}
	return 0, false
}
