// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the closed set of resolved key actions.
package model

import "github.com/hashicorp/hcl/v2"

// TapKind enumerates what a key does when tapped.
type TapKind int

const (
	TapLiteral     TapKind = iota // a character from the built-in character table
	TapNamed                      // a built-in named key or modifier
	TapTransparent                // falls through to a lower layer
	TapCustom                     // a declared custom key
)

func (k TapKind) String() string {
	switch k {
	case TapLiteral:
		return "literal"
	case TapNamed:
		return "named"
	case TapTransparent:
		return "transparent"
	case TapCustom:
		return "custom"
	}
	return "unknown"
}

// Tap is the primary action of a key.
type Tap struct {
	Kind TapKind
	Char rune   // TapLiteral
	Name string // TapNamed, TapCustom
	// Range locates the reference in the source.
	Range hcl.Range
}

// HoldKind enumerates what a key does when held.
type HoldKind int

const (
	HoldModifier HoldKind = iota
	HoldLayer
	HoldCustom
)

func (k HoldKind) String() string {
	switch k {
	case HoldModifier:
		return "modifier"
	case HoldLayer:
		return "layer"
	case HoldCustom:
		return "custom"
	}
	return "unknown"
}

// Hold is the secondary action of a key.
type Hold struct {
	Kind HoldKind
	Name string
	// Layer is the index of the target layer for HoldLayer.
	Layer int
	Range hcl.Range
}

// Action is a resolved key. Hold is nil for tap-only keys.
type Action struct {
	Tap  Tap
	Hold *Hold
}
