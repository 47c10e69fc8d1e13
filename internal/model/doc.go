// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model holds the resolved, backend-agnostic representation of a
// keyboard: the physical geometry derived from the layout block, and the
// per-layer actions derived from the layer definitions.
//
// # Core Concepts
//
//   - Geometry: an index-addressed arena of columns plus, for every physical
//     row, the ordered list of column identities it uses. Rows never hold
//     pointers to each other; a column is just an int.
//
//   - Action: what a single key does. A tap is always present; a hold is
//     optional. A nil hold means the key is tap-only and the firmware repeats
//     the tap when it is held.
//
//   - Layer and Combo: a layer is a grid shaped like the geometry; combos are
//     kept in a separate ordered list because they bind two neighbouring keys
//     rather than one physical position.
//
//   - Model: everything the emitter needs, including the custom key templates
//     and the ordered list of backends requested by the source.
//
// A Model is built once per compilation and is read-only afterwards.
package model
