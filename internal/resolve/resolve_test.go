package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/keygridgo/internal/diag"
	"github.com/vk/keygridgo/internal/geometry"
	"github.com/vk/keygridgo/internal/model"
	"github.com/vk/keygridgo/internal/syntax"
	"github.com/vk/keygridgo/internal/tables"
)

func testSymbols() *tables.Tables {
	t := tables.New()
	t.Symbols = tables.Symbols{
		Named:     []string{"esc", "space", "bspace", "enter", "tab", "left", "right"},
		Modifiers: []string{"lshift", "lctrl", "lalt"},
		Chars:     []string{"a", "b", "c", "d", "e", "1", "2", "3", "!", "-"},
	}
	return t
}

// resolveSource runs the front end on src and fails the test on syntax errors.
func resolveSource(t *testing.T, src string) (*model.Model, []*model.Combo, []diag.Code, []string) {
	t.Helper()
	doc, diags := syntax.Parse("test.kbd", []byte(src))
	require.Empty(t, diags, "fixture must parse cleanly")
	geo, diags := geometry.Resolve(doc.Layout)
	require.Empty(t, diags, "fixture geometry must be valid")

	m, diags := Resolve(doc, geo, testSymbols())

	summaries := make([]string, 0, len(diags))
	for _, d := range diag.Normalize(diags) {
		summaries = append(summaries, diag.Format(d))
	}
	return m, m.Combos, diag.Codes(diag.Normalize(diags)), summaries
}

const threeLayers = `
layout {
  3k 1s 2k;
  1s [1] [3] 1s;
}
key reset { out keyberon: "Custom(Reset)"; }
layer base {
  'a' 'b' 'c' 'd'@lshift 'e';
  space@[nav] enter@[sym];
}
layer nav {
  left right n n reset;
  n n;
}
layer sym {
  '1' >esc< '2' '3' '!' '-';
  n bspace@lctrl;
}
`

func TestResolve_ThreeLayers(t *testing.T) {
	t.Parallel()

	// Act
	m, combos, codes, _ := resolveSource(t, threeLayers)

	// Assert
	require.Empty(t, codes)
	require.Len(t, m.Layers, 3)
	for _, l := range m.Layers {
		require.Len(t, l.Rows, 2)
		assert.Len(t, l.Rows[0], 5, "layer %s", l.Name)
		assert.Len(t, l.Rows[1], 2, "layer %s", l.Name)
	}
	assert.Equal(t, []model.Backend{{Name: "keyberon", Range: m.Backends[0].Range}}, m.Backends)

	base := m.Layers[0]
	assert.Equal(t, model.Tap{Kind: model.TapLiteral, Char: 'd', Range: base.Rows[0][3].Action.Tap.Range}, base.Rows[0][3].Action.Tap)
	assert.Equal(t, model.HoldModifier, base.Rows[0][3].Action.Hold.Kind)
	assert.Nil(t, base.Rows[0][0].Action.Hold, "tap-only keys have no hold")

	thumb := base.Rows[1][1]
	assert.Equal(t, 3, thumb.Column)
	require.NotNil(t, thumb.Action.Hold)
	assert.Equal(t, model.HoldLayer, thumb.Action.Hold.Kind)
	assert.Equal(t, 2, thumb.Action.Hold.Layer)

	nav := m.Layers[1]
	assert.Equal(t, model.TapCustom, nav.Rows[0][4].Action.Tap.Kind)
	assert.Equal(t, model.TapTransparent, nav.Rows[1][0].Action.Tap.Kind)

	require.Len(t, combos, 1)
	combo := combos[0]
	assert.Equal(t, 2, combo.Layer)
	assert.Equal(t, 0, combo.Left)
	assert.Equal(t, 1, combo.Right)
	assert.Equal(t, "esc", combo.Action.Tap.Name)
}

func TestResolve_RowLengthMismatchNamesCounts(t *testing.T) {
	t.Parallel()

	_, _, codes, messages := resolveSource(t, `
layout { 2k; 3k; }
layer base {
  'a' 'b';
  'a' 'b' 'c' 'd';
}`)

	require.Equal(t, []diag.Code{diag.RowLengthMismatch}, codes)
	assert.Equal(t, `5:3: geometry error: row 2 of layer "base" should have 3 keys, but it has 4`, messages[0])
}

func TestResolve_RowCountMismatch(t *testing.T) {
	t.Parallel()

	m, _, codes, _ := resolveSource(t, "layout { 1k; 1k; }\nlayer base { 'a'; }")

	require.Equal(t, []diag.Code{diag.RowCountMismatch}, codes)
	require.Len(t, m.Layers[0].Rows, 2, "the layer still has the layout's shape")
	assert.Equal(t, model.TapTransparent, m.Layers[0].Rows[1][0].Action.Tap.Kind)
}

func TestResolve_UnresolvedReferences(t *testing.T) {
	testCases := []struct {
		name     string
		cell     string
		expected string
	}{
		{name: "unknown named key with suggestion", cell: "spcae", expected: `3:14: reference error: unknown key "spcae" (did you mean "space"?)`},
		{name: "unknown named key", cell: "volup", expected: `3:14: reference error: unknown key "volup"`},
		{name: "unknown character", cell: "'z'", expected: `3:14: reference error: unknown character 'z'`},
		{name: "unknown layer", cell: "'a'@[nva]", expected: `3:17: reference error: unknown layer "nva" (did you mean "nav"?)`},
		{name: "unknown hold", cell: "'a'@lshfit", expected: `3:17: reference error: unknown modifier or key "lshfit" (did you mean "lshift"?)`},
		{name: "unknown hold without suggestion", cell: "'a'@volup", expected: `3:17: reference error: unknown modifier or key "volup"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			src := "layout { 1k; }\nlayer nav { n; }\nlayer base { " + tc.cell + "; }"
			_, _, codes, messages := resolveSource(t, src)

			require.Equal(t, []diag.Code{diag.UnresolvedReference}, codes)
			assert.Equal(t, tc.expected, messages[0])
		})
	}
}

func TestResolve_TruncatedDocument(t *testing.T) {
	t.Parallel()

	// Arrange: the quote on line 4 cuts the source before layer fn and the
	// second row of base.
	src := "layout { 2k; 2k; }\nkey boot { out qmk: \"QK_BOOT\"; }\nlayer base {\n  'a'@[fn] esc@lctl 'b;\n  n n;\n}\nlayer fn { boot n; n n; }\n"
	doc, diags := syntax.Parse("cut.kbd", []byte(src))
	require.Equal(t, []diag.Code{diag.UnterminatedQuote}, diag.Codes(diags))
	require.True(t, doc.Truncated)
	geo, diags := geometry.Resolve(doc.Layout)
	require.Empty(t, diags)

	// Act
	m, diags := Resolve(doc, geo, testSymbols())

	// Assert: names that may live past the cut are not reported, and the
	// cut layer is not held to the layout's row count.
	assert.Empty(t, diag.Codes(diags))
	require.Len(t, m.Layers, 1)
	assert.Nil(t, m.Layers[0].Rows[0][0].Action.Hold)
}

func TestResolve_TruncatedDocumentStillChecksCharacters(t *testing.T) {
	t.Parallel()

	doc, diags := syntax.Parse("cut.kbd", []byte("layout { 2k; }\nlayer base { 'z' 'b;\n}"))
	require.Equal(t, []diag.Code{diag.UnterminatedQuote}, diag.Codes(diags))
	geo, _ := geometry.Resolve(doc.Layout)

	_, diags = Resolve(doc, geo, testSymbols())

	assert.Equal(t, []diag.Code{diag.UnresolvedReference}, diag.Codes(diags))
}

func TestResolve_ModifierAsTapAndCustomHold(t *testing.T) {
	t.Parallel()

	m, _, codes, _ := resolveSource(t, `
layout { 2k; }
key hyper { out qmk: "HYPR"; }
layer base { lshift 'a'@hyper; }`)

	require.Empty(t, codes)
	row := m.Layers[0].Rows[0]
	assert.Equal(t, model.Tap{Kind: model.TapNamed, Name: "lshift", Range: row[0].Action.Tap.Range}, row[0].Action.Tap)
	assert.Equal(t, model.HoldCustom, row[1].Action.Hold.Kind)
	assert.Equal(t, "hyper", row[1].Action.Hold.Name)
}

func TestResolve_ComboNeighbours(t *testing.T) {
	testCases := []struct {
		name     string
		row      string
		expected []diag.Code
		combos   int
	}{
		{name: "between keys", row: "'a' >esc< 'b' 'c'", combos: 1},
		{name: "two combos in one row", row: "'a' >esc< 'b' >tab< 'c'", combos: 2},
		{name: "at row start", row: ">esc< 'a' 'b' 'c'", expected: []diag.Code{diag.ComboMissingNeighbor}},
		{name: "at row end", row: "'a' 'b' 'c' >esc<", expected: []diag.Code{diag.ComboMissingNeighbor}},
		{name: "adjacent combos", row: "'a' >esc< >tab< 'b' 'c'", expected: []diag.Code{diag.ComboMissingNeighbor, diag.ComboMissingNeighbor}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, combos, codes, _ := resolveSource(t, "layout { 3k; }\nlayer base { "+tc.row+"; }")

			assert.Equal(t, tc.expected, codesOrNil(codes))
			assert.Len(t, combos, tc.combos)
		})
	}
}

func TestResolve_ComboPositionsUseFlatOffsets(t *testing.T) {
	t.Parallel()

	_, combos, codes, _ := resolveSource(t, "layout { 2k; 1s 2k; }\nlayer base { 'a' 'b'; 'c' >esc< 'd'; }")

	require.Empty(t, codes)
	require.Len(t, combos, 1)
	assert.Equal(t, 2, combos[0].LeftPos)
	assert.Equal(t, 3, combos[0].RightPos)
	assert.Equal(t, 2, combos[0].Left)
	assert.Equal(t, 3, combos[0].Right)
}

func TestResolve_DuplicatesAndUnusedKeys(t *testing.T) {
	t.Parallel()

	// Arrange
	src := `
layout { 1k; }
key a { out x: "1"; out x: "2"; }
key a { out y: "3"; }
key spare { out y: "4"; }
layer base { a; }
layer base { n; }
`

	// Act
	m, _, codes, _ := resolveSource(t, src)

	// Assert
	assert.Equal(t, []diag.Code{
		diag.DuplicateDefinition, // second out x
		diag.DuplicateDefinition, // key a
		diag.UnusedKey,           // spare
		diag.DuplicateDefinition, // layer base
	}, codes)
	assert.Len(t, m.Layers, 1)
	assert.Equal(t, []string{"x", "y"}, backendNames(m.Backends))
	assert.Equal(t, "1", m.CustomKeys["a"].Templates["x"])
}

func codesOrNil(codes []diag.Code) []diag.Code {
	if len(codes) == 0 {
		return nil
	}
	return codes
}

func backendNames(backends []model.Backend) []string {
	names := make([]string, len(backends))
	for i, b := range backends {
		names[i] = b.Name
	}
	return names
}
