package yaml

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/keygridgo/internal/emit"
	"github.com/vk/keygridgo/internal/model"
	"github.com/vk/keygridgo/internal/registry"
	"github.com/vk/keygridgo/internal/tables"
	"gopkg.in/yaml.v3"
)

// keymap mirrors the keymap-drawer document for decoding in tests.
type keymap struct {
	Layout map[string]string      `yaml:"layout"`
	Layers map[string][][]keySpec `yaml:"layers"`
	Combos []comboSpec            `yaml:"combos"`
}

type keySpec struct {
	Tap  string `yaml:"tap"`
	Hold string `yaml:"hold"`
}

type comboSpec struct {
	KeyPositions []int    `yaml:"key_positions"`
	Key          keySpec  `yaml:"key"`
	Layers       []string `yaml:"layers"`
}

func testTable(options map[string]string) *emit.Table {
	return &emit.Table{
		Source:  "test.kbd",
		Backend: &tables.Backend{Name: "keymap_drawer", Format: FormatName, Options: options},
		Geometry: &model.Geometry{
			Columns: make([]model.Column, 2),
			Rows:    []model.GeometryRow{{Columns: []int{0, 1}}},
		},
		Layers: []emit.Layer{
			{Name: "base", Rows: [][]emit.Cell{{{Tap: "Q"}, {Tap: "1", Hold: "LShift"}}}},
			{Name: "nav", Index: 1, Rows: [][]emit.Cell{{{Transparent: true}, {Tap: "~"}}}},
		},
		Combos: []emit.Combo{
			{Layer: 1, LayerName: "nav", LeftPos: 0, RightPos: 1, Cell: emit.Cell{Tap: "Escape"}},
		},
	}
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	// Arrange
	var buf bytes.Buffer
	table := testTable(map[string]string{"qmk_keyboard": "corne_rotated", "qmk_layout": ""})

	// Act
	err := (&Renderer{}).Render(&buf, table)

	// Assert
	require.NoError(t, err)
	var got keymap
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))

	want := keymap{
		Layout: map[string]string{"qmk_keyboard": "corne_rotated"},
		Layers: map[string][][]keySpec{
			"base": {{{Tap: "Q"}, {Tap: "1", Hold: "LShift"}}},
			"nav":  {{{}, {Tap: "~"}}},
		},
		Combos: []comboSpec{{KeyPositions: []int{0, 1}, Key: keySpec{Tap: "Escape"}, Layers: []string{"nav"}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("keymap mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_KeepsLayerOrder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	table := testTable(nil)
	table.Layers[0].Name = "zeta"

	require.NoError(t, (&Renderer{}).Render(&buf, table))

	out := buf.String()
	assert.NotContains(t, out, "layout:")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("zeta:")), bytes.Index(buf.Bytes(), []byte("nav:")))
	assert.Contains(t, out, `"1"`, "numeric taps stay strings")
}

func TestModule_Register(t *testing.T) {
	t.Parallel()

	r := registry.New()
	(&Module{}).Register(r)

	renderer, ok := r.Renderer(FormatName)
	require.True(t, ok)
	assert.IsType(t, &Renderer{}, renderer)
}
