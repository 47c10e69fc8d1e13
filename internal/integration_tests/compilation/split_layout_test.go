package integration_tests

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/keygridgo/internal/app"
	"github.com/vk/keygridgo/internal/testutil"
	"gopkg.in/yaml.v3"
)

type drawerKey struct {
	Tap  string `yaml:"tap"`
	Hold string `yaml:"hold"`
}

type drawerKeymap struct {
	Layers map[string][][]drawerKey `yaml:"layers"`
	Combos []struct {
		KeyPositions []int     `yaml:"key_positions"`
		Key          drawerKey `yaml:"key"`
		Layers       []string  `yaml:"layers"`
	} `yaml:"combos"`
}

func readSplit(t *testing.T) string {
	t.Helper()
	src, err := os.ReadFile("testdata/split.kbd")
	require.NoError(t, err)
	return string(src)
}

func TestCompilation_SplitLayoutWritesEveryBackend(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{"layouts/split.kbd": readSplit(t)}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, app.Config{InputPath: "layouts"})

	// --- Assert ---
	require.NoError(t, result.Err, result.Output)
	require.Len(t, result.Artifacts, 2)

	rs := result.Artifacts["split.keyberon.rs"]
	assert.True(t, strings.HasPrefix(rs, "// Generated by keygridgo from split.kbd. Do not edit."))
	assert.Contains(t, rs, "pub static LAYERS: ::keyberon::layout::Layers<10, 3, 3, ()> = [")
	assert.Equal(t, 3, strings.Count(rs, "    // "), "one table per layer")
	assert.Contains(t, rs, "((1, 8), (1, 9), (2, 0))")

	var keymap drawerKeymap
	require.NoError(t, yaml.Unmarshal([]byte(result.Artifacts["split.keymap_drawer.yaml"]), &keymap))
	require.Len(t, keymap.Layers, 3)
	for name, rows := range keymap.Layers {
		require.Len(t, rows, 2, "layer %s", name)
		for i, row := range rows {
			assert.Len(t, row, 10, "layer %s row %d", name, i)
		}
	}
	if diff := cmp.Diff([]drawerKey{{Tap: "A", Hold: "LGui"}, {Tap: "S", Hold: "LAlt"}}, keymap.Layers["base"][1][:2]); diff != "" {
		t.Errorf("hold-tap keys mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, drawerKey{Tap: "Tab", Hold: "sym"}, keymap.Layers["base"][1][4])
	assert.Equal(t, drawerKey{Tap: "Boot"}, keymap.Layers["nav"][0][4])
	assert.Equal(t, drawerKey{}, keymap.Layers["nav"][0][1], "transparent keys are empty")
	require.Len(t, keymap.Combos, 1)
	assert.Equal(t, []int{18, 19}, keymap.Combos[0].KeyPositions)
	assert.Equal(t, "Delete", keymap.Combos[0].Key.Tap)
	assert.Equal(t, []string{"nav"}, keymap.Combos[0].Layers)

	assert.Contains(t, result.Output, "Artifact written.")
}

func TestCompilation_DirectoryOfLayouts(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"layouts/split.kbd":      readSplit(t),
		"layouts/wip/broken.kbd": "layout { 2k; }\nlayer base { 'a' }\n",
		"layouts/README.md":      "not a layout",
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, app.Config{InputPath: "layouts", LogLevel: "error"})

	// --- Assert ---
	require.ErrorIs(t, result.Err, app.ErrCompilationFailed)
	assert.Contains(t, result.Err.Error(), "1 of 2 files had errors")
	assert.Contains(t, result.Artifacts, "split.keyberon.rs", "valid layouts are still written")
	assert.NotContains(t, result.Artifacts, "broken.keyberon.rs")
	assert.Contains(t, result.Output, "broken.kbd:\n2:18: syntax error:")
}

func TestCompilation_LayoutWithoutBackends(t *testing.T) {
	t.Parallel()

	files := map[string]string{"board.kbd": "layout { 2k; }\nlayer base { 'a' 'b'; }\n"}

	result := testutil.RunIntegrationTest(t, files, app.Config{InputPath: "board.kbd"})

	require.NoError(t, result.Err)
	assert.Empty(t, result.Artifacts)
	assert.Contains(t, result.Output, "nothing to write")
}
