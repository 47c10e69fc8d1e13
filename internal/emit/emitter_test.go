package emit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/keygridgo/internal/diag"
	"github.com/vk/keygridgo/internal/geometry"
	"github.com/vk/keygridgo/internal/model"
	"github.com/vk/keygridgo/internal/resolve"
	"github.com/vk/keygridgo/internal/syntax"
	"github.com/vk/keygridgo/internal/tables"
)

type formatMap map[string]Renderer

func (f formatMap) Renderer(format string) (Renderer, bool) {
	r, ok := f[format]
	return r, ok
}

// dump renders every cell code, one row per line.
var dump = RendererFunc(func(w io.Writer, t *Table) error {
	for _, l := range t.Layers {
		fmt.Fprintf(w, "# %s\n", l.Name)
		for _, row := range l.Rows {
			codes := make([]string, len(row))
			for i, c := range row {
				codes[i] = c.Code
			}
			fmt.Fprintln(w, strings.Join(codes, " "))
		}
	}
	for _, c := range t.Combos {
		fmt.Fprintf(w, "combo %d+%d %s\n", c.Left, c.Right, c.Cell.Code)
	}
	return nil
})

func testTables(backends ...string) *tables.Tables {
	t := tables.New()
	t.Symbols = tables.Symbols{Named: []string{"esc"}, Modifiers: []string{"lshift"}, Chars: []string{"a", "b"}}
	for _, name := range backends {
		t.Backends[name] = &tables.Backend{
			Name:        name,
			Format:      "dump",
			Extension:   "txt",
			NoOp:        "_",
			Transparent: "T",
			HoldTap:     "HT({tap},{hold},{timeout})",
			Layer:       "L{index}:{name}",
			Named:       map[string]string{"esc": "Esc"},
			Modifiers:   map[string]string{"lshift": "Sft"},
			Chars:       map[string]string{"a": "A", "b": "B"},
			Options:     map[string]string{"timeout": "400", "tap": "ignored"},
		}
	}
	return t
}

func buildModel(t *testing.T, src string) *model.Model {
	t.Helper()
	doc, diags := syntax.Parse("emit.kbd", []byte(src))
	require.Empty(t, diags)
	geo, diags := geometry.Resolve(doc.Layout)
	require.Empty(t, diags)
	m, diags := resolve.Resolve(doc, geo, testTables())
	require.False(t, diags.HasErrors(), diags.Error())
	return m
}

func TestEmit_ComposesCells(t *testing.T) {
	t.Parallel()

	// Arrange
	m := buildModel(t, `
layout { 3k; }
key boot { out one: "Custom{Boot}"; }
layer base { 'a'@lshift >esc< 'b'@[fn] boot; }
layer fn { n esc lshift; }`)
	e := New(testTables("one"), formatMap{"dump": dump})

	// Act
	artifacts, diags, err := e.Emit(context.Background(), m)

	// Assert
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Len(t, artifacts, 1)
	assert.Equal(t, "one", artifacts[0].Backend)
	assert.Equal(t, "txt", artifacts[0].Extension)
	assert.Equal(t, `# base
HT(A,Sft,400) HT(B,L1:fn,400) Custom{Boot}
# fn
T Esc Sft
combo 0+1 Esc
`, string(artifacts[0].Content))
}

func TestEmit_ArtifactsFollowFirstAppearance(t *testing.T) {
	t.Parallel()

	m := buildModel(t, `
layout { 1k; }
key z { out zeta: "Z"; out alpha: "Z"; }
key y { out mid: "Y"; out alpha: "Y"; }
layer base { z; }
layer other { y; }`)
	e := New(testTables("alpha", "mid", "zeta"), formatMap{"dump": dump})

	artifacts, diags, err := e.Emit(context.Background(), m)

	require.NoError(t, err)
	require.Empty(t, diags)
	names := make([]string, len(artifacts))
	for i, a := range artifacts {
		names[i] = a.Backend
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, names)
}

func TestEmit_MissingBackendMapping(t *testing.T) {
	t.Parallel()

	// Arrange: each key only has a template for one of the two backends.
	m := buildModel(t, `
layout { 2k; }
key reset { out one: "R"; }
key boot { out two: "B"; }
layer base { reset boot; }
layer fn { reset boot; }`)
	e := New(testTables("one", "two"), formatMap{"dump": dump})

	// Act
	artifacts, diags, err := e.Emit(context.Background(), m)

	// Assert
	require.NoError(t, err)
	assert.Nil(t, artifacts, "emission is all-or-nothing")
	assert.Equal(t, []diag.Code{diag.MissingBackendMapping, diag.MissingBackendMapping}, diag.Codes(diags))
	assert.Equal(t, `key "boot" has no output for backend "one"`, diags[0].Summary)
	assert.Equal(t, `key "reset" has no output for backend "two"`, diags[1].Summary)
}

func TestEmit_MissingOutputsSurviveNormalizePerBackend(t *testing.T) {
	t.Parallel()

	// Arrange: every key lacks two of the three backends at one use site.
	m := buildModel(t, `
layout { 3k; }
key a { out one: "A"; }
key b { out two: "B"; }
key c { out three: "C"; }
layer base { a b c; }`)
	e := New(testTables("one", "two", "three"), formatMap{"dump": dump})

	// Act
	_, diags, err := e.Emit(context.Background(), m)
	got := diag.Normalize(diags)

	// Assert
	require.NoError(t, err)
	summaries := make([]string, len(got))
	for i, d := range got {
		summaries[i] = d.Summary
	}
	assert.ElementsMatch(t, []string{
		`key "a" has no output for backend "two"`,
		`key "a" has no output for backend "three"`,
		`key "b" has no output for backend "one"`,
		`key "b" has no output for backend "three"`,
		`key "c" has no output for backend "one"`,
		`key "c" has no output for backend "two"`,
	}, summaries)
}

func TestEmit_UnsupportedBackend(t *testing.T) {
	t.Parallel()

	m := buildModel(t, `
layout { 1k; }
key k { out keyberom: "K"; out other: "O"; }
layer base { k; }`)
	tbl := testTables("keyberon", "other")
	tbl.Backends["other"].Format = "svg"
	e := New(tbl, formatMap{"dump": dump})

	artifacts, diags, err := e.Emit(context.Background(), m)

	require.NoError(t, err)
	assert.Nil(t, artifacts)
	require.Equal(t, []diag.Code{diag.UnsupportedBackend, diag.UnsupportedBackend}, diag.Codes(diags))
	assert.Equal(t, `did you mean "keyberon"?`, diags[0].Detail)
	assert.Contains(t, diags[1].Summary, `output format "svg"`)
}

func TestEmit_RendererError(t *testing.T) {
	t.Parallel()

	m := buildModel(t, "layout { 1k; }\nkey k { out one: \"K\"; }\nlayer base { k; }")
	boom := RendererFunc(func(io.Writer, *Table) error { return errors.New("boom") })
	e := New(testTables("one"), formatMap{"dump": boom})

	_, _, err := e.Emit(context.Background(), m)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend one: failed to render dump output: boom")
}

func TestExpand(t *testing.T) {
	testCases := []struct {
		name     string
		tmpl     string
		options  map[string]string
		vars     map[string]string
		expected string
	}{
		{name: "vars and options", tmpl: "{tap}/{hold}/{t}", options: map[string]string{"t": "9"}, vars: map[string]string{"tap": "a", "hold": "b"}, expected: "a/b/9"},
		{name: "vars shadow options", tmpl: "{tap}", options: map[string]string{"tap": "x"}, vars: map[string]string{"tap": "a"}, expected: "a"},
		{name: "substituted braces are kept", tmpl: "[{tap}]", vars: map[string]string{"tap": "{hold}", "hold": "h"}, expected: "[{hold}]"},
		{name: "unknown placeholders stay", tmpl: "{nope}", expected: "{nope}"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, expand(tc.tmpl, tc.options, tc.vars))
		})
	}
}
