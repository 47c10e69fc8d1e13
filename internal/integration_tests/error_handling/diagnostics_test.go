package integration_tests

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/keygridgo/internal/app"
	"github.com/vk/keygridgo/internal/diag"
	"github.com/vk/keygridgo/internal/testutil"
)

const brokenLayout = `layout { 3k; 3k; }
key k { out keyberon: "K"; }
layer base {
  'ab' 'b' 'c' 'd';
  'x' spcae k;
}
`

func TestErrors_OneRunReportsEveryStage(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{"board.kbd": brokenLayout}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, app.Config{InputPath: "board.kbd", LogLevel: "error"})

	// --- Assert ---
	require.ErrorIs(t, result.Err, app.ErrCompilationFailed)
	assert.Empty(t, result.Artifacts, "emission is all-or-nothing")
	lines := strings.Split(strings.TrimSpace(result.Output), "\n")
	assert.Equal(t, []string{
		`4:3: syntax error: character literal 'ab' must hold exactly one character`,
		`4:3: geometry error: row 1 of layer "base" should have 3 keys, but it has 4`,
		`5:7: reference error: unknown key "spcae" (did you mean "space"?)`,
	}, lines)
}

func TestErrors_ResultCodes(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		src      string
		expected []diag.Code
	}{
		{
			name:     "lexical errors stop the run at the first one",
			src:      "layout { 1k; }\nlayer base { 'a\n}\nlayer x { # }\n",
			expected: []diag.Code{diag.UnterminatedQuote},
		},
		{
			name:     "column reference to an unallocated column",
			src:      "layout { 2k; [2]; }\nlayer base { 'a' 'b'; 'c'; }\n",
			expected: []diag.Code{diag.ColumnRefOutOfRange},
		},
		{
			name:     "missing row",
			src:      "layout { 1k; 1k; }\nlayer base { 'a'; }\n",
			expected: []diag.Code{diag.RowCountMismatch},
		},
		{
			name:     "combo at the edge of a row",
			src:      "layout { 2k; }\nlayer base { >esc< 'a' 'b'; }\n",
			expected: []diag.Code{diag.ComboMissingNeighbor},
		},
		{
			name:     "unknown hold layer and modifier",
			src:      "layout { 2k; }\nlayer base { 'a'@[fn] 'b'@hyper; }\n",
			expected: []diag.Code{diag.UnresolvedReference, diag.UnresolvedReference},
		},
		{
			name: "unused key is only a warning",
			src:  "layout { 1k; }\nkey spare { out keyberon: \"X\"; }\nlayer base { 'a'; }\n",
			expected: []diag.Code{diag.UnusedKey},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := testutil.Compile(t, tc.src)

			testutil.AssertCodes(t, result, tc.expected...)
		})
	}
}

func TestErrors_PrettyDiagnostics(t *testing.T) {
	t.Parallel()

	files := map[string]string{"board.kbd": brokenLayout}

	result := testutil.RunIntegrationTest(t, files, app.Config{
		InputPath:   "board.kbd",
		Diagnostics: app.DiagnosticsPretty,
		LogLevel:    "error",
	})

	require.ErrorIs(t, result.Err, app.ErrCompilationFailed)
	assert.Contains(t, result.Output, "Error: unknown key \"spcae\"")
	assert.Contains(t, result.Output, "'x' spcae k;", "pretty output quotes the source line")
}
