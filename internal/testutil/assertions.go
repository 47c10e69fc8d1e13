package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vk/keygridgo/internal/compiler"
	"github.com/vk/keygridgo/internal/diag"
)

// AssertCodes checks the diagnostic codes of a result, in reporting order.
func AssertCodes(t *testing.T, result *compiler.Result, expected ...diag.Code) {
	t.Helper()

	got := diag.Codes(result.Diagnostics)
	if len(expected) == 0 && len(got) == 0 {
		return
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("diagnostic codes mismatch (-want +got):\n%s\nall diagnostics:\n%s", diff, formatAll(result))
	}
}

func formatAll(result *compiler.Result) string {
	s := ""
	for _, d := range result.Diagnostics {
		s += "  " + diag.Format(d) + "\n"
	}
	return s
}
