package diag

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Info is attached to the Extra field of every diagnostic produced by the
// compiler.
type Info struct {
	Code Code
	// Found and Expected are filled for unexpected-token syntax errors.
	Found    string
	Expected []string
}

// New builds a diagnostic with the given severity, code and subject.
func New(severity hcl.DiagnosticSeverity, code Code, subject hcl.Range, summary, detail string) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: severity,
		Summary:  summary,
		Detail:   detail,
		Subject:  subject.Ptr(),
		Extra:    &Info{Code: code},
	}
}

// Errorf builds an error diagnostic with a formatted summary.
func Errorf(code Code, subject hcl.Range, format string, args ...any) *hcl.Diagnostic {
	return New(hcl.DiagError, code, subject, fmt.Sprintf(format, args...), "")
}

// Warningf builds a warning diagnostic with a formatted summary.
func Warningf(code Code, subject hcl.Range, format string, args ...any) *hcl.Diagnostic {
	return New(hcl.DiagWarning, code, subject, fmt.Sprintf(format, args...), "")
}

// Unexpected builds the syntax error for a token the parser cannot use at
// this point.
func Unexpected(subject hcl.Range, found string, expected []string) *hcl.Diagnostic {
	want := expected[0]
	if len(expected) > 1 {
		want = "one of " + strings.Join(expected, ", ")
	}
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  fmt.Sprintf("unexpected %s, expected %s", found, want),
		Subject:  subject.Ptr(),
		Extra:    &Info{Code: UnexpectedToken, Found: found, Expected: expected},
	}
}

// CodeOf returns the code carried by d, or "" for diagnostics that did not
// originate in this module (for example HCL parse errors in table files).
func CodeOf(d *hcl.Diagnostic) Code {
	if info, ok := d.Extra.(*Info); ok {
		return info.Code
	}
	return ""
}

// CategoryOf returns the printed category for d.
func CategoryOf(d *hcl.Diagnostic) Category {
	code := CodeOf(d)
	if code == "" {
		if d.Severity == hcl.DiagWarning {
			return Warning
		}
		return Other
	}
	return code.Category()
}

// Codes lists the codes of diags in order. Handy in tests.
func Codes(diags hcl.Diagnostics) []Code {
	out := make([]Code, 0, len(diags))
	for _, d := range diags {
		out = append(out, CodeOf(d))
	}
	return out
}

// ErrorCount returns the number of error-severity diagnostics.
func ErrorCount(diags hcl.Diagnostics) int {
	n := 0
	for _, d := range diags {
		if d.Severity == hcl.DiagError {
			n++
		}
	}
	return n
}

type dedupeKey struct {
	code     Code
	summary  string
	filename string
	line     int
	column   int
}

// Normalize removes duplicates (same code and message at the same location)
// and orders the remaining diagnostics by line, column and stage. The input
// slice is not modified.
func Normalize(diags hcl.Diagnostics) hcl.Diagnostics {
	seen := make(map[dedupeKey]struct{}, len(diags))
	out := make(hcl.Diagnostics, 0, len(diags))
	for _, d := range diags {
		key := dedupeKey{code: CodeOf(d), summary: d.Summary}
		if d.Subject != nil {
			key.filename = d.Subject.Filename
			key.line = d.Subject.Start.Line
			key.column = d.Subject.Start.Column
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := position(out[i]), position(out[j])
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return CodeOf(out[i]).Stage() < CodeOf(out[j]).Stage()
	})
	return out
}

func position(d *hcl.Diagnostic) hcl.Pos {
	if d.Subject == nil {
		return hcl.Pos{}
	}
	return d.Subject.Start
}

// Format renders d as "line:col: <category>: <message>".
func Format(d *hcl.Diagnostic) string {
	pos := position(d)
	msg := d.Summary
	if d.Detail != "" {
		msg += " (" + d.Detail + ")"
	}
	return fmt.Sprintf("%d:%d: %s: %s", pos.Line, pos.Column, CategoryOf(d), msg)
}

// Write prints every diagnostic on its own line using Format.
func Write(w io.Writer, diags hcl.Diagnostics) error {
	for _, d := range diags {
		if _, err := fmt.Fprintln(w, Format(d)); err != nil {
			return err
		}
	}
	return nil
}

// WritePretty prints diagnostics with source snippets. sources maps file
// names to their contents.
func WritePretty(w io.Writer, diags hcl.Diagnostics, sources map[string][]byte, width uint, color bool) error {
	files := make(map[string]*hcl.File, len(sources))
	for name, src := range sources {
		files[name] = &hcl.File{Bytes: src}
	}
	return hcl.NewDiagnosticTextWriter(w, files, width, color).WriteDiagnostics(diags)
}
