package tables

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Merge folds other into t. Backends of other replace same-named backends of
// t; symbols of other are appended when new.
func (t *Tables) Merge(other *Tables) {
	t.Symbols.Named = appendNew(t.Symbols.Named, other.Symbols.Named)
	t.Symbols.Modifiers = appendNew(t.Symbols.Modifiers, other.Symbols.Modifiers)
	t.Symbols.Chars = appendNew(t.Symbols.Chars, other.Symbols.Chars)
	for name, b := range other.Backends {
		t.Backends[name] = b
	}
}

func appendNew(dst, src []string) []string {
	for _, s := range src {
		if !slices.Contains(dst, s) {
			dst = append(dst, s)
		}
	}
	return dst
}

// Validate checks that every backend maps every symbol and carries the
// templates the emitter needs.
func (t *Tables) Validate() error {
	var problems []string
	for _, name := range t.BackendNames() {
		b := t.Backends[name]
		if b.Format == "" {
			problems = append(problems, fmt.Sprintf("backend %q: format is required", name))
		}
		if b.Extension == "" {
			problems = append(problems, fmt.Sprintf("backend %q: extension is required", name))
		}
		if !strings.Contains(b.HoldTap, "{tap}") || !strings.Contains(b.HoldTap, "{hold}") {
			problems = append(problems, fmt.Sprintf("backend %q: hold_tap must contain {tap} and {hold}", name))
		}
		if !strings.Contains(b.Layer, "{index}") && !strings.Contains(b.Layer, "{name}") {
			problems = append(problems, fmt.Sprintf("backend %q: layer must contain {index} or {name}", name))
		}
		problems = append(problems, missing(name, "named key", t.Symbols.Named, b.Named)...)
		problems = append(problems, missing(name, "modifier", t.Symbols.Modifiers, b.Modifiers)...)
		problems = append(problems, missing(name, "character", t.Symbols.Chars, b.Chars)...)
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid key tables:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}

func missing(backend, kind string, symbols []string, table map[string]string) []string {
	var gaps []string
	for _, s := range symbols {
		if _, ok := table[s]; !ok {
			gaps = append(gaps, s)
		}
	}
	if len(gaps) == 0 {
		return nil
	}
	sort.Strings(gaps)
	return []string{fmt.Sprintf("backend %q: no mapping for %s %s", backend, kind, strings.Join(quoteAll(gaps), ", "))}
}

func quoteAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
