package rust

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vk/keygridgo/internal/emit"
)

// Renderer writes keyberon layers.
type Renderer struct{}

var _ emit.Renderer = (*Renderer)(nil)

// printer remembers the first write error so rendering code can stay linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// Render implements emit.Renderer.
func (r *Renderer) Render(w io.Writer, t *emit.Table) error {
	m := newMatrix(t)
	p := &printer{w: w}

	p.printf("// Generated by keygridgo from %s. Do not edit.\n\n", filepath.Base(t.Source))

	p.printf("/// Combos as ((row, col), (row, col)) => (row, col) of the slot they trigger.\n")
	p.printf("pub static COMBOS: [((u8, u8), (u8, u8), (u8, u8)); %d] = [\n", len(m.slots))
	for _, s := range m.slots {
		p.printf("    ((%d, %d), (%d, %d), (%d, %d)),\n",
			s.Left.Row, s.Left.Col, s.Right.Row, s.Right.Col, s.Slot.Row, s.Slot.Col)
	}
	p.printf("];\n\n")

	p.printf("pub static LAYERS: ::keyberon::layout::Layers<%d, %d, %d, %s> = [\n",
		m.width, m.rows(), len(t.Layers), t.Backend.Option("custom_event", "()"))
	for _, l := range t.Layers {
		p.printf("    // %s\n", l.Name)
		p.printf("    [\n")
		for _, row := range m.layer(t, l, t.Backend.NoOp) {
			p.printf("        [%s],\n", strings.Join(row, ", "))
		}
		p.printf("    ],\n")
	}
	p.printf("];\n")

	return p.err
}
