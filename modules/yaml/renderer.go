package yaml

import (
	"fmt"
	"io"

	"github.com/vk/keygridgo/internal/emit"
	"gopkg.in/yaml.v3"
)

// Renderer writes keymap-drawer keymaps.
type Renderer struct{}

var _ emit.Renderer = (*Renderer)(nil)

// Render implements emit.Renderer. The layout section is only written when
// the backend sets the qmk_keyboard option; keymap-drawer can take the
// keyboard on its command line instead.
func (r *Renderer) Render(w io.Writer, t *emit.Table) error {
	doc := mapping(0)

	if keyboard := t.Backend.Option("qmk_keyboard", ""); keyboard != "" {
		layout := mapping(0)
		set(layout, "qmk_keyboard", str(keyboard))
		if name := t.Backend.Option("qmk_layout", ""); name != "" {
			set(layout, "qmk_layout", str(name))
		}
		set(doc, "layout", layout)
	}

	layers := mapping(0)
	for _, l := range t.Layers {
		rows := sequence(0)
		for _, row := range l.Rows {
			keys := sequence(yaml.FlowStyle)
			for _, cell := range row {
				push(keys, keyNode(cell))
			}
			push(rows, keys)
		}
		set(layers, l.Name, rows)
	}
	set(doc, "layers", layers)

	combos := sequence(0)
	for _, c := range t.Combos {
		combo := mapping(0)
		positions := sequence(yaml.FlowStyle)
		push(positions, integer(c.LeftPos))
		push(positions, integer(c.RightPos))
		set(combo, "key_positions", positions)
		set(combo, "key", keyNode(c.Cell))
		names := sequence(yaml.FlowStyle)
		push(names, str(c.LayerName))
		set(combo, "layers", names)
		push(combos, combo)
	}
	set(doc, "combos", combos)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode keymap: %w", err)
	}
	return enc.Close()
}

// keyNode renders a cell as {tap, hold}; empty parts are left out.
func keyNode(c emit.Cell) *yaml.Node {
	key := mapping(yaml.FlowStyle)
	if c.Tap != "" {
		set(key, "tap", str(c.Tap))
	}
	if c.Hold != "" {
		set(key, "hold", str(c.Hold))
	}
	return key
}
