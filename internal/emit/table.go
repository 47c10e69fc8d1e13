package emit

import (
	"io"

	"github.com/vk/keygridgo/internal/model"
	"github.com/vk/keygridgo/internal/tables"
)

// Cell is one key rendered for a specific backend.
type Cell struct {
	// Code is the complete action: the tap alone, or the hold-tap template
	// filled with Tap and Hold.
	Code string
	Tap  string
	// Hold is empty for tap-only keys.
	Hold        string
	Transparent bool
}

// Layer is a prepared layer. Rows[i][j] sits on column
// Table.Geometry.Rows[i].Columns[j].
type Layer struct {
	Name  string
	Index int
	Rows  [][]Cell
}

// Combo is a prepared combo.
type Combo struct {
	Layer     int
	LayerName string
	Row       int
	Left      int
	Right     int
	LeftPos   int
	RightPos  int
	Cell      Cell
}

// Table is everything a renderer needs for one backend.
type Table struct {
	Source   string
	Backend  *tables.Backend
	Geometry *model.Geometry
	Layers   []Layer
	Combos   []Combo
}

// Renderer writes a prepared table in one output format.
type Renderer interface {
	Render(w io.Writer, t *Table) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(w io.Writer, t *Table) error

// Render calls f(w, t).
func (f RendererFunc) Render(w io.Writer, t *Table) error {
	return f(w, t)
}

// Formats looks up the renderer of an output format.
type Formats interface {
	Renderer(format string) (Renderer, bool)
}

// Artifact is the rendered output of one backend.
type Artifact struct {
	Backend   string
	Format    string
	Extension string
	Content   []byte
}
