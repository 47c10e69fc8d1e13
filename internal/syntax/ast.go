package syntax

import "github.com/hashicorp/hcl/v2"

// Document is the root of a parsed layout file.
type Document struct {
	Layout *LayoutBlock // nil when the source has no usable layout block
	Keys   []*KeyDef
	Layers []*LayerDef
	Range  hcl.Range

	// Truncated is set when a lexical error cut the source short. Anything
	// after the cut, including the rest of the last block, was never seen.
	Truncated bool
}

// LayoutBlock declares the physical geometry, one row per entry.
type LayoutBlock struct {
	Rows  []*PhysicalRow
	Range hcl.Range
}

// PhysicalRow is one ';'-terminated row of the layout block.
type PhysicalRow struct {
	Segments []*Segment
	Range    hcl.Range
	// Recovered is set when the parser had to resynchronise inside the row,
	// so Segments may be incomplete.
	Recovered bool
}

// SegmentKind enumerates the row segment variants.
type SegmentKind int

const (
	KeyGroup    SegmentKind = iota // <N>k: N fresh columns
	SpacerGroup                    // <N>s: N units of gap, no column
	ColumnRef                      // [N]: reuse column N
)

func (k SegmentKind) String() string {
	switch k {
	case KeyGroup:
		return "key group"
	case SpacerGroup:
		return "spacer"
	case ColumnRef:
		return "column reference"
	}
	return "unknown segment"
}

// Segment is one element of a physical row. N is the count for key groups
// and spacers and the column index for column references.
type Segment struct {
	Kind  SegmentKind
	N     int
	Range hcl.Range
}

// KeyDef is a named custom action with one template per backend.
type KeyDef struct {
	Name      string
	NameRange hcl.Range
	Outputs   []*OutClause
	Range     hcl.Range
}

// OutClause binds a backend name to an opaque code template.
type OutClause struct {
	Backend      string
	BackendRange hcl.Range
	Template     string
	Range        hcl.Range
}

// LayerDef is a named grid of cells.
type LayerDef struct {
	Name      string
	NameRange hcl.Range
	Rows      []*LayerRow
	Range     hcl.Range
}

// LayerRow is one ';'-terminated row of cells.
type LayerRow struct {
	Cells     []*Cell
	Range     hcl.Range
	Recovered bool
}

// Primary returns the number of non-combo cells in the row.
func (r *LayerRow) Primary() int {
	n := 0
	for _, c := range r.Cells {
		if c.Kind != Combo {
			n++
		}
	}
	return n
}

// CellKind enumerates the cell variants.
type CellKind int

const (
	Literal     CellKind = iota // 'x'
	Named                       // bareword key name
	Transparent                 // the reserved bareword n
	Combo                       // >cell<
)

func (k CellKind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Named:
		return "named key"
	case Transparent:
		return "transparent"
	case Combo:
		return "combo"
	}
	return "unknown cell"
}

// TransparentName is the reserved bareword for a transparent cell.
const TransparentName = "n"

// Cell is one entry of a layer row. Char is set for literals, Name for named
// cells, Inner for combos. Invalid marks a cell kept only as a placeholder
// after a syntax error so that row widths stay meaningful.
type Cell struct {
	Kind    CellKind
	Char    rune
	Name    string
	Inner   *Cell
	Hold    *Hold
	Invalid bool
	Range   hcl.Range
}

// HoldKind enumerates the syntactic forms of a hold decoration. Whether an
// @name refers to a modifier or to a custom key is decided by the resolver.
type HoldKind int

const (
	HoldName  HoldKind = iota // @name
	HoldLayer                 // @[layer]
)

// Hold is the decoration after '@'.
type Hold struct {
	Kind  HoldKind
	Name  string
	Range hcl.Range
}
