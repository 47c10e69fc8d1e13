// Package schema holds the gohcl decoding targets for key table files.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// LocalsBlock is the type of the block whose attributes are evaluated before
// the rest of the file and exposed as local.<name>.
const LocalsBlock = "locals"

// File is the top-level structure of a table file, after the locals blocks
// have been split off.
type File struct {
	Version  string     `hcl:"version"`
	Symbols  *Symbols   `hcl:"symbols,block"`
	Backends []*Backend `hcl:"backend,block"`
}

// Symbols is the `symbols` block. Values are lists of strings.
type Symbols struct {
	Named     hcl.Expression `hcl:"named,optional"`
	Modifiers hcl.Expression `hcl:"modifiers,optional"`
	Chars     hcl.Expression `hcl:"chars,optional"`
}

// Backend is a `backend "<name>"` block.
type Backend struct {
	Name        string    `hcl:"name,label"`
	Format      string    `hcl:"format"`
	Extension   string    `hcl:"extension"`
	NoOp        string    `hcl:"noop"`
	Transparent string    `hcl:"transparent"`
	HoldTap     string    `hcl:"hold_tap"`
	Layer       string    `hcl:"layer"`
	DeclRange   hcl.Range `hcl:",def_range"`

	// Maps of symbol -> code, decoded with convert/gocty.
	Named     hcl.Expression `hcl:"named,optional"`
	Modifiers hcl.Expression `hcl:"modifiers,optional"`
	Chars     hcl.Expression `hcl:"chars,optional"`
	Options   hcl.Expression `hcl:"options,optional"`
}

// Label returns the backend name.
func (b *Backend) Label() string { return b.Name }

// DefRange returns the range of the block header.
func (b *Backend) DefRange() hcl.Range { return b.DeclRange }
