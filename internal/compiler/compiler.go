package compiler

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/keygridgo/internal/ctxlog"
	"github.com/vk/keygridgo/internal/diag"
	"github.com/vk/keygridgo/internal/emit"
	"github.com/vk/keygridgo/internal/geometry"
	"github.com/vk/keygridgo/internal/model"
	"github.com/vk/keygridgo/internal/resolve"
	"github.com/vk/keygridgo/internal/syntax"
	"github.com/vk/keygridgo/internal/tables"
)

// Result is the outcome of one compilation.
type Result struct {
	// Model is partial when Diagnostics holds errors.
	Model       *model.Model
	Artifacts   []emit.Artifact
	Diagnostics hcl.Diagnostics
}

// HasErrors reports whether any diagnostic is an error.
func (r *Result) HasErrors() bool {
	return r.Diagnostics.HasErrors()
}

// Compiler compiles sources against a fixed set of tables and formats. It
// holds no per-compilation state and is safe for concurrent use.
type Compiler struct {
	tables  *tables.Tables
	emitter *emit.Emitter
}

// New creates a compiler.
func New(t *tables.Tables, formats emit.Formats) *Compiler {
	return &Compiler{tables: t, emitter: emit.New(t, formats)}
}

// Compile compiles src. The returned error is reserved for renderer
// failures; problems in the source are reported as diagnostics.
func (c *Compiler) Compile(ctx context.Context, filename string, src []byte) (*Result, error) {
	logger := ctxlog.FromContext(ctx).With("source", filename)

	doc, diags := syntax.Parse(filename, src)
	logger.Debug("Source parsed.", "keys", len(doc.Keys), "layers", len(doc.Layers), "diagnostics", len(diags))

	geo, geoDiags := geometry.Resolve(doc.Layout)
	diags = append(diags, geoDiags...)
	logger.Debug("Geometry resolved.", "rows", geo.Height(), "columns", geo.Width())

	m, resolveDiags := resolve.Resolve(doc, geo, c.tables)
	diags = append(diags, resolveDiags...)
	logger.Debug("Layers resolved.", "layers", len(m.Layers), "combos", len(m.Combos), "backends", len(m.Backends))

	result := &Result{Model: m}
	if diags.HasErrors() {
		result.Diagnostics = diag.Normalize(diags)
		logger.Debug("Compilation failed.", "errors", diag.ErrorCount(result.Diagnostics))
		return result, nil
	}

	artifacts, emitDiags, err := c.emitter.Emit(ctx, m)
	result.Diagnostics = diag.Normalize(append(diags, emitDiags...))
	if err != nil {
		return result, err
	}
	result.Artifacts = artifacts
	logger.Debug("Compilation finished.", "artifacts", len(artifacts), "diagnostics", len(result.Diagnostics))
	return result, nil
}
