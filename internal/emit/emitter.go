package emit

import (
	"bytes"
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/keygridgo/internal/ctxlog"
	"github.com/vk/keygridgo/internal/diag"
	"github.com/vk/keygridgo/internal/didyoumean"
	"github.com/vk/keygridgo/internal/model"
	"github.com/vk/keygridgo/internal/tables"
	"golang.org/x/sync/errgroup"
)

// Emitter renders models with a fixed set of tables and formats.
type Emitter struct {
	tables  *tables.Tables
	formats Formats
}

// New creates an emitter.
func New(t *tables.Tables, formats Formats) *Emitter {
	return &Emitter{tables: t, formats: formats}
}

type job struct {
	table    *Table
	renderer Renderer
}

// Emit prepares and renders every backend requested by m. When preparation
// reports an error diagnostic, nothing is rendered and no artifact is
// returned. The error result is reserved for renderer failures.
func (e *Emitter) Emit(ctx context.Context, m *model.Model) ([]Artifact, hcl.Diagnostics, error) {
	logger := ctxlog.FromContext(ctx)

	var diags hcl.Diagnostics
	jobs := make([]job, 0, len(m.Backends))
	for _, requested := range m.Backends {
		backend, renderer, d := e.lookup(requested)
		if d != nil {
			diags = append(diags, d)
			continue
		}
		table, prepDiags := prepare(m, backend)
		diags = append(diags, prepDiags...)
		jobs = append(jobs, job{table: table, renderer: renderer})
	}
	if diags.HasErrors() {
		logger.Debug("Emission skipped.", "errors", diag.ErrorCount(diags))
		return nil, diags, nil
	}

	artifacts := make([]Artifact, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	for i, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := j.renderer.Render(&buf, j.table); err != nil {
				return fmt.Errorf("backend %s: failed to render %s output: %w", j.table.Backend.Name, j.table.Backend.Format, err)
			}
			artifacts[i] = Artifact{
				Backend:   j.table.Backend.Name,
				Format:    j.table.Backend.Format,
				Extension: j.table.Backend.Extension,
				Content:   buf.Bytes(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, diags, err
	}

	logger.Debug("Emission finished.", "artifacts", len(artifacts))
	return artifacts, diags, nil
}

// lookup finds the table and renderer of a requested backend.
func (e *Emitter) lookup(requested model.Backend) (*tables.Backend, Renderer, *hcl.Diagnostic) {
	backend, ok := e.tables.Backend(requested.Name)
	if !ok {
		d := diag.Errorf(diag.UnsupportedBackend, requested.Range, "unsupported backend %q", requested.Name)
		if s := didyoumean.Suggest(requested.Name, e.tables.BackendNames()); s != "" {
			d.Detail = fmt.Sprintf("did you mean %q?", s)
		}
		return nil, nil, d
	}
	renderer, ok := e.formats.Renderer(backend.Format)
	if !ok {
		return nil, nil, diag.Errorf(diag.UnsupportedBackend, requested.Range,
			"backend %q uses output format %q, which is not available", requested.Name, backend.Format)
	}
	return backend, renderer, nil
}
