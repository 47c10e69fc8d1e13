package hcl

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/keygridgo/internal/ctxlog"
	"github.com/vk/keygridgo/internal/kggohcl"
	"github.com/vk/keygridgo/internal/schema"
	"github.com/vk/keygridgo/internal/tables"
	"github.com/zclconf/go-cty/cty"
)

// BuiltinFilename is the name diagnostics use for the embedded tables.
const BuiltinFilename = "builtin.hcl"

// SupportedVersions is the constraint every table file version must meet.
const SupportedVersions = "^1.0"

//go:embed builtin.hcl
var builtinSource []byte

// Loader is the HCL-specific implementation of the tables.Loader interface.
type Loader struct {
	builtin bool
}

var _ tables.Loader = (*Loader)(nil)

// NewLoader creates a loader that starts from the embedded built-in tables.
func NewLoader() *Loader {
	return &Loader{builtin: true}
}

// NewBareLoader creates a loader that only reads the given paths.
func NewBareLoader() *Loader {
	return &Loader{}
}

// Load parses the built-in tables (unless the loader is bare) and every path
// in order, merges them and validates the result.
func (l *Loader) Load(ctx context.Context, paths ...string) (*tables.Tables, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Table loader started.", "path_count", len(paths), "builtin", l.builtin)

	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return nil, fmt.Errorf("invalid version constraint %q: %w", SupportedVersions, err)
	}

	parser := hclparse.NewParser()
	var files []parsedFile

	if l.builtin {
		file, diags := parser.ParseHCL(builtinSource, BuiltinFilename)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse built-in tables: %w", diags)
		}
		files = append(files, parsedFile{name: BuiltinFilename, file: file})
	}
	for _, path := range paths {
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse table file %s: %w", path, diags)
		}
		files = append(files, parsedFile{name: path, file: file})
	}

	merged := tables.New()
	for _, f := range files {
		t, err := l.decodeFile(ctx, f, constraint)
		if err != nil {
			return nil, err
		}
		merged.Merge(t)
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Tables loaded.",
		"backends", merged.BackendNames(),
		"named", len(merged.Symbols.Named),
		"modifiers", len(merged.Symbols.Modifiers),
		"chars", len(merged.Symbols.Chars),
	)
	return merged, nil
}

type parsedFile struct {
	name string
	file *hcl.File
}

// decodeFile turns one parsed file into a Tables value.
func (l *Loader) decodeFile(ctx context.Context, f parsedFile, constraint *semver.Constraints) (*tables.Tables, error) {
	name := f.name
	logger := ctxlog.FromContext(ctx).With("file", name)

	content, remain, diags := f.file.Body.PartialContent(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{{Type: schema.LocalsBlock}},
	})
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read table file %s: %w", name, diags)
	}

	evalCtx, diags := evalContext(content.Blocks)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate locals in %s: %w", name, diags)
	}

	var root schema.File
	if diags := gohcl.DecodeBody(remain, evalCtx, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode table file %s: %w", name, diags)
	}

	version, err := semver.NewVersion(root.Version)
	if err != nil {
		return nil, fmt.Errorf("table file %s: invalid version %q: %w", name, root.Version, err)
	}
	if !constraint.Check(version) {
		return nil, fmt.Errorf("table file %s: version %s is not supported (want %s)", name, version, SupportedVersions)
	}

	if diags := kggohcl.DuplicateLabels("backend", root.Backends); diags.HasErrors() {
		return nil, fmt.Errorf("table file %s: %w", name, diags)
	}

	t, diags := translate(evalCtx, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode table file %s: %w", name, diags)
	}
	logger.Debug("Decoded table file.", "version", version.String(), "backends", len(t.Backends))
	return t, nil
}

// evalContext evaluates every locals attribute in source order; a local may
// refer to the locals declared before it.
func evalContext(blocks hcl.Blocks) (*hcl.EvalContext, hcl.Diagnostics) {
	locals := map[string]cty.Value{}
	ctx := &hcl.EvalContext{
		Functions: functions(),
		Variables: map[string]cty.Value{"local": cty.EmptyObjectVal},
	}

	var diags hcl.Diagnostics
	for _, block := range blocks {
		attrs, attrDiags := block.Body.JustAttributes()
		diags = append(diags, attrDiags...)
		for _, attr := range kggohcl.SortedAttributes(attrs) {
			if _, dup := locals[attr.Name]; dup {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Duplicate local value",
					Detail:   fmt.Sprintf("A local value named %q was already defined.", attr.Name),
					Subject:  attr.NameRange.Ptr(),
				})
				continue
			}
			val, valDiags := attr.Expr.Value(ctx)
			diags = append(diags, valDiags...)
			if valDiags.HasErrors() {
				continue
			}
			locals[attr.Name] = val
			ctx.Variables["local"] = cty.ObjectVal(locals)
		}
	}
	return ctx, diags
}
