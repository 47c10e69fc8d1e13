package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/keygridgo/internal/compiler"
	"github.com/vk/keygridgo/internal/ctxlog"
	"github.com/vk/keygridgo/internal/diag"
	"github.com/vk/keygridgo/internal/fsutil"
)

// SourceExtension is the extension of layout files searched for in input
// directories.
const SourceExtension = ".kbd"

// prettyWidth is the wrap width of pretty diagnostics.
const prettyWidth = 100

// Run compiles every input once and, in watch mode, keeps recompiling on
// changes until ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	inputs, err := fsutil.ResolveInputs(a.config.InputPath, SourceExtension)
	if err != nil {
		return err
	}
	a.logger.Debug("Inputs resolved.", "count", len(inputs))

	failed, err := a.compileAll(ctx, inputs)
	if err != nil {
		return err
	}

	if a.config.Watch {
		return a.watch(ctx)
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files had errors", ErrCompilationFailed, failed, len(inputs))
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// compileAll compiles inputs in order and returns how many failed.
func (a *App) compileAll(ctx context.Context, inputs []string) (int, error) {
	failed := 0
	for _, path := range inputs {
		ok, err := a.compileFile(ctx, path, len(inputs) > 1)
		if err != nil {
			return failed, err
		}
		if !ok {
			failed++
		}
	}
	return failed, nil
}

// compileFile compiles one input, prints its diagnostics and writes its
// artifacts. ok is false when the source has errors; err is reserved for
// I/O and rendering failures.
func (a *App) compileFile(ctx context.Context, path string, header bool) (ok bool, err error) {
	logger := ctxlog.FromContext(ctx)

	src, err := fsutil.ReadSource(path)
	if err != nil {
		return false, err
	}

	result, err := a.compiler.Compile(ctx, path, src)
	if err != nil {
		return false, fmt.Errorf("failed to compile %s: %w", path, err)
	}

	if len(result.Diagnostics) > 0 {
		if header {
			fmt.Fprintf(a.outW, "%s:\n", path)
		}
		if err := a.printDiagnostics(result, path, src); err != nil {
			return false, fmt.Errorf("failed to print diagnostics: %w", err)
		}
	}
	if result.HasErrors() {
		logger.Info("Compilation failed.", "path", path, "errors", diag.ErrorCount(result.Diagnostics))
		return false, nil
	}

	if err := a.writeArtifacts(ctx, path, result); err != nil {
		return false, err
	}
	logger.Info("Compiled.", "path", path, "artifacts", len(result.Artifacts), "warnings", len(result.Diagnostics))
	return true, nil
}

func (a *App) printDiagnostics(result *compiler.Result, path string, src []byte) error {
	if a.config.Diagnostics == DiagnosticsPretty {
		return diag.WritePretty(a.outW, result.Diagnostics, map[string][]byte{path: src}, prettyWidth, false)
	}
	return diag.Write(a.outW, result.Diagnostics)
}

// ArtifactPath names the output of one backend: <input-base>.<backend>.<ext>
// inside outDir.
func ArtifactPath(outDir, input, backend, extension string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(outDir, fmt.Sprintf("%s.%s.%s", base, backend, extension))
}

func (a *App) writeArtifacts(ctx context.Context, input string, result *compiler.Result) error {
	logger := ctxlog.FromContext(ctx)
	if len(result.Artifacts) == 0 {
		logger.Warn("Layout requests no backend; nothing to write.", "path", input)
		return nil
	}

	if err := os.MkdirAll(a.config.OutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, art := range result.Artifacts {
		out := ArtifactPath(a.config.OutDir, input, art.Backend, art.Extension)
		if err := os.WriteFile(out, art.Content, 0o644); err != nil {
			return fmt.Errorf("failed to write %s output: %w", art.Backend, err)
		}
		logger.Info("Artifact written.", "backend", art.Backend, "path", out, "bytes", len(art.Content))
	}
	return nil
}
