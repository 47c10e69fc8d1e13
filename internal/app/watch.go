package app

import (
	"context"
	"os"
	"path/filepath"

	"github.com/vk/keygridgo/internal/ctxlog"
	"github.com/vk/keygridgo/internal/fsutil"
	"github.com/vk/keygridgo/internal/watch"
)

// watch recompiles changed inputs until ctx is done. A change to the extra
// table file reloads the tables and recompiles everything. Compilation errors
// are printed and never stop the loop.
func (a *App) watch(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	paths := []string{a.config.InputPath}
	tablesPath := ""
	if a.config.TablesPath != "" {
		tablesPath = filepath.Clean(a.config.TablesPath)
		paths = append(paths, tablesPath)
	}

	w, err := watch.New(paths, watch.Options{
		Match: func(path string) bool { return filepath.Ext(path) == SourceExtension },
	})
	if err != nil {
		return err
	}
	defer w.Close()

	logger.Info("Watching for changes.", "paths", paths)
	return w.Run(ctx, func(ctx context.Context, changed []string) {
		var inputs []string
		reload := false
		for _, p := range changed {
			if p == tablesPath {
				reload = true
				continue
			}
			inputs = append(inputs, p)
		}

		if reload {
			if err := a.loadTables(ctx); err != nil {
				logger.Error("Failed to reload key tables; keeping the previous ones.", "error", err)
			} else if inputs, err = fsutil.ResolveInputs(a.config.InputPath, SourceExtension); err != nil {
				logger.Error("Failed to resolve inputs.", "error", err)
				return
			}
		}

		for _, p := range inputs {
			if _, err := os.Stat(p); err != nil {
				logger.Debug("Changed input is gone, skipping.", "path", p)
				continue
			}
			if _, err := a.compileFile(ctx, p, true); err != nil {
				logger.Error("Recompilation failed.", "path", p, "error", err)
			}
		}
	})
}
