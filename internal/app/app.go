package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/keygridgo/internal/compiler"
	"github.com/vk/keygridgo/internal/ctxlog"
	"github.com/vk/keygridgo/internal/registry"
	"github.com/vk/keygridgo/internal/tables"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   tables.Loader
	registry *registry.Registry
	compiler *compiler.Compiler
}

// NewApp is the constructor for the main application. It builds an isolated
// logger and registry, loads the key tables and checks them against the
// registered formats. With no modules, the core modules are registered.
func NewApp(outW io.Writer, cfg *Config, loader tables.Loader, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	reg.RegisterModules(modules...)
	logger.Debug("All output modules registered.", "count", len(modules), "formats", reg.Formats())

	a := &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		loader:   loader,
		registry: reg,
	}
	if err := a.loadTables(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// loadTables (re)loads the key tables and rebuilds the compiler around them.
func (a *App) loadTables(ctx context.Context) error {
	var extra []string
	if a.config.TablesPath != "" {
		extra = append(extra, a.config.TablesPath)
	}

	t, err := a.loader.Load(ctx, extra...)
	if err != nil {
		return fmt.Errorf("failed to load key tables: %w", err)
	}
	a.logger.Debug("Key tables loaded.", "backends", t.BackendNames())

	if err := a.registry.ValidateRegistry(ctx, t); err != nil {
		return err
	}
	a.compiler = compiler.New(t, a.registry)
	return nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
