package testutil

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/keygridgo/internal/app"
	"github.com/vk/keygridgo/internal/hcl"
	"github.com/vk/keygridgo/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	// Output is everything the app printed: diagnostics and logs.
	Output string
	Err    error
	// Artifacts maps generated file names to their contents.
	Artifacts map[string]string
	Root      string
}

// RunIntegrationTest writes files (relative paths to contents) into a
// temporary directory and runs the app once with the built-in tables.
// Relative InputPath and TablesPath in cfg are resolved against that
// directory; OutDir is always the "out" directory inside it.
func RunIntegrationTest(t *testing.T, files map[string]string, cfg app.Config, modules ...registry.Module) *HarnessResult {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	if cfg.InputPath != "" && !filepath.IsAbs(cfg.InputPath) {
		cfg.InputPath = filepath.Join(root, cfg.InputPath)
	}
	if cfg.TablesPath != "" && !filepath.IsAbs(cfg.TablesPath) {
		cfg.TablesPath = filepath.Join(root, cfg.TablesPath)
	}
	cfg.OutDir = filepath.Join(root, "out")
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	config, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &SafeBuffer{}
	t.Cleanup(func() {
		if os.Getenv("KGGO_TEST_LOGS") == "true" {
			t.Logf("--- Full Output for %s ---\n%s", t.Name(), out.String())
		}
	})

	result := &HarnessResult{Root: root}
	a, err := app.NewApp(out, config, hcl.NewLoader(), modules...)
	if err == nil {
		err = a.Run(context.Background())
	}
	result.Err = err
	result.Output = out.String()
	result.Artifacts = readArtifacts(t, config.OutDir)
	return result
}

func readArtifacts(t *testing.T, dir string) map[string]string {
	t.Helper()

	artifacts := make(map[string]string)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return artifacts
	}
	require.NoError(t, err)
	for _, e := range entries {
		if e.Type()&fs.ModeType != 0 {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		artifacts[e.Name()] = string(content)
	}
	return artifacts
}
