// Package watch re-runs a callback when watched source files change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/vk/keygridgo/internal/ctxlog"
)

// DefaultDebounce is used when Options.Debounce is zero.
const DefaultDebounce = 100 * time.Millisecond

// Options configure a Watcher.
type Options struct {
	// Debounce is how long the watcher waits after the last event before it
	// reports a batch of changes.
	Debounce time.Duration
	// Match selects the files of watched directories that count as inputs.
	// Files passed to New by name always match. Nil matches everything.
	Match func(path string) bool
}

// Watcher reports changes to a set of files and directory trees. Editors
// often replace files instead of writing them, so files are watched through
// their parent directory.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	match    func(string) bool
	files    map[string]bool
	roots    []string
}

// New starts watching paths. Directories are watched recursively.
func New(paths []string, opts Options) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		fs:       fw,
		debounce: opts.Debounce,
		match:    opts.Match,
		files:    make(map[string]bool),
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if w.match == nil {
		w.match = func(string) bool { return true }
	}

	for _, p := range paths {
		if err := w.add(filepath.Clean(p)); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	if !info.IsDir() {
		w.files[path] = true
		if err := w.fs.Add(filepath.Dir(path)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	}

	w.roots = append(w.roots, path)
	return w.addTree(path)
}

// addTree watches dir and every directory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fs.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}

// accepts reports whether a change to path is an input change.
func (w *Watcher) accepts(path string) bool {
	if w.files[path] {
		return true
	}
	return w.underRoot(path) && w.match(path)
}

// Run blocks until ctx is done, calling onChange with the sorted list of
// changed inputs after every burst of events. Calls never overlap. Watcher
// errors are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, changed []string)) error {
	logger := ctxlog.FromContext(ctx)

	pending := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return errors.New("file watcher closed")
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			path := filepath.Clean(ev.Name)
			if ev.Has(fsnotify.Create) && w.underRoot(path) {
				if info, err := os.Stat(path); err == nil && info.IsDir() {
					if err := w.addTree(path); err != nil {
						logger.Warn("Failed to watch new directory.", "path", path, "error", err)
					}
					continue
				}
			}
			if !w.accepts(path) {
				continue
			}
			logger.Debug("Input changed.", "path", path, "op", ev.Op.String())
			pending[path] = true
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return errors.New("file watcher closed")
			}
			logger.Warn("File watcher error.", "error", err)

		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			clear(pending)
			onChange(ctx, changed)
		}
	}
}

func (w *Watcher) underRoot(path string) bool {
	for _, root := range w.roots {
		if strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
