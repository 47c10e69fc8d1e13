package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/keygridgo/internal/ctxlog"
	"github.com/vk/keygridgo/internal/tables"
)

// ValidateRegistry checks the registered formats against the loaded tables.
// A backend whose format has no renderer is only logged: it becomes an error
// when a layout actually requests that backend. Having no usable backend at
// all is an error.
func (r *Registry) ValidateRegistry(ctx context.Context, t *tables.Tables) error {
	logger := ctxlog.FromContext(ctx)

	var usable, unusable []string
	for _, name := range t.BackendNames() {
		b := t.Backends[name]
		if _, ok := r.FormatRegistry[b.Format]; !ok {
			logger.Warn("Backend uses an output format no module provides; layouts requesting it will fail.",
				"backend", name, "format", b.Format, "available", r.Formats())
			unusable = append(unusable, fmt.Sprintf("%s (format %q)", name, b.Format))
			continue
		}
		usable = append(usable, name)
	}

	if len(usable) == 0 {
		if len(unusable) == 0 {
			return fmt.Errorf("registry validation failed: no backends are defined")
		}
		return fmt.Errorf("registry validation failed: no backend can be rendered:\n- %s", strings.Join(unusable, "\n- "))
	}
	logger.Debug("Registry validated.", "backends", usable, "formats", r.Formats())
	return nil
}
