package catalog

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"log/slog"

	"github.com/hayqway/waybot/internal/logger"
)

// Provider owns the current Catalog and swaps it wholesale on reload.
// Readers always observe a fully-formed catalog: either the previous one or
// the new one, never a partial mix. A failed reload keeps the previous
// catalog in place.
type Provider struct {
	path    string
	current atomic.Pointer[Catalog]
}

// NewProvider creates a Provider reading from the given data file. No load
// happens until Reload is called.
func NewProvider(path string) *Provider {
	return &Provider{path: path}
}

// Current returns the active catalog, or false when no load has succeeded yet.
func (p *Provider) Current() (*Catalog, bool) {
	c := p.current.Load()
	return c, c != nil
}

// Reload builds a fresh catalog from the data file and swaps it in.
// On failure the previously loaded catalog, if any, stays active.
func (p *Provider) Reload(ctx context.Context) error {
	start := time.Now()
	routes, err := LoadFile(p.path)
	if err != nil {
		logger.Error(ctx, "catalog", "catalog.reload",
			slog.String("status", "fail"),
			slog.String("path", p.path),
			slog.Bool("serving_previous", p.current.Load() != nil),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("catalog reload: %w", err)
	}

	next := New(routes)
	p.current.Store(next)
	logger.Info(ctx, "catalog", "catalog.reload",
		slog.String("status", "ok"),
		slog.String("path", p.path),
		slog.Int("routes", len(next.Routes())),
		slog.Int("stops", len(next.Stops())),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

// Run reloads the catalog on a fixed interval until ctx is done. A zero or
// negative interval disables periodic refresh. Errors are logged, not fatal.
func (p *Provider) Run(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = p.Reload(ctx)
		}
	}
}
