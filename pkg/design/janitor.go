package design

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultCleanupInterval is how often a [Janitor] sweeps by default.
const DefaultCleanupInterval = time.Minute

// Janitor periodically removes expired designs from a store.
type Janitor struct {
	Store    Store
	Interval time.Duration
	Logger   *log.Logger
}

// Run sweeps every Interval until ctx is cancelled. It returns ctx.Err().
func (j *Janitor) Run(ctx context.Context) error {
	interval := j.Interval
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *Janitor) sweep(ctx context.Context) {
	n, err := j.Store.Cleanup(ctx)
	if j.Logger == nil {
		return
	}
	if err != nil {
		j.Logger.Warn("design cleanup failed", "error", err)
		return
	}
	if n > 0 {
		j.Logger.Debug("removed expired designs", "count", n)
	}
}
