package reservation

import (
	"context"
	"time"

	"github.com/chronolock/chronolock/internal/observability"
)

// Sweeper periodically releases expired holds. It shares the store's
// locked revert with the lazy expiry path, so a hold reverted by one
// path is invisible to the other.
type Sweeper struct {
	store  *Store
	logger observability.Logger
}

func NewSweeper(store *Store, logger observability.Logger) *Sweeper {
	return &Sweeper{store: store, logger: logger}
}

func (w *Sweeper) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			released := w.store.ReleaseExpired()
			if released > 0 {
				w.logger.WithField("released", released).Info("released expired holds")
			}
		}
	}
}
