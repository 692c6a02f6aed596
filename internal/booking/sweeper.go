package booking

import (
	"context"
	"time"

	"github.com/mirrorfinish/detailing-platform/pkg/logging"
)

// HoldSweeper periodically deletes expired holds. Purely housekeeping:
// every read already filters on expires_at, so correctness never depends
// on the sweep having run.
type HoldSweeper struct {
	store  *Store
	every  time.Duration
	logger *logging.Logger
}

// NewHoldSweeper creates a sweeper. every defaults to one hour.
func NewHoldSweeper(store *Store, every time.Duration, logger *logging.Logger) *HoldSweeper {
	if logger == nil {
		logger = logging.Default()
	}
	if every <= 0 {
		every = time.Hour
	}
	return &HoldSweeper{store: store, every: every, logger: logger}
}

// Run sweeps on a ticker until the context is cancelled.
func (w *HoldSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(w.every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *HoldSweeper) sweep(ctx context.Context) {
	n, err := w.store.DeleteExpiredHolds(ctx, time.Now())
	if err != nil {
		w.logger.Error("hold sweep failed", "error", err)
		return
	}
	if n > 0 {
		w.logger.Info("expired holds swept", "count", n)
	}
}
