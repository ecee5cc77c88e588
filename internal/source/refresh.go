package source

import (
	"context"
	"log/slog"
	"time"

	"ados/internal/store"
)

// Refresher periodically re-fetches a configured remote sheet while the
// server runs. A failed cycle only logs; the prior snapshot stays live.
type Refresher struct {
	loader   *Loader
	snapshot *store.Snapshot
	url      string
	interval time.Duration
	lg       *slog.Logger
}

func NewRefresher(loader *Loader, snapshot *store.Snapshot, url string, interval time.Duration, lg *slog.Logger) *Refresher {
	return &Refresher{loader: loader, snapshot: snapshot, url: url, interval: interval, lg: lg}
}

func (r *Refresher) Run(ctx context.Context) {
	if r.url == "" || r.interval <= 0 {
		return
	}
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			records, err := r.loader.LoadURL(ctx, r.url)
			if err != nil {
				r.lg.Warn("refresh cycle failed", "url", r.url, "error", err)
				continue
			}
			r.snapshot.Replace(records, r.url)
			r.lg.Info("refresh cycle done", "url", r.url, "records", len(records))
		}
	}
}
