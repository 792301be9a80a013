package app

import (
	"context"
	"log"
	"time"

	"github.com/five82/gobiview/internal/gobi"
	"github.com/five82/gobiview/internal/report"
	"github.com/five82/gobiview/internal/state"
)

const maxBackoff = 5 * time.Minute

// StartPoller launches a background goroutine that refetches the results
// table for the store's current source. A non-positive interval disables
// polling. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, client gobi.FragmentFetcher, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			refresh(ctx, store, client)
			timer.Reset(calculateBackoff(store.Snapshot().ConsecutiveFailures, interval))
		}
	}()
}

// calculateBackoff doubles the interval per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}

func refresh(ctx context.Context, store *state.Store, client gobi.FragmentFetcher) {
	source := store.Source()
	if source == "" {
		return
	}
	markup, err := client.FetchFragment(ctx, source, report.ResultsContainerID)
	if !store.Update(source, markup, err) {
		log.Printf("report poll for %s dropped: source changed", source)
		return
	}
	if err != nil {
		log.Printf("report poll failed: %v", err)
	}
}
