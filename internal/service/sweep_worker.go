package service

import (
	"context"
	"log"
	"time"

	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/cache"
)

// SweepWorker periodically removes daily cache entries written on previous
// days, bounding storage growth. The day stamp check on reads already keeps
// stale data out; the sweep just reclaims space.
type SweepWorker struct {
	cache    *cache.Cache
	interval time.Duration
	stopCh   chan struct{}

	// OnRemoved, when set, is called with the number of entries each sweep
	// removed. Used to feed the Prometheus counter without the worker
	// depending on the handler package.
	OnRemoved func(n int)
}

// NewSweepWorker creates a worker that ticks every interval.
func NewSweepWorker(c *cache.Cache, interval time.Duration) *SweepWorker {
	return &SweepWorker{
		cache:    c,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start runs one sweep immediately, then every interval, until the context
// is cancelled or Stop is called.
func (w *SweepWorker) Start(ctx context.Context) {
	log.Printf("sweep-worker: starting (interval=%s)", w.interval)

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			log.Println("sweep-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Println("sweep-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *SweepWorker) Stop() {
	close(w.stopCh)
}

func (w *SweepWorker) tick(ctx context.Context) {
	start := time.Now()
	removed, err := w.cache.SweepDaily(ctx)
	if err != nil {
		log.Printf("sweep-worker: error: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("sweep-worker: removed %d stale daily entries (%s)",
			removed, time.Since(start).Round(time.Millisecond))
	}
	if w.OnRemoved != nil {
		w.OnRemoved(removed)
	}
}
