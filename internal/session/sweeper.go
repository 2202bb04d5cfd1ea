// ABOUTME: Periodic eviction of sessions older than the idle TTL.
// ABOUTME: Age is measured from session creation, matching the legacy cleanup loop.

package session

import (
	"log/slog"
	"time"
)

// Default sweep timing: check every ten minutes, evict sessions older
// than thirty.
const (
	DefaultSweepInterval = 10 * time.Minute
	DefaultSessionTTL    = 30 * time.Minute
)

// Sweeper evicts sessions whose age exceeds the TTL. It never mutates
// session contents, only removes whole entries from the store.
//
// Note: because age is measured from CreatedAt, a connection that keeps
// messaging is still evicted once the TTL elapses. That matches the legacy
// behavior this replaces; switch to a last-activity clock if that ever
// becomes a requirement.
type Sweeper struct {
	store    *Store
	interval time.Duration
	ttl      time.Duration
	logger   *slog.Logger
	done     chan struct{}
}

// NewSweeper creates a sweeper over the given store. Zero interval or TTL
// fall back to the defaults. Call Start to begin sweeping.
func NewSweeper(store *Store, interval, ttl time.Duration, logger *slog.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		store:    store,
		interval: interval,
		ttl:      ttl,
		logger:   logger.With("component", "sweeper"),
		done:     make(chan struct{}),
	}
}

// Start launches the background sweep loop.
func (sw *Sweeper) Start() {
	go sw.run()
}

// Close stops the sweep loop. Safe to call once.
func (sw *Sweeper) Close() {
	close(sw.done)
}

func (sw *Sweeper) run() {
	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sw.Sweep()
		case <-sw.done:
			return
		}
	}
}

// Sweep removes every session older than the TTL and returns the number of
// sessions evicted. Exported so tests and operators can force a pass.
func (sw *Sweeper) Sweep() int {
	now := time.Now()
	evicted := 0

	sw.store.ForEach(func(s *Session) {
		if now.Sub(s.CreatedAt) > sw.ttl {
			sw.store.Remove(s.ID)
			evicted++
			sw.logger.Info("session evicted",
				"connection_id", s.ID,
				"age", now.Sub(s.CreatedAt).Round(time.Second),
				"messages", s.MessageCount(),
			)
		}
	})

	return evicted
}
