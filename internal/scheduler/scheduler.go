// Package scheduler fires the automated daily post once per calendar day,
// idempotently across restarts.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fxelysrism/a-map-of-us-bot/internal/core/ports"
	"github.com/fxelysrism/a-map-of-us-bot/internal/mous"
)

// fireDeadline bounds one full fire (fetch, render, send) so a hung send
// cannot wedge the loop past the next day's tick.
const fireDeadline = 2 * time.Minute

const dateLayout = "2006-01-02"

// Scheduler sleeps until local midnight in its zone, then runs one
// guarded fire. A fire that fails for any reason is skipped until the
// next day's tick; the loop itself never stops on error.
type Scheduler struct {
	Source    ports.Source
	Store     ports.Storage
	Publisher ports.Publisher
	Location  *time.Location

	// Ready gates the first fire until the platform session is up.
	Ready <-chan struct{}

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time

	mu sync.Mutex
}

func New(source ports.Source, store ports.Storage, pub ports.Publisher, loc *time.Location, ready <-chan struct{}) *Scheduler {
	return &Scheduler{
		Source:    source,
		Store:     store,
		Publisher: pub,
		Location:  loc,
		Ready:     ready,
		Now:       time.Now,
	}
}

// Run blocks until ctx is done. The first fire waits for the readiness
// gate so the send never races the platform's channel cache.
func (s *Scheduler) Run(ctx context.Context) {
	if s.Ready != nil {
		select {
		case <-s.Ready:
		case <-ctx.Done():
			return
		}
	}

	for {
		wait := s.untilNextFire(s.Now().In(s.Location))
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
			s.Fire(ctx)
		}
	}
}

// untilNextFire is the duration until the next 00:00 in the zone.
func (s *Scheduler) untilNextFire(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.Location).AddDate(0, 0, 1)
	return next.Sub(now)
}

// Fire runs one guarded post attempt. Safe to call concurrently and safe
// to call repeatedly within a day: the marker makes extra calls no-ops.
// All failures are swallowed; the day is simply skipped.
func (s *Scheduler) Fire(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, fireDeadline)
	defer cancel()

	today := s.Now().In(s.Location).Format(dateLayout)

	last, err := s.Store.LastPostDate(ctx)
	if err != nil {
		// Treated as "no marker", same as the file store's leniency.
		last = ""
	}
	if last == today {
		return
	}

	payload, err := s.Source.Random(ctx)
	if err != nil {
		slog.Debug("daily post: fetch failed", slog.String("error", err.Error()))
		return
	}

	doc := mous.Render(mous.Canonicalize(payload))
	if err := s.Publisher.Publish(ctx, doc); err != nil {
		slog.Debug("daily post: publish failed", slog.String("error", err.Error()))
		return
	}

	if err := s.Store.SetLastPostDate(ctx, today); err != nil {
		// A lost marker write risks one duplicate post tomorrow; accepted.
		slog.Debug("daily post: marker save failed", slog.String("error", err.Error()))
	}
}
