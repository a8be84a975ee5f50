package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Pacer spaces polling cycles according to a cron schedule.
// Unlike cron.Cron it never runs anything itself: the caller blocks in Wait
// between cycles, so a slow cycle delays the next one instead of overlapping it.
type Pacer struct {
	schedule cron.Schedule
	now      func() time.Time
}

// NewPacer parses a standard 5-field cron spec or a descriptor such as "@every 10m".
func NewPacer(spec string) (*Pacer, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid poll schedule %q: %w", spec, err)
	}
	return &Pacer{schedule: schedule, now: time.Now}, nil
}

// Next returns the time the following cycle is due, counted from t.
func (p *Pacer) Next(t time.Time) time.Time {
	return p.schedule.Next(t)
}

// Wait blocks until the next scheduled time or until ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	next := p.Next(p.now())
	if next.IsZero() {
		return fmt.Errorf("poll schedule has no upcoming activation")
	}

	timer := time.NewTimer(time.Until(next))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
