package scheduler

import (
	"context"
	"fmt"
	"time"
)

// Gate holds the execution window: the scan must run in the final minutes
// of the trading session, whatever clock the host machine is on.
type Gate struct {
	Location    *time.Location
	StartHour   int
	StartMinute int
	CutoffHour  int
	CutoffMin   int
	MaxWait     time.Duration

	now func() time.Time
}

// NewGate parses "HH:MM" window bounds in the given timezone.
func NewGate(timezone, start, cutoff string, maxWait time.Duration) (*Gate, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", timezone, err)
	}
	sh, sm, err := parseClock(start)
	if err != nil {
		return nil, fmt.Errorf("window start: %w", err)
	}
	ch, cm, err := parseClock(cutoff)
	if err != nil {
		return nil, fmt.Errorf("window cutoff: %w", err)
	}
	return &Gate{
		Location:    loc,
		StartHour:   sh,
		StartMinute: sm,
		CutoffHour:  ch,
		CutoffMin:   cm,
		MaxWait:     maxWait,
		now:         time.Now,
	}, nil
}

func parseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}

// Wait blocks until the window opens, sleeping when invoked early. It
// refuses to wait longer than MaxWait so a DST-shifted trigger exits
// instead of firing at the wrong session time.
func (g *Gate) Wait(ctx context.Context) (ok bool, msg string) {
	now := g.now().In(g.Location)
	start := time.Date(now.Year(), now.Month(), now.Day(), g.StartHour, g.StartMinute, 0, 0, g.Location)
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), g.CutoffHour, g.CutoffMin, 59, 0, g.Location)

	if now.After(cutoff) {
		return false, fmt.Sprintf("too late, market closed (%s)", now.Format("03:04 PM"))
	}
	if now.Before(start) {
		wait := start.Sub(now)
		if wait > g.MaxWait {
			return false, "too early (wrong DST schedule), exiting silently"
		}
		select {
		case <-ctx.Done():
			return false, "canceled while waiting for window"
		case <-time.After(wait):
		}
		now = g.now().In(g.Location)
	}
	return true, now.Format("03:04 PM MST")
}
