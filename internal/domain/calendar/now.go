package calendar

import (
	"context"
	"time"
)

type NowMarker struct {
	DayIndex      int     `json:"day_index"`
	Hour          int     `json:"hour"`
	Minute        int     `json:"minute"`
	OffsetPercent float64 `json:"offset_percent"`
}

// NowIndicator is nil unless now falls inside the displayed week and the
// visible hour range. OffsetPercent is relative to the whole visible range.
func NowIndicator(w Week, hours HourRange, now time.Time) *NowMarker {
	local := now.In(w.location())
	if !w.Contains(local) || !hours.Contains(local.Hour()) {
		return nil
	}

	day := 0
	for i, d := range w.Days() {
		if sameDate(d, local) {
			day = i
		}
	}

	elapsed := float64((local.Hour()-hours.From)*60 + local.Minute())
	total := float64((hours.To - hours.From) * 60)

	return &NowMarker{
		DayIndex:      day,
		Hour:          local.Hour(),
		Minute:        local.Minute(),
		OffsetPercent: elapsed / total * 100,
	}
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

const NowRefreshInterval = time.Minute

// Watch emits clock.Now() right away and then on every tick until ctx ends.
// The channel is closed on teardown. Slow readers miss ticks instead of
// blocking the ticker.
func Watch(ctx context.Context, clock Clock, interval time.Duration) <-chan time.Time {
	out := make(chan time.Time, 1)

	go func() {
		defer close(out)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		out <- clock.Now()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				select {
				case out <- clock.Now():
				default:
				}
			}
		}
	}()

	return out
}
