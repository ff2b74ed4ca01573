package calendar

import "time"

// StartOfWeek returns the Monday at midnight of t's week, in t's location.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// Week is the displayed anchor. Moving it never touches availability data.
type Week struct {
	Start time.Time
}

func WeekOf(t time.Time) Week {
	return Week{Start: StartOfWeek(t)}
}

func (w Week) Prev() Week {
	return Week{Start: w.Start.AddDate(0, 0, -7)}
}

func (w Week) Next() Week {
	return Week{Start: w.Start.AddDate(0, 0, 7)}
}

func (w Week) Today(now time.Time) Week {
	return WeekOf(now.In(w.location()))
}

func (w Week) Days() []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = w.Start.AddDate(0, 0, i)
	}
	return days
}

func (w Week) End() time.Time {
	return w.Start.AddDate(0, 0, 7)
}

func (w Week) Contains(t time.Time) bool {
	t = t.In(w.location())
	return !t.Before(w.Start) && t.Before(w.End())
}

func (w Week) location() *time.Location {
	if w.Start.Location() == nil {
		return time.UTC
	}
	return w.Start.Location()
}

// Navigate applies a "prev", "next" or "today" action. Anything else keeps
// the anchor.
func (w Week) Navigate(action string, now time.Time) Week {
	switch action {
	case "prev":
		return w.Prev()
	case "next":
		return w.Next()
	case "today":
		return w.Today(now)
	}
	return w
}
