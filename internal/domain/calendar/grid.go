package calendar

import (
	"fmt"
	"strconv"
	"time"

	"github.com/BruksfildServices01/recruit-scheduler/internal/domain/availability"
)

// HourRange is the visible rows [From, To).
type HourRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

var DefaultHourRange = HourRange{From: 8, To: 20}

func (r HourRange) Validate() error {
	if r.From < 0 || r.To > 24 || r.From >= r.To {
		return fmt.Errorf("invalid hour range %d-%d", r.From, r.To)
	}
	return nil
}

func (r HourRange) Contains(hour int) bool {
	return hour >= r.From && hour < r.To
}

// Resolver returns the effective availability for a calendar date.
// availability.Settings satisfies it.
type Resolver interface {
	Resolve(date time.Time) availability.DayAvailability
}

type BusyBlock struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type Cell struct {
	Hour        int  `json:"hour"`
	Highlighted bool `json:"highlighted"`
	Busy        bool `json:"busy,omitempty"`
}

type Column struct {
	Date    string               `json:"date"`
	Weekday availability.Weekday `json:"weekday"`
	IsToday bool                 `json:"is_today"`
	Cells   []Cell               `json:"cells"`
}

type Grid struct {
	WeekStart string     `json:"week_start"`
	Hours     HourRange  `json:"hours"`
	Columns   []Column   `json:"columns"`
	Now       *NowMarker `json:"now,omitempty"`
}

// BuildGrid shades cells inside [startHour, endHour) of available days. Only
// the hour part of "HH:MM" is compared, so half hours are not visualized.
func BuildGrid(w Week, hours HourRange, res Resolver, busy []BusyBlock, now time.Time) Grid {
	g := Grid{
		WeekStart: w.Start.Format(availability.DateLayout),
		Hours:     hours,
		Columns:   make([]Column, 0, 7),
	}

	today := now.In(w.location())
	for _, date := range w.Days() {
		day := res.Resolve(date)
		startHour, endHour, ok := hourBounds(day)

		col := Column{
			Date:    date.Format(availability.DateLayout),
			Weekday: availability.WeekdayOf(date),
			IsToday: sameDate(date, today),
			Cells:   make([]Cell, 0, hours.To-hours.From),
		}

		for h := hours.From; h < hours.To; h++ {
			col.Cells = append(col.Cells, Cell{
				Hour:        h,
				Highlighted: ok && h >= startHour && h < endHour,
				Busy:        overlapsBusy(date, h, busy),
			})
		}
		g.Columns = append(g.Columns, col)
	}

	g.Now = NowIndicator(w, hours, now)
	return g
}

func hourBounds(day availability.DayAvailability) (int, int, bool) {
	if !day.IsAvailable {
		return 0, 0, false
	}
	start, err := leadingHour(day.StartTime)
	if err != nil {
		return 0, 0, false
	}
	end, err := leadingHour(day.EndTime)
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

func leadingHour(hm string) (int, error) {
	if len(hm) < 2 {
		return 0, fmt.Errorf("invalid time %q", hm)
	}
	return strconv.Atoi(hm[:2])
}

func overlapsBusy(date time.Time, hour int, busy []BusyBlock) bool {
	if len(busy) == 0 {
		return false
	}
	cellStart := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, date.Location())
	cellEnd := cellStart.Add(time.Hour)
	for _, b := range busy {
		if b.Start.Before(cellEnd) && b.End.After(cellStart) {
			return true
		}
	}
	return false
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
