package availability

import (
	"strconv"

	"github.com/BruksfildServices01/recruit-scheduler/internal/validation"
)

const (
	DefaultStartTime = "09:00"
	DefaultEndTime   = "17:00"
)

type DayAvailability struct {
	IsAvailable bool   `json:"is_available"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

// Weekly is the recurring template, keyed by weekday.
type Weekly map[Weekday]DayAvailability

// DefaultWeekly seeds Monday..Friday 09:00-17:00. Weekend days keep the same
// hours but are switched off.
func DefaultWeekly() Weekly {
	w := make(Weekly, 7)
	for _, d := range AllWeekdays() {
		w[d] = DayAvailability{
			IsAvailable: d <= Friday,
			StartTime:   DefaultStartTime,
			EndTime:     DefaultEndTime,
		}
	}
	return w
}

func (w Weekly) Clone() Weekly {
	if w == nil {
		return nil
	}
	out := make(Weekly, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

func (w Weekly) Day(d Weekday) DayAvailability {
	return w[d]
}

func (w Weekly) SetAvailable(d Weekday, on bool) {
	day := w[d]
	day.IsAvailable = on
	if on && day.StartTime == "" && day.EndTime == "" {
		day.StartTime, day.EndTime = DefaultStartTime, DefaultEndTime
	}
	w[d] = day
}

func (w Weekly) SetHours(d Weekday, start, end string) {
	day := w[d]
	day.StartTime = start
	day.EndTime = end
	w[d] = day
}

// OnlyAvailable returns a copy holding available days only.
func (w Weekly) OnlyAvailable() Weekly {
	out := Weekly{}
	for k, v := range w {
		if v.IsAvailable {
			out[k] = v
		}
	}
	return out
}

func (w Weekly) AnyAvailable() bool {
	for _, v := range w {
		if v.IsAvailable {
			return true
		}
	}
	return false
}

// Validate reports errors keyed "<weekday id>.<field>".
func (w Weekly) Validate() validation.FieldErrors {
	fe := validation.FieldErrors{}
	for d, day := range w {
		key := strconv.Itoa(int(d))
		if !d.Valid() {
			fe.Add(key, "weekday must be between 1 and 7")
			continue
		}
		if !day.IsAvailable {
			continue
		}
		fe.Merge(key, validateRange(day.StartTime, day.EndTime))
	}
	return fe
}

func validateRange(start, end string) validation.FieldErrors {
	fe := validation.FieldErrors{}

	s, err := validation.ClockMinutes(start)
	if err != nil {
		fe.Add("start_time", "must be a time formatted HH:MM")
	}
	e, err2 := validation.ClockMinutes(end)
	if err2 != nil {
		fe.Add("end_time", "must be a time formatted HH:MM")
	}
	if err == nil && err2 == nil && s >= e {
		fe.Add("end_time", "must be after start_time")
	}
	return fe
}
