package availability

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/BruksfildServices01/recruit-scheduler/internal/validation"
)

const DateLayout = "2006-01-02"

// Exception overrides the weekly template for one calendar date.
// StartTime and EndTime are set iff IsAvailable.
type Exception struct {
	Date        time.Time
	IsAvailable bool
	StartTime   *string
	EndTime     *string
}

// DateOf truncates t to its calendar date, expressed at midnight UTC, so that
// exceptions compare by date regardless of the caller's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

func (e Exception) Key() string {
	return e.Date.Format(DateLayout)
}

type exceptionJSON struct {
	Date        string  `json:"date"`
	IsAvailable bool    `json:"is_available"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
}

// MarshalJSON writes the date as YYYY-MM-DD.
func (e Exception) MarshalJSON() ([]byte, error) {
	return json.Marshal(exceptionJSON{
		Date:        e.Key(),
		IsAvailable: e.IsAvailable,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
	})
}

func (e *Exception) UnmarshalJSON(b []byte) error {
	var raw exceptionJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	d, err := ParseDate(raw.Date)
	if err != nil {
		return err
	}
	*e = Exception{
		Date:        d,
		IsAvailable: raw.IsAvailable,
		StartTime:   raw.StartTime,
		EndTime:     raw.EndTime,
	}
	return nil
}

func indexOf(list []Exception, date time.Time) int {
	date = DateOf(date)
	for i, e := range list {
		if e.Date.Equal(date) {
			return i
		}
	}
	return -1
}

func sortExceptions(list []Exception) {
	sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
}

// AddExceptions appends one unavailable exception per new date.
// Dates already present are left untouched.
func AddExceptions(list []Exception, dates ...time.Time) []Exception {
	out := append([]Exception(nil), list...)
	for _, d := range dates {
		if indexOf(out, d) >= 0 {
			continue
		}
		out = append(out, Exception{Date: DateOf(d)})
	}
	sortExceptions(out)
	return out
}

// SetExceptionAvailable seeds 09:00-17:00 when switched on and clears the
// hours when switched off. Returns false if the date has no exception.
func SetExceptionAvailable(list []Exception, date time.Time, on bool) bool {
	i := indexOf(list, date)
	if i < 0 {
		return false
	}

	e := &list[i]
	e.IsAvailable = on
	if on {
		if e.StartTime == nil {
			s := DefaultStartTime
			e.StartTime = &s
		}
		if e.EndTime == nil {
			end := DefaultEndTime
			e.EndTime = &end
		}
	} else {
		e.StartTime = nil
		e.EndTime = nil
	}
	return true
}

// SetExceptionHours only applies to an available exception.
func SetExceptionHours(list []Exception, date time.Time, start, end string) bool {
	i := indexOf(list, date)
	if i < 0 || !list[i].IsAvailable {
		return false
	}
	list[i].StartTime = &start
	list[i].EndTime = &end
	return true
}

func RemoveException(list []Exception, date time.Time) ([]Exception, bool) {
	i := indexOf(list, date)
	if i < 0 {
		return list, false
	}
	out := make([]Exception, 0, len(list)-1)
	out = append(out, list[:i]...)
	out = append(out, list[i+1:]...)
	return out, true
}

func FindException(list []Exception, date time.Time) (Exception, bool) {
	i := indexOf(list, date)
	if i < 0 {
		return Exception{}, false
	}
	return list[i], true
}

func validateExceptions(list []Exception) validation.FieldErrors {
	fe := validation.FieldErrors{}
	seen := make(map[string]bool, len(list))

	for _, e := range list {
		key := e.Key()
		if seen[key] {
			fe.Add(key, "duplicate date")
			continue
		}
		seen[key] = true

		if !e.IsAvailable {
			if e.StartTime != nil || e.EndTime != nil {
				fe.Add(key, "hours are only allowed when available")
			}
			continue
		}

		if e.StartTime == nil || e.EndTime == nil {
			fe.Add(key, "hours are required when available")
			continue
		}
		fe.Merge(key, validateRange(*e.StartTime, *e.EndTime))
	}
	return fe
}
