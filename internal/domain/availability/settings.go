package availability

import (
	"context"
	"strconv"
	"time"

	"github.com/BruksfildServices01/recruit-scheduler/internal/validation"
)

const (
	ProviderGoogle  = "google"
	ProviderOutlook = "outlook"
)

type CalendarConnection struct {
	Provider string `json:"provider"`
	Enabled  bool   `json:"enabled"`
}

// Settings is everything the availability editor submits at once.
type Settings struct {
	Connections []CalendarConnection `json:"calendar_connections"`
	Weekly      Weekly               `json:"weekly_availability"`
	Exceptions  []Exception          `json:"exceptions"`
}

func DefaultSettings() Settings {
	return Settings{
		Connections: []CalendarConnection{},
		Weekly:      DefaultWeekly(),
		Exceptions:  []Exception{},
	}
}

// Resolve returns the effective availability of a calendar date. A date
// exception wins over the weekday template.
func (s Settings) Resolve(date time.Time) DayAvailability {
	if e, ok := FindException(s.Exceptions, date); ok {
		day := DayAvailability{IsAvailable: e.IsAvailable}
		if e.StartTime != nil {
			day.StartTime = *e.StartTime
		}
		if e.EndTime != nil {
			day.EndTime = *e.EndTime
		}
		return day
	}
	return s.Weekly.Day(WeekdayOf(date))
}

func (s Settings) ConnectionEnabled(provider string) bool {
	for _, c := range s.Connections {
		if c.Provider == provider && c.Enabled {
			return true
		}
	}
	return false
}

func (s Settings) Validate() validation.FieldErrors {
	fe := validation.FieldErrors{}

	seen := make(map[string]bool, len(s.Connections))
	for i, c := range s.Connections {
		key := "calendar_connections." + strconv.Itoa(i) + ".provider"
		switch {
		case c.Provider != ProviderGoogle && c.Provider != ProviderOutlook:
			fe.Add(key, "must be one of: google outlook")
		case seen[c.Provider]:
			fe.Add(key, "duplicate provider")
		}
		seen[c.Provider] = true
	}

	if len(s.Weekly) == 0 {
		fe.Add("weekly_availability", "required")
	}
	fe.Merge("weekly_availability", s.Weekly.Validate())
	fe.Merge("exceptions", validateExceptions(s.Exceptions))

	return fe
}

type Repository interface {
	// GetSettings returns found=false when the owner never saved anything.
	GetSettings(ctx context.Context, ownerID uint) (s Settings, found bool, err error)

	// SaveSettings replaces weekly rows, exceptions and connections atomically.
	SaveSettings(ctx context.Context, ownerID uint, s Settings) error

	// SaveWeekly replaces only the weekly template. Exceptions and
	// connections are left as stored.
	SaveWeekly(ctx context.Context, ownerID uint, w Weekly) error
}
