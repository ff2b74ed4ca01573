package timezone

import (
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "Europe/Paris"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

// Today is the calendar date of now in tz, at midnight in that zone.
func Today(now time.Time, tz string) time.Time {
	local := now.In(Location(tz))
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, local.Location())
}
