package availability

import (
	"fmt"
	"time"
)

// Weekday is 1=Monday .. 7=Sunday.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func AllWeekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// WeekdayOf maps Go's Sunday=0 onto 7.
func WeekdayOf(t time.Time) Weekday {
	wd := int(t.Weekday())
	if wd == 0 {
		return Sunday
	}
	return Weekday(wd)
}

func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("weekday(%d)", int(d))
	}
	return weekdayNames[d]
}
