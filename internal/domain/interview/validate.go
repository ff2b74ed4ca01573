package interview

import (
	"strconv"
	"time"

	"github.com/BruksfildServices01/recruit-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/recruit-scheduler/internal/validation"
)

// Each variant below carries only the fields it requires. Validate picks
// one format variant and one schedule variant from the discriminants and
// never looks at fields of the inactive branches.

type commonFields struct {
	Format           Format `json:"format" validate:"required,oneof=video telephone person"`
	Duration         string `json:"duration" validate:"required,oneof=15 30 45 60"`
	AvailabilityMode Mode   `json:"availability_mode" validate:"required,oneof=specific share"`
	Message          string `json:"message" validate:"required,min=1"`
}

type videoFields struct {
	VideoURL string `json:"video_url" validate:"required,url"`
}

type personFields struct {
	Address string `json:"address" validate:"required"`
	MapURL  string `json:"map_url" validate:"required,url"`
}

type specificFields struct {
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	Time           string `json:"time" validate:"required,hhmm"`
	Timezone       string `json:"timezone" validate:"required,timezone"`
	AlternateSlots []Slot `json:"alternate_slots" validate:"dive"`
}

type sharedFields struct {
	SelectedWeek string `json:"selected_week" validate:"required,datetime=2006-01-02"`
}

var minProposalDate = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

type formatValidator func(s Submission, c Candidate) (FormatDetails, validation.FieldErrors)

type scheduleValidator func(s Submission, now time.Time) (Schedule, validation.FieldErrors)

var formatValidators = map[Format]formatValidator{
	FormatVideo: func(s Submission, _ Candidate) (FormatDetails, validation.FieldErrors) {
		fe := validation.Struct(videoFields{VideoURL: s.VideoURL})
		return VideoDetails{URL: s.VideoURL}, fe
	},
	FormatTelephone: func(_ Submission, c Candidate) (FormatDetails, validation.FieldErrors) {
		fe := validation.FieldErrors{}
		if c.Phone == "" {
			fe.Add("telephone", "candidate has no phone number")
		}
		return TelephoneDetails{Phone: c.Phone}, fe
	},
	FormatPerson: func(s Submission, _ Candidate) (FormatDetails, validation.FieldErrors) {
		fe := validation.Struct(personFields{Address: s.Address, MapURL: s.MapURL})
		return PersonDetails{Address: s.Address, MapURL: s.MapURL}, fe
	},
}

var scheduleValidators = map[Mode]scheduleValidator{
	ModeSpecific: validateSpecific,
	ModeShare:    validateShared,
}

// Validate checks the active (mode x format) variant and returns the typed
// Proposal, or validation.FieldErrors keyed by json field.
func Validate(s Submission, c Candidate, now time.Time) (*Proposal, error) {
	fe := validation.Struct(commonFields{
		Format:           s.Format,
		Duration:         s.Duration,
		AvailabilityMode: s.AvailabilityMode,
		Message:          s.Message,
	})

	var (
		details  FormatDetails
		schedule Schedule
	)

	if fv, ok := formatValidators[s.Format]; ok {
		d, errs := fv(s, c)
		fe.Merge("", errs)
		details = d
	}

	if sv, ok := scheduleValidators[s.AvailabilityMode]; ok {
		sch, errs := sv(s, now)
		fe.Merge("", errs)
		schedule = sch
	}

	if err := fe.OrNil(); err != nil {
		return nil, err
	}

	return &Proposal{
		Candidate:   c,
		Format:      s.Format,
		Duration:    parseDuration(s.Duration),
		Message:     s.Message,
		TeamMembers: SplitTeamMembers(s.TeamMembers),
		Details:     details,
		Schedule:    schedule,
	}, nil
}

func validateSpecific(s Submission, now time.Time) (Schedule, validation.FieldErrors) {
	fe := validation.Struct(specificFields{
		Date:           s.Date,
		Time:           s.Time,
		Timezone:       s.Timezone,
		AlternateSlots: s.AlternateSlots,
	})

	if len(s.AlternateSlots) > MaxAlternateSlots {
		fe.Add("alternate_slots", "at most "+strconv.Itoa(MaxAlternateSlots)+" alternate slots")
	}

	today := todayIn(now, s.Timezone)
	if _, bad := fe["date"]; !bad {
		if msg := checkDate(s.Date, today); msg != "" {
			fe.Add("date", msg)
		}
	}
	for i, slot := range s.AlternateSlots {
		key := "alternate_slots." + strconv.Itoa(i) + ".date"
		if _, bad := fe[key]; bad {
			continue
		}
		if msg := checkDate(slot.Date, today); msg != "" {
			fe.Add(key, msg)
		}
	}

	return SpecificSchedule{
		Date:           s.Date,
		Time:           s.Time,
		Timezone:       s.Timezone,
		AlternateSlots: s.AlternateSlots,
	}, fe
}

func validateShared(s Submission, _ time.Time) (Schedule, validation.FieldErrors) {
	fe := validation.Struct(sharedFields{SelectedWeek: s.SelectedWeek})

	switch {
	case len(s.WeeklyAvailability) == 0:
		fe.Add("weekly_availability", "required")
	case !s.WeeklyAvailability.AnyAvailable():
		fe.Add("weekly_availability", "at least one available day")
	default:
		fe.Merge("weekly_availability", s.WeeklyAvailability.OnlyAvailable().Validate())
	}

	return SharedSchedule{
		SelectedWeek: s.SelectedWeek,
		Weekly:       s.WeeklyAvailability.Clone(),
	}, fe
}

// checkDate rejects dates before today and before 1900-01-01.
func checkDate(date string, today time.Time) string {
	d, err := availability.ParseDate(date)
	if err != nil {
		return ""
	}
	if d.Before(minProposalDate) {
		return "must not be before 1900-01-01"
	}
	if d.Before(today) {
		return "must not be in the past"
	}
	return ""
}

// todayIn is the calendar date of now in tz, falling back to UTC.
func todayIn(now time.Time, tz string) time.Time {
	if loc, err := time.LoadLocation(tz); err == nil && tz != "" {
		now = now.In(loc)
	}
	return availability.DateOf(now)
}
