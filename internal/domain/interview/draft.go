package interview

import (
	"errors"
	"time"

	"github.com/BruksfildServices01/recruit-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/recruit-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/recruit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/recruit-scheduler/internal/validation"
)

var ErrDraftNotFound = errors.New("draft not found")

// Draft is the proposal dialog state for one candidate. Both schedule
// branches live in Values at all times.
type Draft struct {
	ID          string     `json:"id"`
	RecruiterID uint       `json:"recruiter_id"`
	Tab         Tab        `json:"tab"`
	Values      Submission `json:"values"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewDraft seeds the form defaults. weekly is the recruiter's saved
// template and is copied, never shared.
func NewDraft(id string, recruiterID, candidateID uint, weekly availability.Weekly, tz string, now time.Time) Draft {
	local := now
	if loc, err := time.LoadLocation(tz); err == nil && tz != "" {
		local = now.In(loc)
	}

	return Draft{
		ID:          id,
		RecruiterID: recruiterID,
		Tab:         TabSpecificTime,
		Values: Submission{
			CandidateID:        candidateID,
			Format:             FormatVideo,
			Duration:           DefaultDuration,
			AvailabilityMode:   ModeSpecific,
			Timezone:           tz,
			SelectedWeek:       calendar.StartOfWeek(local).Format(availability.DateLayout),
			WeeklyAvailability: weekly.Clone(),
		},
		UpdatedAt: now,
	}
}

// Reset puts the form back to its seeded state for the same candidate. The
// id and recruiter are kept.
func (d *Draft) Reset(weekly availability.Weekly, tz string, now time.Time) {
	*d = NewDraft(d.ID, d.RecruiterID, d.Values.CandidateID, weekly, tz, now)
}

// SwitchTab changes which branch will be validated. Values of the other
// branch are kept.
func (d *Draft) SwitchTab(tab Tab) error {
	mode, ok := tab.Mode()
	if !ok {
		return httperr.ErrBusiness("invalid_tab")
	}
	d.Tab = tab
	d.Values.AvailabilityMode = mode
	return nil
}

func (d *Draft) AddAlternateSlot(today time.Time) error {
	if len(d.Values.AlternateSlots) >= MaxAlternateSlots {
		return httperr.ErrBusiness("too_many_alternate_slots")
	}
	d.Values.AlternateSlots = append(d.Values.AlternateSlots, Slot{
		Date: today.Format(availability.DateLayout),
		Time: DefaultSlotTime,
	})
	return nil
}

func (d *Draft) RemoveAlternateSlot(i int) error {
	slots := d.Values.AlternateSlots
	if i < 0 || i >= len(slots) {
		return httperr.ErrBusiness("alternate_slot_not_found")
	}
	out := make([]Slot, 0, len(slots)-1)
	out = append(out, slots[:i]...)
	out = append(out, slots[i+1:]...)
	d.Values.AlternateSlots = out
	return nil
}

// ReprogramResult is what the availability sub-dialog hands back on close.
type ReprogramResult struct {
	Committed          bool                `json:"committed"`
	WeeklyAvailability availability.Weekly `json:"weekly_availability"`
}

// Apply merges a committed result into the draft. A cancelled result is a
// no-op. The draft is the only owner of its weekly_availability.
func (d *Draft) Apply(r ReprogramResult) (bool, error) {
	if !r.Committed {
		return false, nil
	}
	if len(r.WeeklyAvailability) == 0 {
		return false, validation.FieldErrors{"weekly_availability": "required"}
	}
	if fe := r.WeeklyAvailability.Validate(); len(fe) > 0 {
		out := validation.FieldErrors{}
		out.Merge("weekly_availability", fe)
		return false, out
	}
	d.Values.WeeklyAvailability = r.WeeklyAvailability.Clone()
	return true, nil
}

// DraftPatch updates only the non-nil fields.
type DraftPatch struct {
	Format         *Format `json:"format"`
	Duration       *string `json:"duration"`
	VideoURL       *string `json:"video_url"`
	Address        *string `json:"address"`
	MapURL         *string `json:"map_url"`
	Date           *string `json:"date"`
	Time           *string `json:"time"`
	Timezone       *string `json:"timezone"`
	AlternateSlots *[]Slot `json:"alternate_slots"`
	SelectedWeek   *string `json:"selected_week"`
	Message        *string `json:"message"`
	TeamMembers    *string `json:"team_members"`
}

func (d *Draft) Patch(p DraftPatch) error {
	v := &d.Values
	if p.Format != nil {
		v.Format = *p.Format
	}
	if p.Duration != nil {
		v.Duration = *p.Duration
	}
	if p.VideoURL != nil {
		v.VideoURL = *p.VideoURL
	}
	if p.Address != nil {
		v.Address = *p.Address
	}
	if p.MapURL != nil {
		v.MapURL = *p.MapURL
	}
	if p.Date != nil {
		v.Date = *p.Date
	}
	if p.Time != nil {
		v.Time = *p.Time
	}
	if p.Timezone != nil {
		v.Timezone = *p.Timezone
	}
	if p.AlternateSlots != nil {
		if len(*p.AlternateSlots) > MaxAlternateSlots {
			return httperr.ErrBusiness("too_many_alternate_slots")
		}
		v.AlternateSlots = append([]Slot(nil), (*p.AlternateSlots)...)
	}
	if p.SelectedWeek != nil {
		v.SelectedWeek = *p.SelectedWeek
	}
	if p.Message != nil {
		v.Message = *p.Message
	}
	if p.TeamMembers != nil {
		v.TeamMembers = *p.TeamMembers
	}
	return nil
}
