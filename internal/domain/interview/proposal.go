package interview

import (
	"strconv"
	"strings"

	"github.com/BruksfildServices01/recruit-scheduler/internal/domain/availability"
)

// Proposal is a validated Submission. Details and Schedule hold exactly one
// variant each, chosen by format and mode.
type Proposal struct {
	Candidate   Candidate
	Format      Format
	Duration    int
	Message     string
	TeamMembers []string
	Details     FormatDetails
	Schedule    Schedule
}

type FormatDetails interface {
	Format() Format
	apply(p *Payload)
}

type VideoDetails struct{ URL string }

type TelephoneDetails struct{ Phone string }

type PersonDetails struct {
	Address string
	MapURL  string
}

func (VideoDetails) Format() Format     { return FormatVideo }
func (TelephoneDetails) Format() Format { return FormatTelephone }
func (PersonDetails) Format() Format    { return FormatPerson }

func (d VideoDetails) apply(p *Payload)     { p.VideoURL = d.URL }
func (d TelephoneDetails) apply(p *Payload) { p.PhoneNumber = d.Phone }
func (d PersonDetails) apply(p *Payload) {
	p.Address = d.Address
	p.MapURL = d.MapURL
}

type Schedule interface {
	Mode() Mode
	apply(p *Payload)
}

type SpecificSchedule struct {
	Date           string
	Time           string
	Timezone       string
	AlternateSlots []Slot
}

type SharedSchedule struct {
	SelectedWeek string
	Weekly       availability.Weekly
}

func (SpecificSchedule) Mode() Mode { return ModeSpecific }
func (SharedSchedule) Mode() Mode   { return ModeShare }

func (s SpecificSchedule) apply(p *Payload) {
	p.Date = s.Date
	p.Time = s.Time
	p.Timezone = s.Timezone
	p.AlternateSlots = append([]Slot(nil), s.AlternateSlots...)
}

func (s SharedSchedule) apply(p *Payload) {
	p.SelectedWeek = s.SelectedWeek
	p.WeeklyAvailability = s.Weekly.OnlyAvailable()
}

// Payload is what leaves the service. Fields of the inactive branches are
// omitted entirely.
type Payload struct {
	CandidateID      uint   `json:"candidate_id"`
	CandidateName    string `json:"candidate_name"`
	Format           Format `json:"format"`
	Duration         int    `json:"duration"`
	AvailabilityMode Mode   `json:"availability_mode"`

	VideoURL    string `json:"video_url,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
	MapURL      string `json:"map_url,omitempty"`

	Date           string `json:"date,omitempty"`
	Time           string `json:"time,omitempty"`
	Timezone       string `json:"timezone,omitempty"`
	AlternateSlots []Slot `json:"alternate_slots,omitempty"`

	SelectedWeek       string              `json:"selected_week,omitempty"`
	WeeklyAvailability availability.Weekly `json:"weekly_availability,omitempty"`

	Message     string   `json:"message"`
	TeamMembers []string `json:"team_members,omitempty"`
}

func (p Proposal) Payload() Payload {
	out := Payload{
		CandidateID:      p.Candidate.ID,
		CandidateName:    p.Candidate.Name,
		Format:           p.Details.Format(),
		Duration:         p.Duration,
		AvailabilityMode: p.Schedule.Mode(),
		Message:          p.Message,
		TeamMembers:      p.TeamMembers,
	}
	p.Details.apply(&out)
	p.Schedule.apply(&out)
	return out
}

// SplitTeamMembers splits the comma separated field. Entries are trimmed
// but not checked as addresses.
func SplitTeamMembers(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDuration(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
