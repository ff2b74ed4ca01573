package interview

import "github.com/BruksfildServices01/recruit-scheduler/internal/domain/availability"

// Submission is the flat form shape. It carries the fields of every branch
// so a draft keeps them across tab switches; validation only looks at the
// active ones.
type Submission struct {
	CandidateID      uint   `json:"candidate_id"`
	Format           Format `json:"format"`
	Duration         string `json:"duration"`
	AvailabilityMode Mode   `json:"availability_mode"`

	VideoURL string `json:"video_url,omitempty"`
	Address  string `json:"address,omitempty"`
	MapURL   string `json:"map_url,omitempty"`

	Date           string `json:"date,omitempty"`
	Time           string `json:"time,omitempty"`
	Timezone       string `json:"timezone,omitempty"`
	AlternateSlots []Slot `json:"alternate_slots,omitempty"`

	SelectedWeek       string              `json:"selected_week,omitempty"`
	WeeklyAvailability availability.Weekly `json:"weekly_availability,omitempty"`

	Message     string `json:"message"`
	TeamMembers string `json:"team_members,omitempty"`
}
