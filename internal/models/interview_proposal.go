package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/recruit-scheduler/internal/domain/availability"
)

type InterviewProposal struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	RecruiterID uint `gorm:"index;not null" json:"recruiter_id"`

	CandidateID uint      `json:"candidate_id"`
	Candidate   Candidate `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"candidate"`

	Format           string `gorm:"size:20;not null" json:"format"`
	DurationMin      int    `json:"duration_min"`
	AvailabilityMode string `gorm:"size:20;not null" json:"availability_mode"`

	VideoURL    string `gorm:"size:500" json:"video_url"`
	PhoneNumber string `gorm:"size:20" json:"phone_number"`
	Address     string `gorm:"size:255" json:"address"`
	MapURL      string `gorm:"size:500" json:"map_url"`

	Date     string `gorm:"size:10" json:"date"`
	Time     string `gorm:"size:5" json:"time"`
	Timezone string `gorm:"size:64" json:"timezone"`

	AlternateSlots []ProposalAlternateSlot `gorm:"constraint:OnDelete:CASCADE;" json:"alternate_slots"`

	SelectedWeek       string              `gorm:"size:10" json:"selected_week"`
	WeeklyAvailability availability.Weekly `gorm:"type:jsonb;serializer:json" json:"weekly_availability"`

	Message     string `gorm:"type:text;not null" json:"message"`
	TeamMembers string `gorm:"type:text" json:"team_members"`

	Status string `gorm:"size:20;default:'proposed'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProposalAlternateSlot struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProposalID uuid.UUID `gorm:"type:uuid;index;not null" json:"proposal_id"`
	Position   int       `json:"position"`
	Date       string    `gorm:"size:10" json:"date"`
	Time       string    `gorm:"size:5" json:"time"`
}
