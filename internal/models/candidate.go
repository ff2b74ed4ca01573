package models

import "time"

// Candidate is owned by the job-board API; this service keeps the fields it
// needs to address an interview proposal.
type Candidate struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"nom"`
	Phone string `gorm:"size:20" json:"telephone"`
	Email string `gorm:"size:100" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
