package interview

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Format string

const (
	FormatVideo     Format = "video"
	FormatTelephone Format = "telephone"
	FormatPerson    Format = "person"
)

type Mode string

const (
	ModeSpecific Mode = "specific"
	ModeShare    Mode = "share"
)

// Tab is the dialog tab; each maps 1:1 onto a Mode.
type Tab string

const (
	TabSpecificTime      Tab = "specific-time"
	TabShareAvailability Tab = "share-availability"
)

func (t Tab) Mode() (Mode, bool) {
	switch t {
	case TabSpecificTime:
		return ModeSpecific, true
	case TabShareAvailability:
		return ModeShare, true
	}
	return "", false
}

const (
	DefaultSlotTime   = "09:00"
	DefaultDuration   = "30"
	MaxAlternateSlots = 5
)

type Candidate struct {
	ID    uint   `json:"id"`
	Name  string `json:"nom"`
	Phone string `json:"telephone,omitempty"`
	Email string `json:"email,omitempty"`
}

type Slot struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"required,hhmm"`
}

const (
	StatusProposed = "proposed"
)

// Record is a persisted proposal.
type Record struct {
	ID          uuid.UUID `json:"id"`
	RecruiterID uint      `json:"recruiter_id"`
	Status      string    `json:"status"`
	Payload     Payload   `json:"payload"`
	CreatedAt   time.Time `json:"created_at"`
}

type Repository interface {
	GetCandidate(ctx context.Context, candidateID uint) (*Candidate, error)
	CreateProposal(ctx context.Context, rec *Record) error
	GetProposal(ctx context.Context, recruiterID uint, id uuid.UUID) (*Record, error)
	ListProposals(ctx context.Context, recruiterID uint) ([]Record, error)
}

type DraftStore interface {
	Save(ctx context.Context, d Draft) error
	// Get returns ErrDraftNotFound when the id is unknown or expired.
	Get(ctx context.Context, id string) (Draft, error)
	Delete(ctx context.Context, id string) error
}

// Archive keeps a copy of every submitted proposal outside the database.
type Archive interface {
	Put(ctx context.Context, rec Record) error
}
