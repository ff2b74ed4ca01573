package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/recruit-scheduler/internal/domain/interview"
)

// ProposalListDTO is the row shown in the recruiter's proposal list.
type ProposalListDTO struct {
	ID               uuid.UUID        `json:"id"`
	CandidateID      uint             `json:"candidate_id"`
	CandidateName    string           `json:"candidate_name"`
	Format           interview.Format `json:"format"`
	Duration         int              `json:"duration"`
	AvailabilityMode interview.Mode   `json:"availability_mode"`
	Date             string           `json:"date,omitempty"`
	Time             string           `json:"time,omitempty"`
	SelectedWeek     string           `json:"selected_week,omitempty"`
	Status           string           `json:"status"`
	CreatedAt        time.Time        `json:"created_at"`
}

func NewProposalList(recs []interview.Record) []ProposalListDTO {
	out := make([]ProposalListDTO, 0, len(recs))
	for _, r := range recs {
		out = append(out, ProposalListDTO{
			ID:               r.ID,
			CandidateID:      r.Payload.CandidateID,
			CandidateName:    r.Payload.CandidateName,
			Format:           r.Payload.Format,
			Duration:         r.Payload.Duration,
			AvailabilityMode: r.Payload.AvailabilityMode,
			Date:             r.Payload.Date,
			Time:             r.Payload.Time,
			SelectedWeek:     r.Payload.SelectedWeek,
			Status:           r.Status,
			CreatedAt:        r.CreatedAt,
		})
	}
	return out
}
