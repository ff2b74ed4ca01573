package interview

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/recruit-scheduler/internal/audit"
	"github.com/BruksfildServices01/recruit-scheduler/internal/domain/calendar"
	domain "github.com/BruksfildServices01/recruit-scheduler/internal/domain/interview"
	"github.com/BruksfildServices01/recruit-scheduler/internal/logger"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type PlanInterviewInput struct {
	RecruiterID uint
	Submission  domain.Submission
}

type PlanInterviewOutput struct {
	Proposal domain.Record `json:"proposal"`
	Message  string        `json:"message"`
}

// ======================================================
// USE CASE
// ======================================================

type PlanInterview struct {
	repo    domain.Repository
	archive domain.Archive
	audit   *audit.Dispatcher
	clock   calendar.Clock
	log     *zap.Logger
}

// NewPlanInterview accepts a nil archive.
func NewPlanInterview(
	repo domain.Repository,
	archive domain.Archive,
	audit *audit.Dispatcher,
	clock calendar.Clock,
	log *zap.Logger,
) *PlanInterview {
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	return &PlanInterview{
		repo:    repo,
		archive: archive,
		audit:   audit,
		clock:   clock,
		log:     logger.OrNop(log),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *PlanInterview) Execute(
	ctx context.Context,
	in PlanInterviewInput,
) (*PlanInterviewOutput, error) {

	// --------------------------------------------------
	// Candidate
	// --------------------------------------------------
	candidate, err := uc.repo.GetCandidate(ctx, in.Submission.CandidateID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Active variant only
	// --------------------------------------------------
	proposal, err := domain.Validate(in.Submission, *candidate, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	rec := domain.Record{
		ID:          uuid.New(),
		RecruiterID: in.RecruiterID,
		Status:      domain.StatusProposed,
		Payload:     proposal.Payload(),
	}

	if err := uc.repo.CreateProposal(ctx, &rec); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Archive (best effort)
	// --------------------------------------------------
	if uc.archive != nil {
		actx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := uc.archive.Put(actx, rec); err != nil {
			uc.log.Warn("proposal not archived",
				zap.String("proposal_id", rec.ID.String()),
				zap.Error(err),
			)
		}
		cancel()
	}

	uc.audit.Dispatch(audit.Event{
		OwnerID:  in.RecruiterID,
		Action:   "interview_proposed",
		Entity:   "interview_proposal",
		EntityID: rec.ID.String(),
		Metadata: map[string]any{
			"candidate_id":      candidate.ID,
			"format":            rec.Payload.Format,
			"availability_mode": rec.Payload.AvailabilityMode,
		},
	})

	return &PlanInterviewOutput{
		Proposal: rec,
		Message:  InvitationSentMessage(candidate.Name),
	}, nil
}

func InvitationSentMessage(name string) string {
	return "Invitation envoyée à " + name
}
