package interview

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	availability "github.com/BruksfildServices01/recruit-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/recruit-scheduler/internal/domain/calendar"
	domain "github.com/BruksfildServices01/recruit-scheduler/internal/domain/interview"
	"github.com/BruksfildServices01/recruit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/recruit-scheduler/internal/logger"
	"github.com/BruksfildServices01/recruit-scheduler/internal/timezone"
)

// Drafts drives the proposal dialog. Every operation loads the draft,
// applies one change and saves it back; only Submit removes it.
type Drafts struct {
	store       domain.DraftStore
	repo        domain.Repository
	settings    availability.Repository
	plan        *PlanInterview
	clock       calendar.Clock
	defaultZone string
	log         *zap.Logger
}

func NewDrafts(
	store domain.DraftStore,
	repo domain.Repository,
	settings availability.Repository,
	plan *PlanInterview,
	clock calendar.Clock,
	defaultZone string,
	log *zap.Logger,
) *Drafts {
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	if !timezone.IsValid(defaultZone) {
		defaultZone = timezone.DefaultTimezone
	}
	return &Drafts{
		store:       store,
		repo:        repo,
		settings:    settings,
		plan:        plan,
		clock:       clock,
		defaultZone: defaultZone,
		log:         logger.OrNop(log),
	}
}

// ======================================================
// CREATE / GET
// ======================================================

// Create seeds a draft from the recruiter's saved weekly template.
func (uc *Drafts) Create(ctx context.Context, recruiterID, candidateID uint) (domain.Draft, error) {
	if _, err := uc.repo.GetCandidate(ctx, candidateID); err != nil {
		return domain.Draft{}, err
	}

	weekly, err := uc.weeklyTemplate(ctx, recruiterID)
	if err != nil {
		return domain.Draft{}, err
	}

	d := domain.NewDraft(
		uuid.NewString(),
		recruiterID,
		candidateID,
		weekly,
		uc.defaultZone,
		uc.clock.Now(),
	)
	if err := uc.store.Save(ctx, d); err != nil {
		return domain.Draft{}, err
	}
	return d, nil
}

func (uc *Drafts) Get(ctx context.Context, recruiterID uint, id string) (domain.Draft, error) {
	d, err := uc.store.Get(ctx, id)
	if errors.Is(err, domain.ErrDraftNotFound) {
		return domain.Draft{}, httperr.ErrBusiness("draft_not_found")
	}
	if err != nil {
		return domain.Draft{}, err
	}
	// drafts of other recruiters do not exist for the caller
	if d.RecruiterID != recruiterID {
		return domain.Draft{}, httperr.ErrBusiness("draft_not_found")
	}
	return d, nil
}

// ======================================================
// EDIT
// ======================================================

func (uc *Drafts) Update(ctx context.Context, recruiterID uint, id string, p domain.DraftPatch) (domain.Draft, error) {
	return uc.mutate(ctx, recruiterID, id, func(d *domain.Draft) error {
		return d.Patch(p)
	})
}

func (uc *Drafts) SwitchTab(ctx context.Context, recruiterID uint, id string, tab domain.Tab) (domain.Draft, error) {
	return uc.mutate(ctx, recruiterID, id, func(d *domain.Draft) error {
		return d.SwitchTab(tab)
	})
}

// AddAlternateSlot appends a slot defaulting to today in the draft's
// timezone at 09:00.
func (uc *Drafts) AddAlternateSlot(ctx context.Context, recruiterID uint, id string) (domain.Draft, error) {
	return uc.mutate(ctx, recruiterID, id, func(d *domain.Draft) error {
		tz := d.Values.Timezone
		if !timezone.IsValid(tz) {
			tz = uc.defaultZone
		}
		return d.AddAlternateSlot(timezone.Today(uc.clock.Now(), tz))
	})
}

func (uc *Drafts) RemoveAlternateSlot(ctx context.Context, recruiterID uint, id string, index int) (domain.Draft, error) {
	return uc.mutate(ctx, recruiterID, id, func(d *domain.Draft) error {
		return d.RemoveAlternateSlot(index)
	})
}

// ApplyReprogram merges the availability sub-dialog result. A cancelled
// result leaves the draft as it was and is not saved.
func (uc *Drafts) ApplyReprogram(ctx context.Context, recruiterID uint, id string, r domain.ReprogramResult) (domain.Draft, error) {
	d, err := uc.Get(ctx, recruiterID, id)
	if err != nil {
		return domain.Draft{}, err
	}

	changed, err := d.Apply(r)
	if err != nil || !changed {
		return d, err
	}

	d.UpdatedAt = uc.clock.Now()
	if err := uc.store.Save(ctx, d); err != nil {
		return domain.Draft{}, err
	}
	return d, nil
}

// ======================================================
// SUBMIT
// ======================================================

// Submit validates and plans the interview from the draft values. On any
// failure the draft is kept for correction. On success the draft is reset
// and deleted; if the delete fails the reset draft is stored instead so the
// same proposal cannot be submitted twice.
func (uc *Drafts) Submit(ctx context.Context, recruiterID uint, id string) (*PlanInterviewOutput, error) {
	d, err := uc.Get(ctx, recruiterID, id)
	if err != nil {
		return nil, err
	}

	out, err := uc.plan.Execute(ctx, PlanInterviewInput{
		RecruiterID: recruiterID,
		Submission:  d.Values,
	})
	if err != nil {
		return nil, err
	}

	weekly, err := uc.weeklyTemplate(ctx, recruiterID)
	if err != nil {
		uc.log.Warn("weekly template unavailable, resetting with defaults",
			zap.Uint("recruiter_id", recruiterID),
			zap.Error(err),
		)
		weekly = availability.DefaultWeekly()
	}
	d.Reset(weekly, uc.defaultZone, uc.clock.Now())

	if err := uc.store.Delete(ctx, id); err != nil {
		uc.log.Warn("submitted draft not deleted",
			zap.String("draft_id", id),
			zap.Error(err),
		)
		if err := uc.store.Save(ctx, d); err != nil {
			uc.log.Error("submitted draft not reset",
				zap.String("draft_id", id),
				zap.Error(err),
			)
		}
	}
	return out, nil
}

// weeklyTemplate is the recruiter's saved template, or the default week
// when none is stored.
func (uc *Drafts) weeklyTemplate(ctx context.Context, recruiterID uint) (availability.Weekly, error) {
	s, found, err := uc.settings.GetSettings(ctx, recruiterID)
	if err != nil {
		return nil, err
	}
	if found && len(s.Weekly) > 0 {
		return s.Weekly, nil
	}
	return availability.DefaultWeekly(), nil
}

func (uc *Drafts) mutate(
	ctx context.Context,
	recruiterID uint,
	id string,
	fn func(d *domain.Draft) error,
) (domain.Draft, error) {

	d, err := uc.Get(ctx, recruiterID, id)
	if err != nil {
		return domain.Draft{}, err
	}
	if err := fn(&d); err != nil {
		return domain.Draft{}, err
	}

	d.UpdatedAt = uc.clock.Now()
	if err := uc.store.Save(ctx, d); err != nil {
		return domain.Draft{}, err
	}
	return d, nil
}
