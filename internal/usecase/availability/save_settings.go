package availability

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/recruit-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/recruit-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/recruit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/recruit-scheduler/internal/logger"
	"github.com/BruksfildServices01/recruit-scheduler/internal/validation"
)

const MessageSaved = "Disponibilités enregistrées"

// ======================================================
// USE CASE
// ======================================================

type SaveSettings struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewSaveSettings(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *SaveSettings {
	return &SaveSettings{
		repo:  repo,
		audit: audit,
		log:   logger.OrNop(log),
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute replaces the owner's settings. A failed write is reported once as
// availability_save_failed and is not retried.
func (uc *SaveSettings) Execute(
	ctx context.Context,
	ownerID uint,
	s domain.Settings,
) (string, error) {

	if err := s.Validate().OrNil(); err != nil {
		return "", err
	}

	if err := uc.repo.SaveSettings(ctx, ownerID, s); err != nil {
		return "", uc.saveFailed(ownerID, err)
	}

	uc.audit.Dispatch(audit.Event{
		OwnerID: ownerID,
		Action:  "availability_updated",
		Entity:  "availability",
		Metadata: map[string]any{
			"available_days": len(s.Weekly.OnlyAvailable()),
			"exceptions":     len(s.Exceptions),
		},
	})

	return MessageSaved, nil
}

// ExecuteWeekly replaces only the weekly template, leaving exceptions and
// calendar connections untouched.
func (uc *SaveSettings) ExecuteWeekly(
	ctx context.Context,
	ownerID uint,
	w domain.Weekly,
) (string, error) {

	fe := validation.FieldErrors{}
	if len(w) == 0 {
		fe.Add("weekly_availability", "required")
	}
	fe.Merge("weekly_availability", w.Validate())
	if err := fe.OrNil(); err != nil {
		return "", err
	}

	if err := uc.repo.SaveWeekly(ctx, ownerID, w); err != nil {
		return "", uc.saveFailed(ownerID, err)
	}

	uc.audit.Dispatch(audit.Event{
		OwnerID: ownerID,
		Action:  "weekly_availability_updated",
		Entity:  "availability",
		Metadata: map[string]any{
			"available_days": len(w.OnlyAvailable()),
		},
	})

	return MessageSaved, nil
}

// saveFailed keeps business codes from the repository (unique indexes) and
// reports anything else as availability_save_failed.
func (uc *SaveSettings) saveFailed(ownerID uint, err error) error {
	if _, ok := httperr.BusinessCode(err); ok {
		return err
	}
	uc.log.Error("save availability failed",
		zap.Uint("owner_id", ownerID),
		zap.Error(err),
	)
	return httperr.ErrBusiness("availability_save_failed")
}
