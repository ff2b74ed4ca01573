package availability

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/recruit-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/recruit-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/recruit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/recruit-scheduler/internal/validation"
)

// Exceptions edits the date overrides one at a time. Each call is a
// read-modify-write of the whole settings followed by SaveSettings.
type Exceptions struct {
	repo domain.Repository
	save *SaveSettings
}

func NewExceptions(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *Exceptions {
	return &Exceptions{
		repo: repo,
		save: NewSaveSettings(repo, audit, log),
	}
}

type UpdateExceptionInput struct {
	IsAvailable *bool   `json:"is_available"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
}

// ======================================================
// ADD
// ======================================================

func (uc *Exceptions) Add(
	ctx context.Context,
	ownerID uint,
	dates []string,
) (domain.Settings, error) {

	if len(dates) == 0 {
		return domain.Settings{}, validation.FieldErrors{"dates": "required"}
	}

	fe := validation.FieldErrors{}
	parsed := make([]domain.Exception, 0, len(dates))
	for i, raw := range dates {
		d, err := domain.ParseDate(raw)
		if err != nil {
			fe.Add("dates."+strconv.Itoa(i), "must be a date (YYYY-MM-DD)")
			continue
		}
		parsed = append(parsed, domain.Exception{Date: d})
	}
	if err := fe.OrNil(); err != nil {
		return domain.Settings{}, err
	}

	s, err := loadSettings(ctx, uc.repo, ownerID)
	if err != nil {
		return domain.Settings{}, err
	}

	for _, e := range parsed {
		s.Exceptions = domain.AddExceptions(s.Exceptions, e.Date)
	}

	return uc.persist(ctx, ownerID, s)
}

// ======================================================
// UPDATE
// ======================================================

func (uc *Exceptions) Update(
	ctx context.Context,
	ownerID uint,
	date string,
	in UpdateExceptionInput,
) (domain.Settings, error) {

	d, err := domain.ParseDate(date)
	if err != nil {
		return domain.Settings{}, httperr.ErrBusiness("invalid_date")
	}

	s, err := loadSettings(ctx, uc.repo, ownerID)
	if err != nil {
		return domain.Settings{}, err
	}

	if _, ok := domain.FindException(s.Exceptions, d); !ok {
		return domain.Settings{}, httperr.ErrBusiness("exception_not_found")
	}

	if in.IsAvailable != nil {
		domain.SetExceptionAvailable(s.Exceptions, d, *in.IsAvailable)
	}

	if in.StartTime != nil || in.EndTime != nil {
		e, _ := domain.FindException(s.Exceptions, d)
		if !e.IsAvailable {
			return domain.Settings{}, validation.FieldErrors{
				"is_available": "hours are only allowed when available",
			}
		}
		start, end := domain.DefaultStartTime, domain.DefaultEndTime
		if e.StartTime != nil {
			start = *e.StartTime
		}
		if e.EndTime != nil {
			end = *e.EndTime
		}
		if in.StartTime != nil {
			start = *in.StartTime
		}
		if in.EndTime != nil {
			end = *in.EndTime
		}
		domain.SetExceptionHours(s.Exceptions, d, start, end)
	}

	return uc.persist(ctx, ownerID, s)
}

// ======================================================
// REMOVE
// ======================================================

func (uc *Exceptions) Remove(
	ctx context.Context,
	ownerID uint,
	date string,
) (domain.Settings, error) {

	d, err := domain.ParseDate(date)
	if err != nil {
		return domain.Settings{}, httperr.ErrBusiness("invalid_date")
	}

	s, err := loadSettings(ctx, uc.repo, ownerID)
	if err != nil {
		return domain.Settings{}, err
	}

	list, ok := domain.RemoveException(s.Exceptions, d)
	if !ok {
		return domain.Settings{}, httperr.ErrBusiness("exception_not_found")
	}
	s.Exceptions = list

	return uc.persist(ctx, ownerID, s)
}

func (uc *Exceptions) persist(ctx context.Context, ownerID uint, s domain.Settings) (domain.Settings, error) {
	if _, err := uc.save.Execute(ctx, ownerID, s); err != nil {
		return domain.Settings{}, err
	}
	return s, nil
}
