package availability

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/recruit-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/recruit-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/recruit-scheduler/internal/logger"
	"github.com/BruksfildServices01/recruit-scheduler/internal/timezone"
	"github.com/BruksfildServices01/recruit-scheduler/internal/validation"
)

// BusySource reports busy periods of an owner's connected calendar.
type BusySource interface {
	Busy(ctx context.Context, ownerID uint, from, to time.Time) ([]calendar.BusyBlock, error)
}

// ======================================================
// INPUT
// ======================================================

type WeekViewInput struct {
	OwnerID uint

	// Date anchors the week (YYYY-MM-DD). Empty means today.
	Date string
	// Nav is applied to the anchored week: prev, next or today.
	Nav string

	Hours    calendar.HourRange
	Timezone string
}

// ======================================================
// USE CASE
// ======================================================

type WeekView struct {
	repo  domain.Repository
	busy  BusySource
	clock calendar.Clock
	log   *zap.Logger
}

// NewWeekView accepts a nil busy source when no calendar provider is
// configured.
func NewWeekView(
	repo domain.Repository,
	busy BusySource,
	clock calendar.Clock,
	log *zap.Logger,
) *WeekView {
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	return &WeekView{
		repo:  repo,
		busy:  busy,
		clock: clock,
		log:   logger.OrNop(log),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *WeekView) Execute(ctx context.Context, in WeekViewInput) (calendar.Grid, error) {
	if in.Hours == (calendar.HourRange{}) {
		in.Hours = calendar.DefaultHourRange
	}
	if err := in.Hours.Validate(); err != nil {
		return calendar.Grid{}, validation.FieldErrors{"from": err.Error()}
	}

	loc := timezone.Location(in.Timezone)
	now := uc.clock.Now().In(loc)

	anchor := now
	if in.Date != "" {
		d, err := time.ParseInLocation(domain.DateLayout, in.Date, loc)
		if err != nil {
			return calendar.Grid{}, validation.FieldErrors{"date": "must be a date (YYYY-MM-DD)"}
		}
		anchor = d
	}

	week := calendar.WeekOf(anchor).Navigate(in.Nav, now)

	s, err := loadSettings(ctx, uc.repo, in.OwnerID)
	if err != nil {
		return calendar.Grid{}, err
	}

	var busy []calendar.BusyBlock
	if uc.busy != nil && s.ConnectionEnabled(domain.ProviderGoogle) {
		busy, err = uc.busy.Busy(ctx, in.OwnerID, week.Start, week.End())
		if err != nil {
			// the grid still renders without busy blocks
			uc.log.Warn("busy blocks unavailable",
				zap.Uint("owner_id", in.OwnerID),
				zap.Error(err),
			)
			busy = nil
		}
	}

	return calendar.BuildGrid(week, in.Hours, s, busy, now), nil
}
