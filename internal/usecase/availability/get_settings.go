package availability

import (
	"context"

	domain "github.com/BruksfildServices01/recruit-scheduler/internal/domain/availability"
)

type GetSettings struct {
	repo domain.Repository
}

func NewGetSettings(repo domain.Repository) *GetSettings {
	return &GetSettings{repo: repo}
}

// Execute returns the stored settings, or the default template when the
// owner never saved any.
func (uc *GetSettings) Execute(ctx context.Context, ownerID uint) (domain.Settings, error) {
	return loadSettings(ctx, uc.repo, ownerID)
}

func loadSettings(ctx context.Context, repo domain.Repository, ownerID uint) (domain.Settings, error) {
	s, found, err := repo.GetSettings(ctx, ownerID)
	if err != nil {
		return domain.Settings{}, err
	}
	if !found {
		return domain.DefaultSettings(), nil
	}
	if len(s.Weekly) == 0 {
		s.Weekly = domain.DefaultWeekly()
	}
	if s.Connections == nil {
		s.Connections = []domain.CalendarConnection{}
	}
	if s.Exceptions == nil {
		s.Exceptions = []domain.Exception{}
	}
	return s, nil
}
