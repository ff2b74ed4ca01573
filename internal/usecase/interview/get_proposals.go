package interview

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/recruit-scheduler/internal/domain/interview"
	"github.com/BruksfildServices01/recruit-scheduler/internal/httperr"
)

type GetProposal struct {
	repo domain.Repository
}

func NewGetProposal(repo domain.Repository) *GetProposal {
	return &GetProposal{repo: repo}
}

func (uc *GetProposal) Execute(ctx context.Context, recruiterID uint, rawID string) (*domain.Record, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, httperr.ErrBusiness("proposal_not_found")
	}
	return uc.repo.GetProposal(ctx, recruiterID, id)
}

type ListProposals struct {
	repo domain.Repository
}

func NewListProposals(repo domain.Repository) *ListProposals {
	return &ListProposals{repo: repo}
}

func (uc *ListProposals) Execute(ctx context.Context, recruiterID uint) ([]domain.Record, error) {
	return uc.repo.ListProposals(ctx, recruiterID)
}
