package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/recruit-scheduler/internal/domain/interview"
	"github.com/BruksfildServices01/recruit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/recruit-scheduler/internal/models"
)

type InterviewGormRepository struct {
	db *gorm.DB
}

func NewInterviewGormRepository(db *gorm.DB) *InterviewGormRepository {
	return &InterviewGormRepository{db: db}
}

// --------------------------------------------------
// Candidate
// --------------------------------------------------

func (r *InterviewGormRepository) GetCandidate(
	ctx context.Context,
	candidateID uint,
) (*domain.Candidate, error) {

	var c models.Candidate
	if err := r.db.WithContext(ctx).First(&c, candidateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("candidate_not_found")
		}
		return nil, err
	}

	return &domain.Candidate{
		ID:    c.ID,
		Name:  c.Name,
		Phone: c.Phone,
		Email: c.Email,
	}, nil
}

// --------------------------------------------------
// Proposal
// --------------------------------------------------

func (r *InterviewGormRepository) CreateProposal(
	ctx context.Context,
	rec *domain.Record,
) error {
	row := toProposalModel(rec)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	rec.CreatedAt = row.CreatedAt
	return nil
}

func (r *InterviewGormRepository) GetProposal(
	ctx context.Context,
	recruiterID uint,
	id uuid.UUID,
) (*domain.Record, error) {

	var row models.InterviewProposal
	if err := r.db.WithContext(ctx).
		Preload("Candidate").
		Preload("AlternateSlots", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ? AND recruiter_id = ?", id, recruiterID).
		First(&row).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("proposal_not_found")
		}
		return nil, err
	}

	rec := fromProposalModel(row)
	return &rec, nil
}

func (r *InterviewGormRepository) ListProposals(
	ctx context.Context,
	recruiterID uint,
) ([]domain.Record, error) {

	var rows []models.InterviewProposal
	if err := r.db.WithContext(ctx).
		Preload("Candidate").
		Preload("AlternateSlots", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("recruiter_id = ?", recruiterID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromProposalModel(row))
	}
	return out, nil
}

// --------------------------------------------------
// Mapping
// --------------------------------------------------

func toProposalModel(rec *domain.Record) models.InterviewProposal {
	p := rec.Payload

	slots := make([]models.ProposalAlternateSlot, 0, len(p.AlternateSlots))
	for i, s := range p.AlternateSlots {
		slots = append(slots, models.ProposalAlternateSlot{
			ProposalID: rec.ID,
			Position:   i,
			Date:       s.Date,
			Time:       s.Time,
		})
	}

	return models.InterviewProposal{
		ID:                 rec.ID,
		RecruiterID:        rec.RecruiterID,
		CandidateID:        p.CandidateID,
		Format:             string(p.Format),
		DurationMin:        p.Duration,
		AvailabilityMode:   string(p.AvailabilityMode),
		VideoURL:           p.VideoURL,
		PhoneNumber:        p.PhoneNumber,
		Address:            p.Address,
		MapURL:             p.MapURL,
		Date:               p.Date,
		Time:               p.Time,
		Timezone:           p.Timezone,
		AlternateSlots:     slots,
		SelectedWeek:       p.SelectedWeek,
		WeeklyAvailability: p.WeeklyAvailability,
		Message:            p.Message,
		TeamMembers:        strings.Join(p.TeamMembers, ","),
		Status:             rec.Status,
	}
}

func fromProposalModel(row models.InterviewProposal) domain.Record {
	var slots []domain.Slot
	for _, s := range row.AlternateSlots {
		slots = append(slots, domain.Slot{Date: s.Date, Time: s.Time})
	}

	return domain.Record{
		ID:          row.ID,
		RecruiterID: row.RecruiterID,
		Status:      row.Status,
		CreatedAt:   row.CreatedAt,
		Payload: domain.Payload{
			CandidateID:        row.CandidateID,
			CandidateName:      row.Candidate.Name,
			Format:             domain.Format(row.Format),
			Duration:           row.DurationMin,
			AvailabilityMode:   domain.Mode(row.AvailabilityMode),
			VideoURL:           row.VideoURL,
			PhoneNumber:        row.PhoneNumber,
			Address:            row.Address,
			MapURL:             row.MapURL,
			Date:               row.Date,
			Time:               row.Time,
			Timezone:           row.Timezone,
			AlternateSlots:     slots,
			SelectedWeek:       row.SelectedWeek,
			WeeklyAvailability: row.WeeklyAvailability,
			Message:            row.Message,
			TeamMembers:        domain.SplitTeamMembers(row.TeamMembers),
		},
	}
}

// Compile-time check
var _ domain.Repository = (*InterviewGormRepository)(nil)
