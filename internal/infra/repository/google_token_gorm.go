package repository

import (
	"context"
	"errors"

	"golang.org/x/oauth2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/recruit-scheduler/internal/infra/gcal"
	"github.com/BruksfildServices01/recruit-scheduler/internal/models"
)

type GoogleTokenGormRepository struct {
	db *gorm.DB
}

func NewGoogleTokenGormRepository(db *gorm.DB) *GoogleTokenGormRepository {
	return &GoogleTokenGormRepository{db: db}
}

func (r *GoogleTokenGormRepository) GetToken(ctx context.Context, ownerID uint) (*oauth2.Token, error) {
	var row models.GoogleToken
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &oauth2.Token{
		AccessToken:  row.AccessToken,
		RefreshToken: row.RefreshToken,
		TokenType:    row.TokenType,
		Expiry:       row.Expiry,
	}, nil
}

func (r *GoogleTokenGormRepository) SaveToken(ctx context.Context, ownerID uint, tok *oauth2.Token) error {
	row := models.GoogleToken{
		OwnerID:      ownerID,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
	}

	cols := []string{"access_token", "token_type", "expiry", "updated_at"}
	// google omits the refresh token on re-consent
	if tok.RefreshToken != "" {
		cols = append(cols, "refresh_token")
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}},
			DoUpdates: clause.AssignmentColumns(cols),
		}).
		Create(&row).Error
}

var _ gcal.TokenStore = (*GoogleTokenGormRepository)(nil)
