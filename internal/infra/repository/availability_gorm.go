package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/recruit-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/recruit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/recruit-scheduler/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *AvailabilityGormRepository) GetSettings(
	ctx context.Context,
	ownerID uint,
) (domain.Settings, bool, error) {

	db := r.db.WithContext(ctx)

	var days []models.WeekdayAvailability
	if err := db.
		Where("owner_id = ?", ownerID).
		Order("weekday ASC").
		Find(&days).Error; err != nil {
		return domain.Settings{}, false, err
	}

	var exceptions []models.AvailabilityException
	if err := db.
		Where("owner_id = ?", ownerID).
		Order("date ASC").
		Find(&exceptions).Error; err != nil {
		return domain.Settings{}, false, err
	}

	var conns []models.CalendarConnection
	if err := db.
		Where("owner_id = ?", ownerID).
		Order("provider ASC").
		Find(&conns).Error; err != nil {
		return domain.Settings{}, false, err
	}

	if len(days) == 0 && len(exceptions) == 0 && len(conns) == 0 {
		return domain.Settings{}, false, nil
	}

	s := domain.Settings{
		Connections: make([]domain.CalendarConnection, 0, len(conns)),
		Weekly:      make(domain.Weekly, len(days)),
		Exceptions:  make([]domain.Exception, 0, len(exceptions)),
	}

	for _, d := range days {
		s.Weekly[domain.Weekday(d.Weekday)] = domain.DayAvailability{
			IsAvailable: d.IsAvailable,
			StartTime:   d.StartTime,
			EndTime:     d.EndTime,
		}
	}
	for _, e := range exceptions {
		s.Exceptions = append(s.Exceptions, domain.Exception{
			Date:        domain.DateOf(e.Date),
			IsAvailable: e.IsAvailable,
			StartTime:   e.StartTime,
			EndTime:     e.EndTime,
		})
	}
	for _, c := range conns {
		s.Connections = append(s.Connections, domain.CalendarConnection{
			Provider: c.Provider,
			Enabled:  c.Enabled,
		})
	}

	return s, true, nil
}

// --------------------------------------------------
// Write (replace all in one transaction)
// --------------------------------------------------

func (r *AvailabilityGormRepository) SaveSettings(
	ctx context.Context,
	ownerID uint,
	s domain.Settings,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		for _, m := range []any{
			&models.WeekdayAvailability{},
			&models.AvailabilityException{},
			&models.CalendarConnection{},
		} {
			if err := tx.Where("owner_id = ?", ownerID).Delete(m).Error; err != nil {
				return err
			}
		}

		if err := createWeekly(tx, ownerID, s.Weekly); err != nil {
			return err
		}

		exceptions := make([]models.AvailabilityException, 0, len(s.Exceptions))
		for _, e := range s.Exceptions {
			exceptions = append(exceptions, models.AvailabilityException{
				OwnerID:     ownerID,
				Date:        domain.DateOf(e.Date),
				IsAvailable: e.IsAvailable,
				StartTime:   e.StartTime,
				EndTime:     e.EndTime,
			})
		}
		if len(exceptions) > 0 {
			if err := tx.Create(&exceptions).Error; err != nil {
				return err
			}
		}

		conns := make([]models.CalendarConnection, 0, len(s.Connections))
		for _, c := range s.Connections {
			conns = append(conns, models.CalendarConnection{
				OwnerID:  ownerID,
				Provider: c.Provider,
				Enabled:  c.Enabled,
			})
		}
		if len(conns) > 0 {
			if err := tx.Create(&conns).Error; err != nil {
				return err
			}
		}

		return nil
	})

	return translateUnique(err)
}

// SaveWeekly replaces the weekday rows only.
func (r *AvailabilityGormRepository) SaveWeekly(
	ctx context.Context,
	ownerID uint,
	w domain.Weekly,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", ownerID).Delete(&models.WeekdayAvailability{}).Error; err != nil {
			return err
		}
		return createWeekly(tx, ownerID, w)
	})

	return translateUnique(err)
}

func createWeekly(tx *gorm.DB, ownerID uint, w domain.Weekly) error {
	days := weekdayRows(ownerID, w)
	if len(days) == 0 {
		return nil
	}
	return tx.Create(&days).Error
}

// weekdayRows emits one row per configured weekday, Monday first.
func weekdayRows(ownerID uint, w domain.Weekly) []models.WeekdayAvailability {
	days := make([]models.WeekdayAvailability, 0, len(w))
	for _, wd := range domain.AllWeekdays() {
		d, ok := w[wd]
		if !ok {
			continue
		}
		days = append(days, models.WeekdayAvailability{
			OwnerID:     ownerID,
			Weekday:     int(wd),
			IsAvailable: d.IsAvailable,
			StartTime:   d.StartTime,
			EndTime:     d.EndTime,
		})
	}
	return days
}

// translateUnique maps unique index violations to business codes.
func translateUnique(err error) error {
	name, ok := httperr.UniqueConstraint(err)
	if !ok {
		return err
	}
	switch name {
	case "idx_owner_provider":
		return httperr.ErrBusiness("duplicate_calendar_provider")
	case "idx_owner_weekday":
		return httperr.ErrBusiness("duplicate_weekday")
	default:
		return httperr.ErrBusiness("duplicate_exception_date")
	}
}

// Compile-time check
var _ domain.Repository = (*AvailabilityGormRepository)(nil)
