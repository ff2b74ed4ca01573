package models

import "time"

// WeekdayAvailability is one row of an owner's weekly template.
type WeekdayAvailability struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OwnerID uint `gorm:"uniqueIndex:idx_owner_weekday;not null" json:"owner_id"`

	Weekday int `gorm:"uniqueIndex:idx_owner_weekday;not null" json:"weekday"`

	IsAvailable bool   `json:"is_available"`
	StartTime   string `gorm:"size:5" json:"start_time"`
	EndTime     string `gorm:"size:5" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AvailabilityException struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OwnerID uint `gorm:"uniqueIndex:idx_owner_date;not null" json:"owner_id"`

	Date time.Time `gorm:"type:date;uniqueIndex:idx_owner_date;not null" json:"date"`

	IsAvailable bool    `json:"is_available"`
	StartTime   *string `gorm:"size:5" json:"start_time"`
	EndTime     *string `gorm:"size:5" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CalendarConnection struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	OwnerID  uint   `gorm:"uniqueIndex:idx_owner_provider;not null" json:"owner_id"`
	Provider string `gorm:"size:20;uniqueIndex:idx_owner_provider;not null" json:"provider"`
	Enabled  bool   `json:"enabled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
