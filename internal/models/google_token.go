package models

import "time"

// GoogleToken is the OAuth2 token of an owner's connected Google calendar.
type GoogleToken struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OwnerID uint `gorm:"uniqueIndex;not null" json:"owner_id"`

	AccessToken  string    `gorm:"type:text" json:"-"`
	RefreshToken string    `gorm:"type:text" json:"-"`
	TokenType    string    `gorm:"size:20" json:"token_type"`
	Expiry       time.Time `json:"expiry"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
