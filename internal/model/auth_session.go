package model

import "time"

// AuthSession tracks the single live access token per user. Issuing a new
// token overwrites the existing row rather than creating a second one;
// logout flips Expired and Revoked instead of deleting the row.
type AuthSession struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Token     string    `json:"-" gorm:"size:512;not null;index"`
	Expired   bool      `json:"expired" gorm:"default:false"`
	Revoked   bool      `json:"revoked" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
