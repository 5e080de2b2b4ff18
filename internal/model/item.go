package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a catalog entry that order items reference. Items are independent
// of sites.
type Item struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	Name              string          `json:"name" gorm:"uniqueIndex;size:255;not null"`
	Description       string          `json:"description,omitempty" gorm:"size:1024"`
	Manufacturer      string          `json:"manufacturer" gorm:"size:255;not null"`
	QuantityAvailable int             `json:"quantity_available" gorm:"not null"`
	Price             decimal.Decimal `json:"price" gorm:"type:decimal(19,4);not null"`
	VolumeType        string          `json:"volume_type" gorm:"size:50;not null"`
	Weight            *float64        `json:"weight,omitempty"`
	Color             string          `json:"color,omitempty" gorm:"size:50"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
