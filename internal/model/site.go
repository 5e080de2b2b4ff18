package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Site represents a construction project location.
//
// The unique indexes on the manager columns enforce at the schema level what
// SiteService checks up front: a user manages at most one site system-wide.
type Site struct {
	ID                   uint            `json:"id" gorm:"primaryKey"`
	Name                 string          `json:"name" gorm:"size:255;not null;index"`
	Location             string          `json:"location" gorm:"size:255;not null"`
	ContactNumber        string          `json:"contact_number" gorm:"size:15;not null"`
	AllocatedBudget      decimal.Decimal `json:"allocated_budget" gorm:"type:decimal(19,4);not null"`
	StartDate            *time.Time      `json:"start_date,omitempty"`
	SiteManagerID        *uint           `json:"site_manager_id,omitempty" gorm:"uniqueIndex"`
	ProcurementManagerID *uint           `json:"procurement_manager_id,omitempty" gorm:"uniqueIndex"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`

	// Relations
	SiteManager        *User          `json:"site_manager,omitempty" gorm:"foreignKey:SiteManagerID"`
	ProcurementManager *User          `json:"procurement_manager,omitempty" gorm:"foreignKey:ProcurementManagerID"`
	Users              []User         `json:"users,omitempty" gorm:"foreignKey:SiteID"`
	Orders             []OrderDetails `json:"orders,omitempty" gorm:"foreignKey:SiteID"`
}
