package model

import "time"

// OrderDetails is a procurement request raised by a site manager for their
// site. Orders are created Pending with no supplier assigned; they move
// through the workflow in OrderService and are never physically deleted,
// cancellation is a terminal status.
type OrderDetails struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Status       Status    `json:"status" gorm:"size:50;not null;index"`
	RequiredDate time.Time `json:"required_date" gorm:"not null"`
	SiteID       uint      `json:"site_id" gorm:"not null;index"`
	SupplierID   *uint     `json:"supplier_id,omitempty" gorm:"index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Site     *Site       `json:"site,omitempty" gorm:"foreignKey:SiteID"`
	Supplier *User       `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	Items    []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem is a single line of an order. Its status is inherited from the
// order at creation time but independently mutable afterward.
type OrderItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Status    Status    `json:"status" gorm:"size:50;not null;index"`
	ItemID    uint      `json:"item_id" gorm:"not null;index"`
	OrderID   uint      `json:"order_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Item *Item `json:"item,omitempty" gorm:"foreignKey:ItemID"`
}
