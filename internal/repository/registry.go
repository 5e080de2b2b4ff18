package repository

import (
	"context"

	"gorm.io/gorm"
)

// Registry bundles the repositories so that mutations touching more than one
// entity (an order and its items, a site and both manager rows) can share a
// single transaction.
type Registry struct {
	Users      UserRepository
	Sites      SiteRepository
	Items      ItemRepository
	Orders     OrderRepository
	OrderItems OrderItemRepository
	Sessions   SessionRepository
}

// NewRegistry creates a registry with all repositories bound to db.
func NewRegistry(db *gorm.DB) Registry {
	return Registry{
		Users:      NewUserRepository(db),
		Sites:      NewSiteRepository(db),
		Items:      NewItemRepository(db),
		Orders:     NewOrderRepository(db),
		OrderItems: NewOrderItemRepository(db),
		Sessions:   NewSessionRepository(db),
	}
}

// TxManager runs a function against a transaction-bound registry: either all
// writes inside fn commit or none do.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, reg Registry) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a TxManager over db.
func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

// WithTransaction executes fn within a database transaction.
func (m *gormTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, reg Registry) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewRegistry(tx))
	})
}
