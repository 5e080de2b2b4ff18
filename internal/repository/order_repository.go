package repository

import (
	"context"

	"gorm.io/gorm"

	"consite/internal/model"
)

// OrderRepository defines order persistence operations. Orders are loaded
// with their items; the workflow operates on the whole aggregate.
type OrderRepository interface {
	Create(ctx context.Context, order *model.OrderDetails) error
	Save(ctx context.Context, order *model.OrderDetails) error
	FindByID(ctx context.Context, id uint) (*model.OrderDetails, error)
	FindBySite(ctx context.Context, siteID uint) ([]model.OrderDetails, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.OrderDetails) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) Save(ctx context.Context, order *model.OrderDetails) error {
	return r.db.WithContext(ctx).Omit("Items").Save(order).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*model.OrderDetails, error) {
	var order model.OrderDetails
	if err := r.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindBySite(ctx context.Context, siteID uint) ([]model.OrderDetails, error) {
	var orders []model.OrderDetails
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("site_id = ?", siteID).Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
