package repository

import (
	"context"

	"gorm.io/gorm"

	"consite/internal/model"
)

// OrderItemRepository defines order line persistence operations.
type OrderItemRepository interface {
	Create(ctx context.Context, item *model.OrderItem) error
	Save(ctx context.Context, item *model.OrderItem) error
	FindByID(ctx context.Context, id uint) (*model.OrderItem, error)
	CountByOrder(ctx context.Context, orderID uint) (int64, error)
	UpdateStatusByOrder(ctx context.Context, orderID uint, status model.Status) error
	Delete(ctx context.Context, id uint) error
}

type orderItemRepository struct {
	db *gorm.DB
}

// NewOrderItemRepository creates a new order item repository.
func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &orderItemRepository{db: db}
}

func (r *orderItemRepository) Create(ctx context.Context, item *model.OrderItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *orderItemRepository) Save(ctx context.Context, item *model.OrderItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *orderItemRepository) FindByID(ctx context.Context, id uint) (*model.OrderItem, error) {
	var item model.OrderItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *orderItemRepository) CountByOrder(ctx context.Context, orderID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("order_id = ?", orderID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateStatusByOrder sets the status of every item belonging to the order.
func (r *orderItemRepository) UpdateStatusByOrder(ctx context.Context, orderID uint, status model.Status) error {
	return r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("order_id = ?", orderID).
		Update("status", status).Error
}

func (r *orderItemRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.OrderItem{}, id).Error
}
