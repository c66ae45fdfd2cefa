package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"store-service/model"
)

type OrderItemRepository interface {
	ListByOrder(ctx context.Context, orderID uint) ([]model.OrderItem, error)
	// GetInOrder resolves an item only within the scope of its parent order.
	GetInOrder(ctx context.Context, id, orderID uint) (*model.OrderItem, error)
	Create(ctx context.Context, item *model.OrderItem) error
	Save(ctx context.Context, item *model.OrderItem) error
	Delete(ctx context.Context, item *model.OrderItem) error
}

type GormOrderItemRepository struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) *GormOrderItemRepository {
	return &GormOrderItemRepository{db: db}
}

func (r *GormOrderItemRepository) ListByOrder(ctx context.Context, orderID uint) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormOrderItemRepository) GetInOrder(ctx context.Context, id, orderID uint) (*model.OrderItem, error) {
	var item model.OrderItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND order_id = ?", id, orderID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *GormOrderItemRepository) Create(ctx context.Context, item *model.OrderItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *GormOrderItemRepository) Save(ctx context.Context, item *model.OrderItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *GormOrderItemRepository) Delete(ctx context.Context, item *model.OrderItem) error {
	return r.db.WithContext(ctx).Delete(item).Error
}
