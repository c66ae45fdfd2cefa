package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"store-service/model"
)

type OrderRepository interface {
	ListAll(ctx context.Context) ([]model.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Order, error)
	GetByID(ctx context.Context, id uint) (*model.Order, error)
	// GetOwned resolves an order only when it belongs to userID.
	GetOwned(ctx context.Context, id, userID uint) (*model.Order, error)
	Create(ctx context.Context, order *model.Order) error
	Save(ctx context.Context, order *model.Order) error
	Delete(ctx context.Context, order *model.Order) error
}

type GormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).Preload("Items").Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	ensureItems(orders)
	return orders, nil
}

func (r *GormOrderRepository) ListByUser(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	ensureItems(orders)
	return orders, nil
}

func (r *GormOrderRepository) GetByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.Items == nil {
		order.Items = []model.OrderItem{}
	}
	return &order, nil
}

func (r *GormOrderRepository) GetOwned(ctx context.Context, id, userID uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.Items == nil {
		order.Items = []model.OrderItem{}
	}
	return &order, nil
}

func (r *GormOrderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *GormOrderRepository) Save(ctx context.Context, order *model.Order) error {
	// Items are managed through their own endpoints, never rewritten here.
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(order).Error
}

func (r *GormOrderRepository) Delete(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Delete(order).Error
}

// ensureItems keeps empty item collections as [] in responses, not null.
func ensureItems(orders []model.Order) {
	for i := range orders {
		if orders[i].Items == nil {
			orders[i].Items = []model.OrderItem{}
		}
	}
}
