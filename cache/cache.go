package cache

import (
	"context"
	"errors"

	"store-service/model"
)

// Cache keeps hot catalog and order reads off the database. Implementations
// must return ErrCacheMiss when a key is absent so callers can fall through.
type Cache interface {
	GetProduct(ctx context.Context, id uint) (*model.Product, error)
	SetProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, id uint) error

	GetOrders(ctx context.Context, key string) ([]model.Order, error)
	SetOrders(ctx context.Context, key string, orders []model.Order) error
	// InvalidateOrders drops both the per-user list and the staff "all" list,
	// mirroring how every order write must age out both views.
	InvalidateOrders(ctx context.Context, userID uint) error
}

var ErrCacheMiss = errors.New("cache miss")

// Keys for the order list views. The per-user key is derived with OrdersKey.
const OrdersAllKey = "orders:all"

func OrdersKey(userID uint) string {
	return ordersKey(userID)
}
