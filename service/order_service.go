package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"store-service/cache"
	"store-service/kafka"
	"store-service/model"
	"store-service/repository"
)

var defaultStatuses = []string{"pending", "processing", "shipped", "delivered", "cancelled"}

// OrderService owns orders and their items. Staff actors see every order,
// everyone else only their own; that visibility rule also decides which
// orders can be fetched, updated or deleted at all.
type OrderService struct {
	orders   repository.OrderRepository
	items    repository.OrderItemRepository
	products repository.ProductRepository
	cache    cache.Cache
	events   kafka.Publisher
	logger   *zap.Logger
	statuses []string
	valid    map[string]struct{}
}

// NewOrderService wires the order domain. The statuses slice is the
// configured transition set; its first entry is the status new orders start
// in. Blank entries are dropped, and an entirely blank set falls back to the
// built-in one.
func NewOrderService(orders repository.OrderRepository, items repository.OrderItemRepository, products repository.ProductRepository, c cache.Cache, events kafka.Publisher, logger *zap.Logger, statuses []string) *OrderService {
	clean := make([]string, 0, len(statuses))
	for _, st := range statuses {
		st = strings.TrimSpace(st)
		if st != "" {
			clean = append(clean, st)
		}
	}
	if len(clean) == 0 {
		clean = defaultStatuses
	}
	valid := make(map[string]struct{}, len(clean))
	for _, st := range clean {
		valid[st] = struct{}{}
	}
	return &OrderService{
		orders:   orders,
		items:    items,
		products: products,
		cache:    c,
		events:   events,
		logger:   logger,
		statuses: clean,
		valid:    valid,
	}
}

func (s *OrderService) ListOrders(ctx context.Context, actor Actor) ([]model.Order, error) {
	key := cache.OrdersKey(actor.ID)
	if actor.Staff {
		key = cache.OrdersAllKey
	}
	if orders, err := s.cache.GetOrders(ctx, key); err == nil {
		return orders, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("order cache read failed", zap.String("key", key), zap.Error(err))
	}

	var orders []model.Order
	var err error
	if actor.Staff {
		orders, err = s.orders.ListAll(ctx)
	} else {
		orders, err = s.orders.ListByUser(ctx, actor.ID)
	}
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetOrders(ctx, key, orders); err != nil {
		s.logger.Warn("order cache write failed", zap.String("key", key), zap.Error(err))
	}
	return orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, actor Actor, id uint) (*model.Order, error) {
	return s.visibleOrder(ctx, actor, id)
}

func (s *OrderService) CreateOrder(ctx context.Context, actor Actor, status string) (*model.Order, error) {
	if status == "" {
		status = s.statuses[0]
	} else if !s.validStatus(status) {
		return nil, ErrInvalidStatus
	}
	order := &model.Order{
		UserID:    actor.ID,
		Status:    status,
		Items:     []model.OrderItem{},
		CreatedAt: time.Now(),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	s.dropOrders(ctx, actor.ID)
	s.events.PublishOrderCreatedEvent(map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"status":   order.Status,
	})
	s.logger.Info("order created", zap.Uint("order_id", order.ID), zap.Uint("user_id", order.UserID))
	return order, nil
}

// UpdateOrder is the plain resource update. Status is its only writable
// field; omitting it leaves the order as it is.
func (s *OrderService) UpdateOrder(ctx context.Context, actor Actor, id uint, status string) (*model.Order, error) {
	if status == "" {
		return s.visibleOrder(ctx, actor, id)
	}
	return s.UpdateStatus(ctx, actor, id, status)
}

// UpdateStatus moves an order to the requested status. Any member of the
// configured set is reachable from any other; there is no transition graph.
// An empty or unknown status is rejected.
func (s *OrderService) UpdateStatus(ctx context.Context, actor Actor, id uint, requested string) (*model.Order, error) {
	order, err := s.visibleOrder(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !s.validStatus(requested) {
		return nil, ErrInvalidStatus
	}
	order.Status = requested
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	s.dropOrders(ctx, order.UserID)
	s.events.PublishOrderStatusUpdatedEvent(map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"status":   order.Status,
	})
	s.logger.Info("order status updated", zap.Uint("order_id", order.ID), zap.String("status", order.Status))
	return order, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, actor Actor, id uint) error {
	order, err := s.visibleOrder(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, order); err != nil {
		return err
	}
	s.dropOrders(ctx, order.UserID)
	return nil
}

// ListItems returns the items of one order. Without an order scope there is
// nothing to show; the unscoped collection is deliberately empty rather than
// a dump of every item in the system.
func (s *OrderService) ListItems(ctx context.Context, orderID *uint) ([]model.OrderItem, error) {
	if orderID == nil {
		return []model.OrderItem{}, nil
	}
	return s.items.ListByOrder(ctx, *orderID)
}

func (s *OrderService) GetItem(ctx context.Context, id uint, orderID *uint) (*model.OrderItem, error) {
	if orderID == nil {
		return nil, repository.ErrOrderItemNotFound
	}
	return s.items.GetInOrder(ctx, id, *orderID)
}

// CreateItem adds a line to an order. The order and product references must
// resolve; the unit price is snapshotted from the product at creation time.
func (s *OrderService) CreateItem(ctx context.Context, orderID, productID uint, quantity int) (*model.OrderItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	item := &model.OrderItem{
		OrderID:   order.ID,
		ProductID: product.ID,
		Quantity:  quantity,
		Price:     product.Price,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	s.dropOrders(ctx, order.UserID)
	return item, nil
}

func (s *OrderService) UpdateItem(ctx context.Context, id uint, orderID *uint, quantity int) (*model.OrderItem, error) {
	item, err := s.GetItem(ctx, id, orderID)
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	item.Quantity = quantity
	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}
	s.dropOrdersOf(ctx, item.OrderID)
	return item, nil
}

func (s *OrderService) DeleteItem(ctx context.Context, id uint, orderID *uint) error {
	item, err := s.GetItem(ctx, id, orderID)
	if err != nil {
		return err
	}
	if err := s.items.Delete(ctx, item); err != nil {
		return err
	}
	s.dropOrdersOf(ctx, item.OrderID)
	return nil
}

func (s *OrderService) visibleOrder(ctx context.Context, actor Actor, id uint) (*model.Order, error) {
	if actor.Staff {
		return s.orders.GetByID(ctx, id)
	}
	return s.orders.GetOwned(ctx, id, actor.ID)
}

func (s *OrderService) validStatus(status string) bool {
	_, ok := s.valid[status]
	return ok
}

func (s *OrderService) dropOrders(ctx context.Context, userID uint) {
	if err := s.cache.InvalidateOrders(ctx, userID); err != nil {
		s.logger.Warn("order cache invalidation failed", zap.Uint("user_id", userID), zap.Error(err))
	}
}

// dropOrdersOf invalidates through the item's parent order, which has to be
// loaded first to learn the owner.
func (s *OrderService) dropOrdersOf(ctx context.Context, orderID uint) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		s.logger.Warn("order lookup for cache invalidation failed", zap.Uint("order_id", orderID), zap.Error(err))
		return
	}
	s.dropOrders(ctx, order.UserID)
}
