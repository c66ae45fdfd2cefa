package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"store-service/cache"
	"store-service/controller"
	"store-service/middleware"
	"store-service/model"
	"store-service/repository"
	"store-service/routes"
	"store-service/service"
)

const testSecret = "controller-test-secret"

// Map-backed repositories, enough to drive the full HTTP surface.

type memUserRepo struct {
	seq   uint
	users map[uint]model.User
}

func (m *memUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	m.seq++
	user.ID = m.seq
	m.users[user.ID] = *user
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type memCategoryRepo struct {
	seq        uint
	categories map[uint]model.Category
}

func (m *memCategoryRepo) List(context.Context) ([]model.Category, error) {
	out := make([]model.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memCategoryRepo) GetByID(_ context.Context, id uint) (*model.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	return &c, nil
}

func (m *memCategoryRepo) Create(_ context.Context, category *model.Category) error {
	for _, c := range m.categories {
		if c.Name == category.Name {
			return repository.ErrCategoryExists
		}
	}
	m.seq++
	category.ID = m.seq
	m.categories[category.ID] = *category
	return nil
}

func (m *memCategoryRepo) Save(_ context.Context, category *model.Category) error {
	m.categories[category.ID] = *category
	return nil
}

func (m *memCategoryRepo) Delete(_ context.Context, category *model.Category) error {
	delete(m.categories, category.ID)
	return nil
}

type memProductRepo struct {
	seq      uint
	products map[uint]model.Product
}

func (m *memProductRepo) List(_ context.Context, categoryID *uint) ([]model.Product, error) {
	out := make([]model.Product, 0, len(m.products))
	for _, p := range m.products {
		if categoryID != nil && p.CategoryID != *categoryID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memProductRepo) GetByID(_ context.Context, id uint) (*model.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &p, nil
}

func (m *memProductRepo) Create(_ context.Context, product *model.Product) error {
	m.seq++
	product.ID = m.seq
	m.products[product.ID] = *product
	return nil
}

func (m *memProductRepo) Save(_ context.Context, product *model.Product) error {
	m.products[product.ID] = *product
	return nil
}

func (m *memProductRepo) Delete(_ context.Context, product *model.Product) error {
	delete(m.products, product.ID)
	return nil
}

type memOrderRepo struct {
	seq    uint
	orders map[uint]model.Order
}

func (m *memOrderRepo) list(filter func(model.Order) bool) []model.Order {
	out := make([]model.Order, 0, len(m.orders))
	for _, o := range m.orders {
		if filter(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memOrderRepo) ListAll(context.Context) ([]model.Order, error) {
	return m.list(func(model.Order) bool { return true }), nil
}

func (m *memOrderRepo) ListByUser(_ context.Context, userID uint) ([]model.Order, error) {
	return m.list(func(o model.Order) bool { return o.UserID == userID }), nil
}

func (m *memOrderRepo) GetByID(_ context.Context, id uint) (*model.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return &o, nil
}

func (m *memOrderRepo) GetOwned(_ context.Context, id, userID uint) (*model.Order, error) {
	o, ok := m.orders[id]
	if !ok || o.UserID != userID {
		return nil, repository.ErrOrderNotFound
	}
	return &o, nil
}

func (m *memOrderRepo) Create(_ context.Context, order *model.Order) error {
	m.seq++
	order.ID = m.seq
	m.orders[order.ID] = *order
	return nil
}

func (m *memOrderRepo) Save(_ context.Context, order *model.Order) error {
	m.orders[order.ID] = *order
	return nil
}

func (m *memOrderRepo) Delete(_ context.Context, order *model.Order) error {
	delete(m.orders, order.ID)
	return nil
}

type memItemRepo struct {
	seq   uint
	items map[uint]model.OrderItem
}

func (m *memItemRepo) ListByOrder(_ context.Context, orderID uint) ([]model.OrderItem, error) {
	out := make([]model.OrderItem, 0, len(m.items))
	for _, it := range m.items {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memItemRepo) GetInOrder(_ context.Context, id, orderID uint) (*model.OrderItem, error) {
	it, ok := m.items[id]
	if !ok || it.OrderID != orderID {
		return nil, repository.ErrOrderItemNotFound
	}
	return &it, nil
}

func (m *memItemRepo) Create(_ context.Context, item *model.OrderItem) error {
	m.seq++
	item.ID = m.seq
	m.items[item.ID] = *item
	return nil
}

func (m *memItemRepo) Save(_ context.Context, item *model.OrderItem) error {
	m.items[item.ID] = *item
	return nil
}

func (m *memItemRepo) Delete(_ context.Context, item *model.OrderItem) error {
	delete(m.items, item.ID)
	return nil
}

// nopCache always misses so requests hit the repositories.
type nopCache struct{}

func (nopCache) GetProduct(context.Context, uint) (*model.Product, error) {
	return nil, cache.ErrCacheMiss
}
func (nopCache) SetProduct(context.Context, *model.Product) error { return nil }
func (nopCache) DeleteProduct(context.Context, uint) error        { return nil }
func (nopCache) GetOrders(context.Context, string) ([]model.Order, error) {
	return nil, cache.ErrCacheMiss
}
func (nopCache) SetOrders(context.Context, string, []model.Order) error { return nil }
func (nopCache) InvalidateOrders(context.Context, uint) error           { return nil }

type nopPublisher struct{}

func (nopPublisher) PublishCategoryCreatedEvent(map[string]interface{})    {}
func (nopPublisher) PublishCategoryUpdatedEvent(map[string]interface{})    {}
func (nopPublisher) PublishCategoryDeletedEvent(map[string]interface{})    {}
func (nopPublisher) PublishProductCreatedEvent(map[string]interface{})     {}
func (nopPublisher) PublishProductUpdatedEvent(map[string]interface{})     {}
func (nopPublisher) PublishProductDeletedEvent(map[string]interface{})     {}
func (nopPublisher) PublishStockUpdatedEvent(map[string]interface{})       {}
func (nopPublisher) PublishOrderCreatedEvent(map[string]interface{})       {}
func (nopPublisher) PublishOrderStatusUpdatedEvent(map[string]interface{}) {}

// testApp is the whole HTTP surface wired over the in-memory world.
type testApp struct {
	app        *fiber.App
	users      *memUserRepo
	categories *memCategoryRepo
	products   *memProductRepo
	orders     *memOrderRepo
	items      *memItemRepo
}

func newTestApp() *testApp {
	users := &memUserRepo{users: map[uint]model.User{}}
	categories := &memCategoryRepo{categories: map[uint]model.Category{}}
	products := &memProductRepo{products: map[uint]model.Product{}}
	orders := &memOrderRepo{orders: map[uint]model.Order{}}
	items := &memItemRepo{items: map[uint]model.OrderItem{}}

	logger := zap.NewNop()
	authService := service.NewAuthService(users, testSecret, logger)
	catalogService := service.NewCatalogService(categories, products, nopCache{}, nopPublisher{}, logger)
	orderService := service.NewOrderService(orders, items, products, nopCache{}, nopPublisher{}, logger, nil)

	app := fiber.New()
	authMiddleware := middleware.AuthRequired(testSecret)
	routes.RegisterAuthRoutes(app, &controller.AuthController{Auth: authService}, authMiddleware)
	routes.RegisterCatalogRoutes(app, &controller.CategoryController{Catalog: catalogService}, &controller.ProductController{Catalog: catalogService}, authMiddleware)
	routes.RegisterOrderRoutes(app, &controller.OrderController{Orders: orderService}, &controller.OrderItemController{Orders: orderService}, authMiddleware)

	return &testApp{app: app, users: users, categories: categories, products: products, orders: orders, items: items}
}

func (ta *testApp) seedCategory(t *testing.T, name string) *model.Category {
	t.Helper()
	c := &model.Category{Name: name}
	require.NoError(t, ta.categories.Create(context.Background(), c))
	return c
}

func (ta *testApp) seedProduct(t *testing.T, name string, price float64, stock int, categoryID uint) *model.Product {
	t.Helper()
	p := &model.Product{Name: name, Price: price, Stock: stock, CategoryID: categoryID}
	require.NoError(t, ta.products.Create(context.Background(), p))
	return p
}

func (ta *testApp) seedOrder(t *testing.T, userID uint, status string) *model.Order {
	t.Helper()
	o := &model.Order{UserID: userID, Status: status, Items: []model.OrderItem{}, CreatedAt: time.Now()}
	require.NoError(t, ta.orders.Create(context.Background(), o))
	return o
}

func (ta *testApp) seedItem(t *testing.T, orderID, productID uint, quantity int, price float64) *model.OrderItem {
	t.Helper()
	it := &model.OrderItem{OrderID: orderID, ProductID: productID, Quantity: quantity, Price: price}
	require.NoError(t, ta.items.Create(context.Background(), it))
	return it
}

func token(t *testing.T, userID uint, role string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": "someone@example.com",
		"role":  role,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, app *fiber.App, method, path, bearer string, body interface{}) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decodeSlice(t *testing.T, resp *http.Response) []map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
