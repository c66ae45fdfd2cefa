package main

import (
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"store-service/cache"
	"store-service/controller"
	"store-service/kafka"
	"store-service/metrics"
	"store-service/middleware"
	"store-service/model"
	"store-service/repository"
	"store-service/routes"
	"store-service/service"
)

func initDB() *gorm.DB {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	pass := getEnv("DB_PASS", "postgres")
	name := getEnv("DB_NAME", "storedb")

	dsn := "host=" + host + " user=" + user + " password=" + pass + " dbname=" + name + " port=" + port + " sslmode=disable TimeZone=UTC"
	// TranslateError turns driver duplicate-key failures into gorm.ErrDuplicatedKey,
	// which the repositories rely on.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect store db:", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.Fatal(err)
	}
	return db
}

func main() {
	zl, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()

	db := initDB()
	rdb := redis.NewClient(&redis.Options{
		Addr: getEnv("REDIS_ADDR", "localhost:6379"),
	})
	producer := kafka.NewProducer()

	store := cache.NewRedisCache(rdb)
	secret := getEnv("JWT_SECRET", "supersecret")
	statuses := strings.Split(getEnv("ORDER_STATUSES", "pending,processing,shipped,delivered,cancelled"), ",")

	users := repository.NewUserRepository(db)
	categories := repository.NewCategoryRepository(db)
	products := repository.NewProductRepository(db)
	orders := repository.NewOrderRepository(db)
	items := repository.NewOrderItemRepository(db)

	authService := service.NewAuthService(users, secret, zl)
	catalogService := service.NewCatalogService(categories, products, store, producer, zl)
	orderService := service.NewOrderService(orders, items, products, store, producer, zl, statuses)

	serverMetrics := metrics.NewServerMetrics("store_service")

	app := fiber.New()
	app.Use(logger.New())
	app.Use(serverMetrics.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	authMiddleware := middleware.AuthRequired(secret)
	routes.RegisterAuthRoutes(app, &controller.AuthController{Auth: authService}, authMiddleware)
	routes.RegisterCatalogRoutes(app, &controller.CategoryController{Catalog: catalogService}, &controller.ProductController{Catalog: catalogService}, authMiddleware)
	routes.RegisterOrderRoutes(app, &controller.OrderController{Orders: orderService}, &controller.OrderItemController{Orders: orderService}, authMiddleware)

	port := getEnv("PORT", "3000")
	log.Println("HTTP server running on port " + port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("fiber error:", err)
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
