package routes

import (
	"github.com/gofiber/fiber/v2"

	"store-service/controller"
)

// RegisterCatalogRoutes wires categories and products. Reads are open,
// writes need a token.
func RegisterCatalogRoutes(app *fiber.App, cc *controller.CategoryController, pc *controller.ProductController, authMiddleware fiber.Handler) {
	api := app.Group("/api")

	categories := api.Group("/categories")
	categories.Get("/", cc.List)
	categories.Get("/:id", cc.Get)
	categories.Post("/", authMiddleware, cc.Create)
	categories.Put("/:id", authMiddleware, cc.Update)
	categories.Delete("/:id", authMiddleware, cc.Delete)

	products := api.Group("/products")
	products.Get("/", pc.List)
	products.Get("/:id", pc.Get)
	products.Post("/", authMiddleware, pc.Create)
	products.Put("/:id", authMiddleware, pc.Update)
	products.Delete("/:id", authMiddleware, pc.Delete)

	// stock
	products.Post("/:id/update_stock", authMiddleware, pc.UpdateStock)
}
