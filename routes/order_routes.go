package routes

import (
	"github.com/gofiber/fiber/v2"

	"store-service/controller"
)

// RegisterOrderRoutes wires orders and their items. Everything here needs a
// token; which orders are reachable is decided inside the service.
func RegisterOrderRoutes(app *fiber.App, oc *controller.OrderController, ic *controller.OrderItemController, authMiddleware fiber.Handler) {
	api := app.Group("/api")

	orders := api.Group("/orders")
	orders.Get("/", authMiddleware, oc.List)
	orders.Post("/", authMiddleware, oc.Create)
	orders.Get("/:id", authMiddleware, oc.Get)
	orders.Put("/:id", authMiddleware, oc.Update)
	orders.Delete("/:id", authMiddleware, oc.Delete)

	// status
	orders.Post("/:id/update_status", authMiddleware, oc.UpdateStatus)

	// items of one order
	orders.Get("/:order_id/items", authMiddleware, ic.List)
	orders.Post("/:order_id/items", authMiddleware, ic.Create)
	orders.Get("/:order_id/items/:id", authMiddleware, ic.Get)
	orders.Put("/:order_id/items/:id", authMiddleware, ic.Update)
	orders.Delete("/:order_id/items/:id", authMiddleware, ic.Delete)

	// flat item routes, kept for completeness; without an order in the
	// path they answer with an empty list and missing details
	items := api.Group("/order-items")
	items.Get("/", authMiddleware, ic.List)
	items.Post("/", authMiddleware, ic.Create)
	items.Get("/:id", authMiddleware, ic.Get)
	items.Put("/:id", authMiddleware, ic.Update)
	items.Delete("/:id", authMiddleware, ic.Delete)
}
