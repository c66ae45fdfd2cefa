package routes

import (
	"github.com/gofiber/fiber/v2"

	"store-service/controller"
)

func RegisterAuthRoutes(app *fiber.App, ac *controller.AuthController, authMiddleware fiber.Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", ac.Register)
	auth.Post("/login", ac.Login)

	users := api.Group("/users")
	users.Get("/me", authMiddleware, ac.Me)
}
