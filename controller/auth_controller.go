package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"store-service/repository"
	"store-service/service"
)

type AuthController struct {
	Auth *service.AuthService
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	var in RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "email and password required"})
	}

	user, err := ac.Auth.Register(c.Context(), in.Email, in.Password, in.Name, in.Role)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return c.Status(409).JSON(fiber.Map{"error": "email already registered"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "register failed"})
	}
	return c.Status(201).JSON(user)
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var in LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	token, err := ac.Auth.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(401).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "login failed"})
	}
	return c.JSON(fiber.Map{"access_token": token})
}

func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(uint)
	user, err := ac.Auth.Me(c.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "user not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "lookup failed"})
	}
	return c.JSON(user)
}
