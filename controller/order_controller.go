package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"store-service/repository"
	"store-service/service"
)

type OrderController struct {
	Orders *service.OrderService
}

type OrderRequest struct {
	Status string `json:"status"`
}

// actorFromLocals rebuilds the caller identity the auth middleware stashed.
func actorFromLocals(c *fiber.Ctx) service.Actor {
	id, _ := c.Locals("user_id").(uint)
	role, _ := c.Locals("user_role").(string)
	return service.Actor{ID: id, Staff: role == "admin"}
}

func (oc *OrderController) List(c *fiber.Ctx) error {
	orders, err := oc.Orders.ListOrders(c.Context(), actorFromLocals(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "list failed"})
	}
	return c.JSON(orders)
}

func (oc *OrderController) Get(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	order, err := oc.Orders.GetOrder(c.Context(), actorFromLocals(c), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "order not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "lookup failed"})
	}
	return c.JSON(order)
}

func (oc *OrderController) Create(c *fiber.Ctx) error {
	var in OrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	order, err := oc.Orders.CreateOrder(c.Context(), actorFromLocals(c), in.Status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "create failed"})
	}
	return c.Status(201).JSON(order)
}

func (oc *OrderController) Update(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	var in OrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	order, err := oc.Orders.UpdateOrder(c.Context(), actorFromLocals(c), uint(id), in.Status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "order not found"})
		case errors.Is(err, service.ErrInvalidStatus):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "update failed"})
	}
	return c.JSON(order)
}

// UpdateStatus is the dedicated transition endpoint. Any configured status is
// reachable from any other; the payload just has to name one.
func (oc *OrderController) UpdateStatus(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	var in OrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	if _, err := oc.Orders.UpdateStatus(c.Context(), actorFromLocals(c), uint(id), in.Status); err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "order not found"})
		case errors.Is(err, service.ErrInvalidStatus):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "update failed"})
	}
	return c.JSON(fiber.Map{"status": "order status updated"})
}

func (oc *OrderController) Delete(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	if err := oc.Orders.DeleteOrder(c.Context(), actorFromLocals(c), uint(id)); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "order not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "delete failed"})
	}
	return c.SendStatus(204)
}
