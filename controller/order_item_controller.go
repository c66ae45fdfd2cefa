package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"store-service/repository"
	"store-service/service"
)

type OrderItemController struct {
	Orders *service.OrderService
}

type OrderItemRequest struct {
	OrderID   uint `json:"order_id"`
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// orderScope reads the order id from the nested route, if the request came
// in through one. The flat /order-items routes carry no scope.
func orderScope(c *fiber.Ctx) *uint {
	v := c.Params("order_id")
	if v == "" {
		return nil
	}
	id, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	u := uint(id)
	return &u
}

func (ic *OrderItemController) List(c *fiber.Ctx) error {
	items, err := ic.Orders.ListItems(c.Context(), orderScope(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "list failed"})
	}
	return c.JSON(items)
}

func (ic *OrderItemController) Get(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	item, err := ic.Orders.GetItem(c.Context(), uint(id), orderScope(c))
	if err != nil {
		if errors.Is(err, repository.ErrOrderItemNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "order item not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "lookup failed"})
	}
	return c.JSON(item)
}

func (ic *OrderItemController) Create(c *fiber.Ctx) error {
	var in OrderItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	// The nested route names the order; the flat route takes it from the body.
	if scope := orderScope(c); scope != nil {
		in.OrderID = *scope
	}

	item, err := ic.Orders.CreateItem(c.Context(), in.OrderID, in.ProductID, in.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderNotFound),
			errors.Is(err, repository.ErrProductNotFound),
			errors.Is(err, service.ErrInvalidQuantity):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "create failed"})
	}
	return c.Status(201).JSON(item)
}

func (ic *OrderItemController) Update(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	var in OrderItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	item, err := ic.Orders.UpdateItem(c.Context(), uint(id), orderScope(c), in.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderItemNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "order item not found"})
		case errors.Is(err, service.ErrInvalidQuantity):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "update failed"})
	}
	return c.JSON(item)
}

func (ic *OrderItemController) Delete(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	if err := ic.Orders.DeleteItem(c.Context(), uint(id), orderScope(c)); err != nil {
		if errors.Is(err, repository.ErrOrderItemNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "order item not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "delete failed"})
	}
	return c.SendStatus(204)
}
