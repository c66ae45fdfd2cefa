package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"store-service/model"
	"store-service/repository"
	"store-service/service"
)

type ProductController struct {
	Catalog *service.CatalogService
}

// StockRequest distinguishes a stock value of zero from no value at all.
type StockRequest struct {
	Stock *int `json:"stock"`
}

func (pc *ProductController) List(c *fiber.Ctx) error {
	var categoryID *uint
	if v := c.Query("category"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid category filter"})
		}
		u := uint(id)
		categoryID = &u
	}

	products, err := pc.Catalog.ListProducts(c.Context(), categoryID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "list failed"})
	}
	return c.JSON(products)
}

func (pc *ProductController) Get(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	product, err := pc.Catalog.GetProduct(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "product not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "lookup failed"})
	}
	return c.JSON(product)
}

func (pc *ProductController) Create(c *fiber.Ctx) error {
	var in model.Product
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if in.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name required"})
	}

	if err := pc.Catalog.CreateProduct(c.Context(), &in); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return c.Status(400).JSON(fiber.Map{"error": "category not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "create failed"})
	}
	return c.Status(201).JSON(in)
}

func (pc *ProductController) Update(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	var in model.Product
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	product, err := pc.Catalog.UpdateProduct(c.Context(), uint(id), &in)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "product not found"})
		case errors.Is(err, repository.ErrCategoryNotFound):
			return c.Status(400).JSON(fiber.Map{"error": "category not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "update failed"})
	}
	return c.JSON(product)
}

func (pc *ProductController) Delete(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	if err := pc.Catalog.DeleteProduct(c.Context(), uint(id)); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "product not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "delete failed"})
	}
	return c.SendStatus(204)
}

// UpdateStock is the dedicated stock endpoint. A payload without a stock
// field is rejected; whatever value it carries is applied as sent.
func (pc *ProductController) UpdateStock(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	var in StockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	if _, err := pc.Catalog.UpdateStock(c.Context(), uint(id), in.Stock); err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "product not found"})
		case errors.Is(err, service.ErrStockNotProvided):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "update failed"})
	}
	return c.JSON(fiber.Map{"status": "stock updated"})
}
