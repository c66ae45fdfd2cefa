package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"store-service/model"
	"store-service/repository"
	"store-service/service"
)

type CategoryController struct {
	Catalog *service.CatalogService
}

func (cc *CategoryController) List(c *fiber.Ctx) error {
	categories, err := cc.Catalog.ListCategories(c.Context())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "list failed"})
	}
	return c.JSON(categories)
}

func (cc *CategoryController) Get(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	category, err := cc.Catalog.GetCategory(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "category not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "lookup failed"})
	}
	return c.JSON(category)
}

func (cc *CategoryController) Create(c *fiber.Ctx) error {
	var in model.Category
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if in.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name required"})
	}

	if err := cc.Catalog.CreateCategory(c.Context(), &in); err != nil {
		if errors.Is(err, repository.ErrCategoryExists) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "create failed"})
	}
	return c.Status(201).JSON(in)
}

func (cc *CategoryController) Update(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	var in model.Category
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	category, err := cc.Catalog.UpdateCategory(c.Context(), uint(id), &in)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "category not found"})
		case errors.Is(err, repository.ErrCategoryExists):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "update failed"})
	}
	return c.JSON(category)
}

func (cc *CategoryController) Delete(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	if err := cc.Catalog.DeleteCategory(c.Context(), uint(id)); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "category not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "delete failed"})
	}
	return c.SendStatus(204)
}
