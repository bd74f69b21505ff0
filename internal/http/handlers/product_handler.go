package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"shopline/internal/domain"
	applog "shopline/internal/log"
	"shopline/internal/repos"
	"shopline/internal/services"
	"shopline/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.List(
		c.Query("category"),
		c.Query("searchKeyword"),
		validate.SortOrder(c.Query("sortOrder")),
	)
	if err != nil {
		return storeError(c, "product.list", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return c.JSON(products)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Product Not Found.")
	}
	p, err := h.Catalog.Get(id)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return jsonError(c, fiber.StatusNotFound, "Product Not Found.")
		}
		return storeError(c, "product.get", err)
	}
	return c.JSON(p)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var p domain.Product
	if err := c.BodyParser(&p); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	created, err := h.Catalog.Create(p)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return jsonError(c, fiber.StatusBadRequest, err.Error())
		}
		return storeError(c, "product.create", err)
	}
	applog.Audit(c, "product.create", map[string]any{"product_id": created.ID})
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Product Not Found")
	}
	var p domain.Product
	if err := c.BodyParser(&p); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	p.ID = id
	updated, err := h.Catalog.Update(p)
	if err != nil {
		switch {
		case errors.Is(err, repos.ErrNotFound):
			return jsonError(c, fiber.StatusNotFound, "Product Not Found")
		case errors.Is(err, services.ErrInvalidInput):
			return jsonError(c, fiber.StatusBadRequest, err.Error())
		}
		return storeError(c, "product.update", err)
	}
	applog.Audit(c, "product.update", map[string]any{"product_id": id})
	return c.JSON(updated)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Product Not Found")
	}
	if err := h.Catalog.Delete(id); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return jsonError(c, fiber.StatusNotFound, "Product Not Found")
		}
		return storeError(c, "product.delete", err)
	}
	applog.Audit(c, "product.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"message": "Product Deleted"})
}

type reviewReq struct {
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *ProductHandler) AddReview(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Product Not Found")
	}
	var req reviewReq
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if !validate.Rating(req.Rating) {
		return jsonError(c, fiber.StatusBadRequest, "rating must be between 0 and 5")
	}

	rv, err := h.Catalog.AddReview(id, req.Name, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, repos.ErrNotFound):
			return jsonError(c, fiber.StatusNotFound, "Product Not Found")
		case errors.Is(err, services.ErrInvalidInput):
			return jsonError(c, fiber.StatusBadRequest, err.Error())
		}
		return storeError(c, "product.review", err)
	}
	applog.Audit(c, "product.review", map[string]any{"product_id": id, "rating": req.Rating})
	return c.Status(fiber.StatusCreated).JSON(rv)
}
