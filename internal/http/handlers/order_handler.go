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

type OrderHandler struct {
	Order *services.OrderService
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	u := currentUser(c)
	var req services.NewOrder
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	o, serverTotal, err := h.Order.Place(u.ID, req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			applog.Security(c, "order.place.fail", map[string]any{"error": err.Error()})
			return jsonError(c, fiber.StatusBadRequest, err.Error())
		}
		return storeError(c, "order.place", err)
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id":     o.ID,
		"client_total": o.TotalPrice,
		"server_total": serverTotal,
		"mismatch":     o.TotalPrice != serverTotal,
	})
	return c.Status(fiber.StatusCreated).JSON(o)
}

// List returns every order with items and owner info (admin only).
func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.Order.List()
	if err != nil {
		return storeError(c, "order.list", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return c.JSON(orders)
}

// Mine returns the calling user's orders.
func (h *OrderHandler) Mine(c *fiber.Ctx) error {
	u := currentUser(c)
	orders, err := h.Order.ListByUser(u.ID)
	if err != nil {
		return storeError(c, "order.mine", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return c.JSON(orders)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Order Not Found.")
	}
	o, err := h.Order.Get(id)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return jsonError(c, fiber.StatusNotFound, "Order Not Found.")
		}
		return storeError(c, "order.get", err)
	}
	return c.JSON(o)
}

func (h *OrderHandler) Pay(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Order not found.")
	}
	o, err := h.Order.MarkPaid(id)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return jsonError(c, fiber.StatusNotFound, "Order not found.")
		}
		return storeError(c, "order.pay", err)
	}
	applog.Audit(c, "order.pay", map[string]any{"order_id": id})
	return c.JSON(fiber.Map{"message": "Order Paid.", "order": o})
}

func (h *OrderHandler) Deliver(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Order not found.")
	}
	o, err := h.Order.MarkDelivered(id)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return jsonError(c, fiber.StatusNotFound, "Order not found.")
		}
		return storeError(c, "order.deliver", err)
	}
	applog.Audit(c, "order.deliver", map[string]any{"order_id": id})
	return c.JSON(fiber.Map{"message": "Order Delivered.", "order": o})
}

func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Order Not Found.")
	}
	if err := h.Order.Delete(id); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return jsonError(c, fiber.StatusNotFound, "Order Not Found.")
		}
		return storeError(c, "order.delete", err)
	}
	applog.Audit(c, "order.delete", map[string]any{"order_id": id})
	return c.JSON(fiber.Map{"message": "Order deleted successfully"})
}
