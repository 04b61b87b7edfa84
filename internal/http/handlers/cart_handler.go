package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "ecofinds/internal/log"
	"ecofinds/internal/services"
	"ecofinds/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	claims := currentClaims(c)
	view, err := h.Cart.View(claims.UserID)
	if err != nil {
		applog.Error(c, "cart.view.fail", err, nil)
		return respondErr(c, fiber.StatusInternalServerError, "could not load cart")
	}
	return c.JSON(view)
}

type cartAddReq struct {
	ProductID string `json:"productId"`
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	claims := currentClaims(c)
	var req cartAddReq
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, fiber.StatusBadRequest, "invalid body")
	}
	pid, ok := validate.ID(req.ProductID)
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "missing productId")
	}
	if err := h.Cart.Add(claims.UserID, pid); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return respondErr(c, fiber.StatusNotFound, "product not found")
		case errors.Is(err, services.ErrProductUnavailable):
			return respondErr(c, fiber.StatusConflict, "product is no longer available")
		case errors.Is(err, services.ErrOwnListing):
			return respondErr(c, fiber.StatusConflict, "you cannot add your own listing")
		}
		applog.Error(c, "cart.add.fail", err, map[string]any{"product_id": pid})
		return respondErr(c, fiber.StatusInternalServerError, "could not add to cart")
	}
	applog.Audit(c, "cart.add", map[string]any{"product_id": pid})
	return c.SendStatus(fiber.StatusNoContent)
}

type cartQtyReq struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	claims := currentClaims(c)
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "missing productId")
	}
	var req cartQtyReq
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := h.Cart.SetQuantity(claims.UserID, pid, req.Quantity); err != nil {
		applog.Error(c, "cart.quantity.fail", err, map[string]any{"product_id": pid})
		return respondErr(c, fiber.StatusInternalServerError, "could not update quantity")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	claims := currentClaims(c)
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "missing productId")
	}
	if err := h.Cart.Remove(claims.UserID, pid); err != nil {
		applog.Error(c, "cart.remove.fail", err, map[string]any{"product_id": pid})
		return respondErr(c, fiber.StatusInternalServerError, "could not remove item")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	claims := currentClaims(c)
	if err := h.Cart.Clear(claims.UserID); err != nil {
		applog.Error(c, "cart.clear.fail", err, nil)
		return respondErr(c, fiber.StatusInternalServerError, "could not clear cart")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
