package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "ecofinds/internal/log"
	"ecofinds/internal/services"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
}

// Place runs one checkout attempt. A client that retries (timeout, crash)
// should resend the same Idempotency-Key header; the original purchase id
// comes back instead of a second charge.
func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	claims := currentClaims(c)
	idemKey := c.Get("Idempotency-Key")

	purchaseID, err := h.Checkout.Checkout(c.Context(), claims.UserID, idemKey)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateAttempt):
			applog.Security(c, "checkout.duplicate", map[string]any{"purchase_id": purchaseID})
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":      "duplicate checkout attempt",
				"purchaseId": purchaseID,
			})
		case errors.Is(err, services.ErrEmptyCart):
			return respondErr(c, fiber.StatusConflict, "cart is empty")
		case errors.Is(err, services.ErrOwnListing):
			return respondErr(c, fiber.StatusConflict, "you cannot buy your own listing")
		case errors.Is(err, services.ErrProductUnavailable):
			applog.Security(c, "checkout.unavailable", map[string]any{"reason": err.Error()})
			return respondErr(c, fiber.StatusConflict, "an item in your cart is no longer available")
		}
		applog.Error(c, "checkout.fail", err, nil)
		return respondErr(c, fiber.StatusInternalServerError, "could not complete checkout")
	}

	applog.Audit(c, "checkout.place", map[string]any{"purchase_id": purchaseID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"purchaseId": purchaseID})
}

func (h *CheckoutHandler) History(c *fiber.Ctx) error {
	claims := currentClaims(c)
	purchases, err := h.Checkout.ListPurchases(claims.UserID)
	if err != nil {
		applog.Error(c, "purchases.history.fail", err, nil)
		return respondErr(c, fiber.StatusInternalServerError, "could not load purchases")
	}
	return c.JSON(fiber.Map{"purchases": purchases, "count": len(purchases)})
}
