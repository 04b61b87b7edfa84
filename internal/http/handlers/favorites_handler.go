package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "ecofinds/internal/log"
	"ecofinds/internal/services"
	"ecofinds/internal/validate"
)

type FavoritesHandler struct {
	Favs    *services.FavoritesService
	Catalog *services.CatalogService
}

func (h *FavoritesHandler) List(c *fiber.Ctx) error {
	claims := currentClaims(c)
	items, err := h.Favs.List(claims.UserID)
	if err != nil {
		applog.Error(c, "favorites.list.fail", err, nil)
		return respondErr(c, fiber.StatusInternalServerError, "could not load favorites")
	}
	return c.JSON(fiber.Map{"favorites": items, "count": len(items)})
}

type favoriteReq struct {
	ProductID string `json:"productId"`
}

func (h *FavoritesHandler) Save(c *fiber.Ctx) error {
	claims := currentClaims(c)
	var req favoriteReq
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, fiber.StatusBadRequest, "invalid body")
	}
	pid, ok := validate.ID(req.ProductID)
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "missing productId")
	}
	if _, found, err := h.Catalog.Get(pid); err != nil || !found {
		return respondErr(c, fiber.StatusNotFound, "product not found")
	}
	if err := h.Favs.Save(claims.UserID, pid); err != nil {
		applog.Error(c, "favorites.save.fail", err, map[string]any{"product_id": pid})
		return respondErr(c, fiber.StatusInternalServerError, "could not save favorite")
	}
	applog.Audit(c, "favorites.save", map[string]any{"product_id": pid})
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *FavoritesHandler) Unsave(c *fiber.Ctx) error {
	claims := currentClaims(c)
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "missing productId")
	}
	if err := h.Favs.Unsave(claims.UserID, pid); err != nil {
		applog.Error(c, "favorites.unsave.fail", err, map[string]any{"product_id": pid})
		return respondErr(c, fiber.StatusInternalServerError, "could not remove favorite")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
