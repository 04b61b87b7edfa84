package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "ecofinds/internal/log"
	"ecofinds/internal/repos"
	"ecofinds/internal/services"
	"ecofinds/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.ListActive(c.QueryInt("limit"))
	if err != nil {
		applog.Error(c, "products.list.fail", err, nil)
		return respondErr(c, fiber.StatusInternalServerError, "could not load listings")
	}
	return c.JSON(fiber.Map{"products": products, "count": len(products)})
}

func (h *ProductHandler) Search(c *fiber.Ctx) error {
	term := validate.Term(c.Query("q"))
	products, err := h.Catalog.Search(term, c.QueryInt("limit"))
	if err != nil {
		applog.Error(c, "products.search.fail", err, nil)
		return respondErr(c, fiber.StatusInternalServerError, "could not load results")
	}
	return c.JSON(fiber.Map{"q": term, "products": products, "count": len(products)})
}

func (h *ProductHandler) ListByCategory(c *fiber.Ctx) error {
	category, ok := validate.Category(c.Params("category"))
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "unknown category")
	}
	products, err := h.Catalog.ListByCategory(category, c.QueryInt("limit"))
	if err != nil {
		applog.Error(c, "products.category.fail", err, nil)
		return respondErr(c, fiber.StatusInternalServerError, "could not load listings")
	}
	return c.JSON(fiber.Map{"category": category, "products": products, "count": len(products)})
}

func (h *ProductHandler) Mine(c *fiber.Ctx) error {
	claims := currentClaims(c)
	products, err := h.Catalog.ListBySeller(claims.UserID)
	if err != nil {
		applog.Error(c, "products.mine.fail", err, nil)
		return respondErr(c, fiber.StatusInternalServerError, "could not load listings")
	}
	return c.JSON(fiber.Map{"products": products, "count": len(products)})
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return respondErr(c, fiber.StatusNotFound, "this item is no longer available")
	}
	p, found, err := h.Catalog.Get(id)
	if err != nil {
		applog.Error(c, "products.detail.fail", err, nil)
		return respondErr(c, fiber.StatusInternalServerError, "could not load listing")
	}
	if !found {
		return respondErr(c, fiber.StatusNotFound, "this item is no longer available")
	}
	return c.JSON(p)
}

func (h *ProductHandler) parseInput(c *fiber.Ctx, in *services.ProductInput) (string, bool) {
	if err := c.BodyParser(in); err != nil {
		return "invalid body", false
	}
	var ok bool
	if in.Title, ok = validate.Title(in.Title); !ok {
		return "title is required (max 100 chars)", false
	}
	if in.Description, ok = validate.Description(in.Description); !ok {
		return "description too long", false
	}
	if in.Category, ok = validate.Category(in.Category); !ok {
		return "unknown category", false
	}
	if !validate.Price(in.Price) {
		return "price must be non-negative", false
	}
	if in.Condition, ok = validate.Condition(in.Condition); !ok {
		return "condition must be excellent, good, fair or poor", false
	}
	if in.ImageURL, ok = validate.ImageRef(in.ImageURL); !ok {
		return "image must be a URL or an inline image within the size cap", false
	}
	if in.Location, ok = validate.Location(in.Location); !ok {
		return "location too long", false
	}
	return "", true
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	claims := currentClaims(c)
	var in services.ProductInput
	if msg, ok := h.parseInput(c, &in); !ok {
		applog.Security(c, "validation.fail", map[string]any{"op": "product.create", "reason": msg})
		return respondErr(c, fiber.StatusBadRequest, msg)
	}
	p, err := h.Catalog.Create(claims.UserID, claims.Name, in)
	if err != nil {
		applog.Error(c, "products.create.fail", err, nil)
		return respondErr(c, fiber.StatusInternalServerError, "could not create listing")
	}
	applog.Audit(c, "products.create", map[string]any{"product_id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

type productPatchReq struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"imageUrl"`
	Condition   *string  `json:"condition"`
	Location    *string  `json:"location"`
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	claims := currentClaims(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return respondErr(c, fiber.StatusNotFound, "listing not found")
	}
	var req productPatchReq
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, fiber.StatusBadRequest, "invalid body")
	}

	patch := repos.Patch{Description: req.Description, Location: req.Location}
	if req.Title != nil {
		t, ok := validate.Title(*req.Title)
		if !ok {
			return respondErr(c, fiber.StatusBadRequest, "title is required (max 100 chars)")
		}
		patch.Title = &t
	}
	if req.Category != nil {
		cat, ok := validate.Category(*req.Category)
		if !ok {
			return respondErr(c, fiber.StatusBadRequest, "unknown category")
		}
		patch.Category = &cat
	}
	if req.Price != nil {
		if !validate.Price(*req.Price) {
			return respondErr(c, fiber.StatusBadRequest, "price must be non-negative")
		}
		patch.Price = req.Price
	}
	if req.Condition != nil {
		cond, ok := validate.Condition(*req.Condition)
		if !ok {
			return respondErr(c, fiber.StatusBadRequest, "condition must be excellent, good, fair or poor")
		}
		patch.Condition = &cond
	}
	if req.ImageURL != nil {
		img, ok := validate.ImageRef(*req.ImageURL)
		if !ok {
			return respondErr(c, fiber.StatusBadRequest, "image must be a URL or an inline image within the size cap")
		}
		patch.ImageURL = &img
	}

	if err := h.Catalog.Update(claims.UserID, id, patch); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return respondErr(c, fiber.StatusNotFound, "listing not found")
		case errors.Is(err, services.ErrNotOwner):
			applog.Security(c, "access.denied.product", map[string]any{"product_id": id})
			return respondErr(c, fiber.StatusForbidden, "only the seller can edit a listing")
		case errors.Is(err, services.ErrProductSold):
			return respondErr(c, fiber.StatusConflict, "sold listings cannot be edited")
		}
		applog.Error(c, "products.update.fail", err, map[string]any{"product_id": id})
		return respondErr(c, fiber.StatusInternalServerError, "could not update listing")
	}
	applog.Audit(c, "products.update", map[string]any{"product_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	claims := currentClaims(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return respondErr(c, fiber.StatusNotFound, "listing not found")
	}
	if err := h.Catalog.Delete(claims.UserID, id); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return respondErr(c, fiber.StatusNotFound, "listing not found")
		case errors.Is(err, services.ErrNotOwner):
			applog.Security(c, "access.denied.product", map[string]any{"product_id": id})
			return respondErr(c, fiber.StatusForbidden, "only the seller can delete a listing")
		}
		applog.Error(c, "products.delete.fail", err, map[string]any{"product_id": id})
		return respondErr(c, fiber.StatusInternalServerError, "could not delete listing")
	}
	applog.Audit(c, "products.delete", map[string]any{"product_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
