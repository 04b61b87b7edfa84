package services

import (
	"database/sql"

	"ecofinds/internal/domain"
	"ecofinds/internal/repos"
	"ecofinds/internal/validate"
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// Add merges a product into the user's cart: a repeated add bumps the
// quantity of the existing line, a first add snapshots the display fields.
func (s *CartService) Add(userID, productID string) error {
	p, err := s.Prods.Get(productID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if p.Status != domain.StatusActive {
		return ErrProductUnavailable
	}
	if p.SellerID == userID {
		return ErrOwnListing
	}
	return s.Carts.Upsert(userID, p)
}

// SetQuantity overwrites a line's quantity; zero or less removes the line.
func (s *CartService) SetQuantity(userID, productID string, qty int) error {
	if qty <= 0 {
		return s.Carts.Remove(userID, productID)
	}
	return s.Carts.SetQty(userID, productID, validate.Qty(qty))
}

func (s *CartService) Remove(userID, productID string) error {
	return s.Carts.Remove(userID, productID)
}

func (s *CartService) Clear(userID string) error {
	return s.Carts.Clear(userID)
}

type CartView struct {
	Items []repos.CartLine `json:"items"`
	Total float64          `json:"total"`
}

// View lists the cart newest-add first. Totals come from the add-time price
// snapshots; divergence from the live product is flagged, not silently fixed.
func (s *CartService) View(userID string) (CartView, error) {
	lines, err := s.Carts.Items(userID)
	if err != nil {
		return CartView{}, err
	}
	view := CartView{Items: lines}
	for i := range view.Items {
		l := &view.Items[i]
		l.PriceChanged = l.LiveStatus != "" && l.LivePrice != l.PriceAtAdd
		l.Unavailable = l.LiveStatus != string(domain.StatusActive)
		view.Total += l.Subtotal
	}
	return view, nil
}
