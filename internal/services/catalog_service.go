package services

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"ecofinds/internal/domain"
	"ecofinds/internal/repos"
)

const defaultListLimit = 20

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

// ProductInput carries the seller-editable listing fields.
type ProductInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Condition   string  `json:"condition"`
	Location    string  `json:"location"`
}

func (s *CatalogService) Create(sellerID, sellerName string, in ProductInput) (domain.Product, error) {
	p := domain.Product{
		ID:          uuid.NewString(),
		SellerID:    sellerID,
		SellerName:  sellerName,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Condition:   in.Condition,
		Location:    in.Location,
		Status:      domain.StatusActive,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Prods.Create(p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// Get returns explicit absence for a missing id instead of an error.
func (s *CatalogService) Get(id string) (domain.Product, bool, error) {
	p, err := s.Prods.Get(id)
	if err == sql.ErrNoRows {
		return domain.Product{}, false, nil
	}
	if err != nil {
		return domain.Product{}, false, err
	}
	return p, true, nil
}

// Update applies a partial patch. Only the seller may edit, and sold listings
// are frozen (the checkout engine owns that transition).
func (s *CatalogService) Update(sellerID, id string, patch repos.Patch) error {
	p, ok, err := s.Get(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	if p.SellerID != sellerID {
		return ErrNotOwner
	}
	if p.Status == domain.StatusSold {
		return ErrProductSold
	}
	return s.Prods.Update(id, patch)
}

func (s *CatalogService) Delete(sellerID, id string) error {
	p, ok, err := s.Get(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	if p.SellerID != sellerID {
		return ErrNotOwner
	}
	return s.Prods.Delete(id)
}

func (s *CatalogService) ListBySeller(sellerID string) ([]domain.Product, error) {
	return s.Prods.ListBySeller(sellerID)
}

// ListActive returns the newest active listings. When the primary query fails
// it degrades to the unfiltered fallback; both paths re-filter to active in
// memory, so callers never see sold or inactive rows.
func (s *CatalogService) ListActive(limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.Prods.ListRecent(limit)
	if err != nil {
		rows, err = s.Prods.ListFallback(limit)
		if err != nil {
			return nil, err
		}
	}
	out := make([]domain.Product, 0, len(rows))
	for _, p := range rows {
		if p.Status == domain.StatusActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *CatalogService) ListByCategory(category string, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.Prods.ListByCategory(category, limit)
}

// Search is a case-insensitive substring match over title and description,
// evaluated over the active listing set. An empty term returns all active
// listings.
func (s *CatalogService) Search(term string, limit int) ([]domain.Product, error) {
	active, err := s.ListActive(limit)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return active, nil
	}
	out := make([]domain.Product, 0, len(active))
	for _, p := range active {
		if strings.Contains(strings.ToLower(p.Title), term) ||
			strings.Contains(strings.ToLower(p.Description), term) {
			out = append(out, p)
		}
	}
	return out, nil
}
