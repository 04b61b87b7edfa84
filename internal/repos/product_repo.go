package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"ecofinds/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func nowStamp() string { return time.Now().UTC().Format(time.RFC3339) }

const productCols = `
  id, seller_id, seller_name, title, description, category, price,
  COALESCE(image_url,'') AS image_url, condition, COALESCE(location,'') AS location,
  status, COALESCE(sold_at,'') AS sold_at, COALESCE(buyer_id,'') AS buyer_id,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products
	    (id, seller_id, seller_name, title, description, category, price, image_url,
	     condition, location, status, created_at, updated_at)
	  VALUES (?,?,?,?,?,?,?,?,?,?,'active',?,?)
	`, p.ID, p.SellerID, p.SellerName, p.Title, p.Description, p.Category, p.Price,
		p.ImageURL, p.Condition, p.Location, p.CreatedAt, p.CreatedAt)
	return err
}

// Patch carries the updatable listing fields; nil means "leave unchanged".
type Patch struct {
	Title       *string
	Description *string
	Category    *string
	Price       *float64
	ImageURL    *string
	Condition   *string
	Location    *string
}

// Update applies a partial patch and stamps updated_at.
func (r *ProductRepo) Update(id string, p Patch) error {
	set := `updated_at = ?`
	args := []any{nowStamp()}
	if p.Title != nil {
		set += `, title = ?`
		args = append(args, *p.Title)
	}
	if p.Description != nil {
		set += `, description = ?`
		args = append(args, *p.Description)
	}
	if p.Category != nil {
		set += `, category = ?`
		args = append(args, *p.Category)
	}
	if p.Price != nil {
		set += `, price = ?`
		args = append(args, *p.Price)
	}
	if p.ImageURL != nil {
		set += `, image_url = ?`
		args = append(args, *p.ImageURL)
	}
	if p.Condition != nil {
		set += `, condition = ?`
		args = append(args, *p.Condition)
	}
	if p.Location != nil {
		set += `, location = ?`
		args = append(args, *p.Location)
	}
	args = append(args, id)
	_, err := r.db.Exec(`UPDATE products SET `+set+` WHERE id = ?`, args...)
	return err
}

func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

// ListBySeller returns all of a seller's listings regardless of status,
// newest first, for the seller dashboard.
func (r *ProductRepo) ListBySeller(sellerID string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+` FROM products
	  WHERE seller_id = ?
	  ORDER BY created_at DESC
	`, sellerID)
	return out, err
}

// ListRecent is the primary browse query: newest first, status unfiltered.
// Callers filter to active in memory (see CatalogService).
func (r *ProductRepo) ListRecent(limit int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+` FROM products
	  ORDER BY created_at DESC
	  LIMIT ?
	`, limit)
	return out, err
}

// ListFallback is the degraded query used when ListRecent fails: no ordering,
// no filter. Callers must re-filter defensively.
func (r *ProductRepo) ListFallback(limit int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products LIMIT ?`, limit)
	return out, err
}

func (r *ProductRepo) ListByCategory(category string, limit int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+` FROM products
	  WHERE category = ? AND status = 'active'
	  ORDER BY created_at DESC
	  LIMIT ?
	`, category, limit)
	return out, err
}

// MarkSold transitions active -> sold, stamping sold_at and buyer_id together.
// Returns false when the product is no longer active (already sold, inactive,
// or gone), so a racing checkout loses cleanly instead of double-selling.
func (r *ProductRepo) MarkSold(productID, buyerID string) (bool, error) {
	now := nowStamp()
	res, err := r.db.Exec(`
	  UPDATE products
	  SET status = 'sold', sold_at = ?, buyer_id = ?, updated_at = ?
	  WHERE id = ? AND status = 'active'
	`, now, buyerID, now, productID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}

// RevertSold is the compensation for a failed checkout attempt: it restores a
// product that attempt had flipped, matching on the buyer so a completed sale
// to someone else is never undone.
func (r *ProductRepo) RevertSold(productID, buyerID string) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE products
	  SET status = 'active', sold_at = NULL, buyer_id = NULL, updated_at = ?
	  WHERE id = ? AND status = 'sold' AND buyer_id = ?
	`, nowStamp(), productID, buyerID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}
