package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"ecofinds/internal/domain"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// CartLine is a cart row joined with the live product so callers can flag
// divergence. The snapshot columns stay authoritative for pricing.
type CartLine struct {
	ID         string  `db:"id" json:"id"`
	UserID     string  `db:"user_id" json:"-"`
	ProductID  string  `db:"product_id" json:"productId"`
	Title      string  `db:"title" json:"title"`
	PriceAtAdd float64 `db:"price_at_add" json:"price"`
	ImageURL   string  `db:"image_url" json:"imageUrl"`
	SellerID   string  `db:"seller_id" json:"sellerId"`
	SellerName string  `db:"seller_name" json:"sellerName"`
	Qty        int     `db:"qty" json:"quantity"`
	AddedAt    string  `db:"added_at" json:"addedAt"`
	UpdatedAt  string  `db:"updated_at" json:"updatedAt,omitempty"`
	Subtotal   float64 `db:"subtotal" json:"subtotal"`

	LivePrice  float64 `db:"live_price" json:"-"`
	LiveStatus string  `db:"live_status" json:"-"`

	// Advisory divergence flags, set by CartService from the live columns.
	PriceChanged bool `db:"-" json:"priceChanged"`
	Unavailable  bool `db:"-" json:"unavailable"`
}

// Upsert merges a product into the cart as one atomic write: first add
// inserts a quantity-1 line with a point-in-time snapshot of the display
// fields, later adds only bump the quantity. The snapshot is never refreshed.
func (r *CartRepo) Upsert(userID string, p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO cart_items
	    (id, user_id, product_id, title, price_at_add, image_url, seller_id, seller_name, qty, added_at)
	  VALUES (?,?,?,?,?,?,?,?,1,?)
	  ON CONFLICT(user_id, product_id) DO UPDATE
	  SET qty = qty + 1, updated_at = excluded.added_at
	`, uuid.NewString(), userID, p.ID, p.Title, p.Price, p.ImageURL, p.SellerID, p.SellerName, nowStamp())
	return err
}

// SetQty overwrites the quantity for an existing line. Absent lines are a no-op.
func (r *CartRepo) SetQty(userID, productID string, qty int) error {
	_, err := r.db.Exec(`
	  UPDATE cart_items SET qty = ?, updated_at = ?
	  WHERE user_id = ? AND product_id = ?
	`, qty, nowStamp(), userID, productID)
	return err
}

// Remove deletes every line for the pair. Expected cardinality is one, but
// duplicates are tolerated.
func (r *CartRepo) Remove(userID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = ? AND product_id = ?`, userID, productID)
	return err
}

func (r *CartRepo) Clear(userID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = ?`, userID)
	return err
}

func (r *CartRepo) Items(userID string) ([]CartLine, error) {
	out := []CartLine{}
	err := r.db.Select(&out, `
	  SELECT ci.id, ci.user_id, ci.product_id, ci.title, ci.price_at_add,
	         COALESCE(ci.image_url,'') AS image_url, ci.seller_id,
	         COALESCE(ci.seller_name,'') AS seller_name, ci.qty, ci.added_at,
	         COALESCE(ci.updated_at,'') AS updated_at,
	         (ci.qty * ci.price_at_add) AS subtotal,
	         COALESCE(p.price, ci.price_at_add) AS live_price,
	         COALESCE(p.status, '') AS live_status
	  FROM cart_items ci
	  LEFT JOIN products p ON p.id = ci.product_id
	  WHERE ci.user_id = ?
	  ORDER BY ci.added_at DESC, ci.id
	`, userID)
	return out, err
}
