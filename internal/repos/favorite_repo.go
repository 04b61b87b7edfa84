package repos

import "github.com/jmoiron/sqlx"

type FavoriteRepo struct{ db *sqlx.DB }

func NewFavoriteRepo(db *sqlx.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// Add is idempotent: re-favoriting an existing pair is a no-op.
func (r *FavoriteRepo) Add(userID, productID string) error {
	_, err := r.db.Exec(`
	  INSERT INTO favorites(user_id, product_id, created_at)
	  VALUES (?,?,?)
	  ON CONFLICT(user_id, product_id) DO NOTHING
	`, userID, productID, nowStamp())
	return err
}

// Remove on a non-member is a no-op.
func (r *FavoriteRepo) Remove(userID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM favorites WHERE user_id = ? AND product_id = ?`, userID, productID)
	return err
}

func (r *FavoriteRepo) Is(userID, productID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM favorites WHERE user_id = ? AND product_id = ?`, userID, productID)
	return n > 0, err
}

type FavoriteRow struct {
	ProductID string  `db:"product_id" json:"productId"`
	Title     string  `db:"title" json:"title"`
	Price     float64 `db:"price" json:"price"`
	ImageURL  string  `db:"image_url" json:"imageUrl"`
	Status    string  `db:"status" json:"status"`
	SavedAt   string  `db:"saved_at" json:"savedAt"`
}

func (r *FavoriteRepo) List(userID string) ([]FavoriteRow, error) {
	out := []FavoriteRow{}
	err := r.db.Select(&out, `
	  SELECT f.product_id, p.title, p.price, COALESCE(p.image_url,'') AS image_url,
	         p.status, f.created_at AS saved_at
	  FROM favorites f
	  JOIN products p ON p.id = f.product_id
	  WHERE f.user_id = ?
	  ORDER BY f.created_at DESC, f.product_id
	`, userID)
	return out, err
}
