package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"ecofinds/internal/domain"
)

type PurchaseRepo struct{ db *sqlx.DB }

func NewPurchaseRepo(db *sqlx.DB) *PurchaseRepo { return &PurchaseRepo{db: db} }

// Create inserts the purchase header and its item snapshot in one transaction.
// The unique idempotency_key index rejects a second attempt with the same key.
func (r *PurchaseRepo) Create(p domain.Purchase) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO purchases(id, buyer_id, total, status, idempotency_key, created_at)
	  VALUES (?,?,?,?,?,?)
	`, p.ID, p.BuyerID, p.Total, p.Status, p.IdempotencyKey, p.CreatedAt); err != nil {
		return err
	}

	for _, it := range p.Items {
		if _, err := tx.Exec(`
		  INSERT INTO purchase_items(purchase_id, product_id, title, price, qty, image_url, seller_id, seller_name)
		  VALUES (?,?,?,?,?,?,?,?)
		`, p.ID, it.ProductID, it.Title, it.Price, it.Quantity, it.ImageURL, it.SellerID, it.SellerName); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PurchaseRepo) SetStatus(id string, status domain.PurchaseStatus) error {
	_, err := r.db.Exec(`UPDATE purchases SET status = ? WHERE id = ?`, status, id)
	return err
}

// Complete marks the attempt terminal-successful and stamps completed_at.
func (r *PurchaseRepo) Complete(id string) error {
	_, err := r.db.Exec(`
	  UPDATE purchases SET status = 'completed', completed_at = ? WHERE id = ?
	`, nowStamp(), id)
	return err
}

func (r *PurchaseRepo) Get(id string) (domain.Purchase, error) {
	var p domain.Purchase
	if err := r.db.Get(&p, `
	  SELECT id, buyer_id, total, status, idempotency_key, created_at,
	         COALESCE(completed_at,'') AS completed_at
	  FROM purchases WHERE id = ?
	`, id); err != nil {
		return domain.Purchase{}, err
	}
	items, err := r.ItemsOf(id)
	if err != nil {
		return domain.Purchase{}, err
	}
	p.Items = items
	return p, nil
}

// ByIdempotencyKey resolves an existing attempt for duplicate detection.
func (r *PurchaseRepo) ByIdempotencyKey(key string) (domain.Purchase, bool, error) {
	var p domain.Purchase
	err := r.db.Get(&p, `
	  SELECT id, buyer_id, total, status, idempotency_key, created_at,
	         COALESCE(completed_at,'') AS completed_at
	  FROM purchases WHERE idempotency_key = ?
	`, key)
	if err == sql.ErrNoRows {
		return domain.Purchase{}, false, nil
	}
	if err != nil {
		return domain.Purchase{}, false, err
	}
	return p, true, nil
}

func (r *PurchaseRepo) ItemsOf(purchaseID string) ([]domain.PurchaseItem, error) {
	items := []domain.PurchaseItem{}
	err := r.db.Select(&items, `
	  SELECT purchase_id, product_id, title, price, qty,
	         COALESCE(image_url,'') AS image_url, seller_id,
	         COALESCE(seller_name,'') AS seller_name
	  FROM purchase_items
	  WHERE purchase_id = ?
	  ORDER BY title
	`, purchaseID)
	return items, err
}

func (r *PurchaseRepo) ListByBuyer(buyerID string) ([]domain.Purchase, error) {
	out := []domain.Purchase{}
	if err := r.db.Select(&out, `
	  SELECT id, buyer_id, total, status, idempotency_key, created_at,
	         COALESCE(completed_at,'') AS completed_at
	  FROM purchases
	  WHERE buyer_id = ?
	  ORDER BY created_at DESC, id
	`, buyerID); err != nil {
		return nil, err
	}
	for i := range out {
		items, err := r.ItemsOf(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}
