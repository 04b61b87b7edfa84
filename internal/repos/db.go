package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Demo listings so a fresh instance is browsable (idempotent; safe on every start)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

-- Product listings
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  seller_id TEXT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
  seller_name TEXT NOT NULL,
  title TEXT NOT NULL,
  description TEXT,
  category TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  image_url TEXT,
  condition TEXT NOT NULL CHECK (condition IN ('excellent','good','fair','poor')),
  location TEXT,
  status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active','sold','inactive')),
  sold_at TEXT,
  buyer_id TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT,
  CHECK ((status = 'sold') = (sold_at IS NOT NULL AND buyer_id IS NOT NULL))
);
CREATE INDEX IF NOT EXISTS idx_products_seller     ON products(seller_id);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_status     ON products(status);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Cart lines: one row per (user, product); display fields are a snapshot taken at add time
CREATE TABLE IF NOT EXISTS cart_items(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  title TEXT NOT NULL,
  price_at_add NUMERIC NOT NULL,
  image_url TEXT,
  seller_id TEXT NOT NULL,
  seller_name TEXT,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  added_at TEXT NOT NULL,
  updated_at TEXT,
  UNIQUE(user_id, product_id)
);
CREATE INDEX IF NOT EXISTS idx_cart_items_user ON cart_items(user_id);

-- Purchases: one row per checkout attempt, keyed for idempotent retry
CREATE TABLE IF NOT EXISTS purchases(
  id TEXT PRIMARY KEY,
  buyer_id TEXT NOT NULL,
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending'
    CHECK (status IN ('pending','committing','completed','failed_needs_reconciliation','failed')),
  idempotency_key TEXT NOT NULL UNIQUE,
  created_at TEXT NOT NULL,
  completed_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_purchases_buyer ON purchases(buyer_id);

CREATE TABLE IF NOT EXISTS purchase_items(
  purchase_id TEXT NOT NULL REFERENCES purchases(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  title TEXT NOT NULL,
  price NUMERIC NOT NULL,
  qty INTEGER NOT NULL,
  image_url TEXT,
  seller_id TEXT NOT NULL,
  seller_name TEXT,
  PRIMARY KEY (purchase_id, product_id)
);

-- Favorites: membership only
CREATE TABLE IF NOT EXISTS favorites(
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (user_id, product_id)
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM users`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo users and listings")

	hash := func(raw string) string {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return string(h)
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO users(id,email,name,password_hash) VALUES
	  ('u-demo-seller','seller@ecofinds.test','Demo Seller',?),
	  ('u-demo-buyer','buyer@ecofinds.test','Demo Buyer',?)`,
		hash("Passw0rd!"), hash("Passw0rd!"))

	tx.MustExec(`INSERT INTO products
	  (id,seller_id,seller_name,title,description,category,price,image_url,condition,location,status,created_at) VALUES
	  ('p-jacket-001','u-demo-seller','Demo Seller','Vintage Leather Jacket',
	   'A beautiful vintage leather jacket in great condition. Perfect for sustainable fashion lovers.',
	   'Clothing & Fashion',85,'/placeholder.jpg','good','New York, NY','active','2025-01-02T10:00:00Z'),
	  ('p-table-001','u-demo-seller','Demo Seller','Wooden Coffee Table',
	   'Handcrafted wooden coffee table. Solid wood construction with minor wear from use.',
	   'Furniture',120,'/placeholder.jpg','fair','Los Angeles, CA','active','2025-01-02T11:00:00Z'),
	  ('p-books-001','u-demo-seller','Demo Seller','Vintage Books Collection',
	   'Collection of classic literature books from the 1970s. Great for book lovers!',
	   'Books & Media',45,'/placeholder.jpg','good','Chicago, IL','active','2025-01-02T12:00:00Z')`)

	return tx.Commit()
}
