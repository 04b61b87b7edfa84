package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"ecofinds/internal/domain"
	"ecofinds/internal/repos"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	schema := `
	CREATE TABLE users(id TEXT PRIMARY KEY, email TEXT UNIQUE, name TEXT,
	  password_hash TEXT, created_at TEXT, updated_at TEXT);
	CREATE TABLE products(id TEXT PRIMARY KEY, seller_id TEXT, seller_name TEXT,
	  title TEXT, description TEXT, category TEXT, price NUMERIC,
	  image_url TEXT, condition TEXT, location TEXT,
	  status TEXT NOT NULL DEFAULT 'active', sold_at TEXT, buyer_id TEXT,
	  created_at TEXT, updated_at TEXT,
	  CHECK ((status = 'sold') = (sold_at IS NOT NULL AND buyer_id IS NOT NULL)));
	CREATE TABLE cart_items(id TEXT PRIMARY KEY, user_id TEXT, product_id TEXT,
	  title TEXT, price_at_add NUMERIC, image_url TEXT, seller_id TEXT, seller_name TEXT,
	  qty INTEGER NOT NULL CHECK (qty >= 1), added_at TEXT, updated_at TEXT,
	  UNIQUE(user_id, product_id));
	CREATE TABLE purchases(id TEXT PRIMARY KEY, buyer_id TEXT, total NUMERIC,
	  status TEXT NOT NULL DEFAULT 'pending', idempotency_key TEXT NOT NULL UNIQUE,
	  created_at TEXT, completed_at TEXT);
	CREATE TABLE purchase_items(purchase_id TEXT, product_id TEXT, title TEXT,
	  price NUMERIC, qty INTEGER, image_url TEXT, seller_id TEXT, seller_name TEXT,
	  PRIMARY KEY(purchase_id, product_id));
	CREATE TABLE favorites(user_id TEXT, product_id TEXT, created_at TEXT,
	  PRIMARY KEY(user_id, product_id));
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func seedProduct(t *testing.T, db *sqlx.DB, id, sellerID string, price float64, createdAt string) {
	t.Helper()
	_, err := db.Exec(`
	  INSERT INTO products(id, seller_id, seller_name, title, description, category,
	    price, image_url, condition, status, created_at)
	  VALUES (?,?,?,?,?,?,?,?,?,?,?)
	`, id, sellerID, "Seller "+sellerID, "Listing "+id, "Description of "+id,
		"Other", price, "/placeholder.jpg", "good", domain.StatusActive, createdAt)
	if err != nil {
		t.Fatal(err)
	}
}

func getProduct(t *testing.T, db *sqlx.DB, id string) domain.Product {
	t.Helper()
	p, err := repos.NewProductRepo(db).Get(id)
	if err != nil {
		t.Fatalf("get product %s: %v", id, err)
	}
	return p
}
