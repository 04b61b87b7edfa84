package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"

	"ecofinds/internal/domain"
	"ecofinds/internal/repos"
	"ecofinds/internal/services"
)

func newCatalog(t *testing.T) (*sqlx.DB, *services.CatalogService) {
	t.Helper()
	db := memdb(t)
	svc := services.NewCatalogService(repos.NewProductRepo(db))

	db.MustExec(`INSERT INTO products(id, seller_id, seller_name, title, description, category,
	  price, condition, status, sold_at, buyer_id, created_at) VALUES
	  ('p-jacket','s1','Ana','Vintage Leather Jacket','Classic biker jacket','Clothing & Fashion',85,'good','active',NULL,NULL,'2025-01-01T10:00:00Z'),
	  ('p-table','s1','Ana','Wooden Coffee Table','Solid oak, minor wear','Furniture',120,'fair','active',NULL,NULL,'2025-01-01T11:00:00Z'),
	  ('p-lamp','s2','Ben','Desk Lamp','Vintage brass lamp','Home & Garden',30,'excellent','inactive',NULL,NULL,'2025-01-01T12:00:00Z'),
	  ('p-radio','s2','Ben','Tube Radio','Working vintage radio','Electronics',200,'fair','sold','2025-01-02T09:00:00Z','b1','2025-01-01T13:00:00Z')`)
	return db, svc
}

func TestListActiveFiltersAndOrders(t *testing.T) {
	_, svc := newCatalog(t)

	out, err := svc.ListActive(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("want 2 active listings, got %d", len(out))
	}
	if out[0].ID != "p-table" || out[1].ID != "p-jacket" {
		t.Fatalf("want newest first, got %s, %s", out[0].ID, out[1].ID)
	}
}

func TestSearchSubstringCaseInsensitive(t *testing.T) {
	_, svc := newCatalog(t)

	out, err := svc.Search("LEATHER", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID != "p-jacket" {
		t.Fatalf("want p-jacket only, got %+v", out)
	}

	// description matches too
	out, _ = svc.Search("oak", 0)
	if len(out) != 1 || out[0].ID != "p-table" {
		t.Fatalf("want p-table via description, got %+v", out)
	}

	// sold/inactive never match even when the text does
	out, _ = svc.Search("vintage", 0)
	for _, p := range out {
		if p.Status != domain.StatusActive {
			t.Fatalf("non-active listing in results: %s (%s)", p.ID, p.Status)
		}
	}
}

func TestSearchEmptyTermReturnsAllActive(t *testing.T) {
	_, svc := newCatalog(t)

	all, _ := svc.ListActive(0)
	out, err := svc.Search("   ", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(all) {
		t.Fatalf("empty term must return all active: want %d, got %d", len(all), len(out))
	}
}

func TestGetAbsentIsExplicit(t *testing.T) {
	_, svc := newCatalog(t)

	_, found, err := svc.Get("p-missing")
	if err != nil {
		t.Fatalf("absence must not be an error: %v", err)
	}
	if found {
		t.Fatal("missing id reported as found")
	}
}

func TestUpdateOwnershipAndSoldFreeze(t *testing.T) {
	_, svc := newCatalog(t)

	title := "New Title"
	if err := svc.Update("s2", "p-jacket", repos.Patch{Title: &title}); !errors.Is(err, services.ErrNotOwner) {
		t.Fatalf("want ErrNotOwner, got %v", err)
	}
	if err := svc.Update("s2", "p-radio", repos.Patch{Title: &title}); !errors.Is(err, services.ErrProductSold) {
		t.Fatalf("want ErrProductSold, got %v", err)
	}
	if err := svc.Update("s1", "p-missing", repos.Patch{Title: &title}); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	if err := svc.Update("s1", "p-jacket", repos.Patch{Title: &title}); err != nil {
		t.Fatal(err)
	}
	p, _, _ := svc.Get("p-jacket")
	if p.Title != "New Title" {
		t.Fatalf("patch not applied: %q", p.Title)
	}
	if p.UpdatedAt == "" {
		t.Fatal("updated_at not stamped")
	}
}

func TestDeleteOnlyBySeller(t *testing.T) {
	_, svc := newCatalog(t)

	if err := svc.Delete("s2", "p-jacket"); !errors.Is(err, services.ErrNotOwner) {
		t.Fatalf("want ErrNotOwner, got %v", err)
	}
	if err := svc.Delete("s1", "p-jacket"); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := svc.Get("p-jacket"); found {
		t.Fatal("listing still present after delete")
	}
}

func TestListBySellerIncludesAllStatuses(t *testing.T) {
	_, svc := newCatalog(t)

	out, err := svc.ListBySeller("s2")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("seller dashboard should include sold and inactive, got %d", len(out))
	}
}
