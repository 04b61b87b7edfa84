package services_test

import (
	"errors"
	"testing"

	"ecofinds/internal/repos"
	"ecofinds/internal/services"
)

func newCartService(t *testing.T) (*services.CartService, *repos.ProductRepo) {
	t.Helper()
	db := memdb(t)
	seedProduct(t, db, "prod-a", "seller-1", 10, "2025-01-01T10:00:00Z")
	seedProduct(t, db, "prod-b", "seller-1", 25, "2025-01-01T11:00:00Z")
	prodRepo := repos.NewProductRepo(db)
	return services.NewCartService(repos.NewCartRepo(db), prodRepo), prodRepo
}

func TestAddMergesIntoOneLine(t *testing.T) {
	svc, _ := newCartService(t)

	for i := 0; i < 3; i++ {
		if err := svc.Add("buyer-1", "prod-a"); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	view, err := svc.View("buyer-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("want exactly one line, got %d", len(view.Items))
	}
	if view.Items[0].Qty != 3 {
		t.Fatalf("want qty 3, got %d", view.Items[0].Qty)
	}
	if view.Total != 30 {
		t.Fatalf("want total 30, got %v", view.Total)
	}
}

func TestSetQuantityZeroEqualsRemove(t *testing.T) {
	svc, _ := newCartService(t)

	if err := svc.Add("buyer-1", "prod-a"); err != nil {
		t.Fatal(err)
	}
	if err := svc.SetQuantity("buyer-1", "prod-a", 0); err != nil {
		t.Fatal(err)
	}

	view, err := svc.View("buyer-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("want empty cart, got %d lines", len(view.Items))
	}
}

func TestSetQuantityOverwrites(t *testing.T) {
	svc, _ := newCartService(t)

	if err := svc.Add("buyer-1", "prod-a"); err != nil {
		t.Fatal(err)
	}
	if err := svc.SetQuantity("buyer-1", "prod-a", 5); err != nil {
		t.Fatal(err)
	}

	view, _ := svc.View("buyer-1")
	if view.Items[0].Qty != 5 || view.Total != 50 {
		t.Fatalf("want qty 5 total 50, got qty %d total %v", view.Items[0].Qty, view.Total)
	}
}

func TestRemoveMissingIsNoop(t *testing.T) {
	svc, _ := newCartService(t)

	if err := svc.Add("buyer-1", "prod-a"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Remove("buyer-1", "prod-x"); err != nil {
		t.Fatalf("remove of non-member should not error: %v", err)
	}

	view, _ := svc.View("buyer-1")
	if len(view.Items) != 1 {
		t.Fatalf("cart should be unchanged, got %d lines", len(view.Items))
	}
}

func TestAddOwnListingRejected(t *testing.T) {
	svc, _ := newCartService(t)

	err := svc.Add("seller-1", "prod-a")
	if !errors.Is(err, services.ErrOwnListing) {
		t.Fatalf("want ErrOwnListing, got %v", err)
	}
}

func TestAddMissingProduct(t *testing.T) {
	svc, _ := newCartService(t)

	err := svc.Add("buyer-1", "prod-missing")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSnapshotSurvivesPriceChange(t *testing.T) {
	svc, prodRepo := newCartService(t)

	if err := svc.Add("buyer-1", "prod-a"); err != nil {
		t.Fatal(err)
	}

	newPrice := 99.0
	if err := prodRepo.Update("prod-a", repos.Patch{Price: &newPrice}); err != nil {
		t.Fatal(err)
	}

	view, err := svc.View("buyer-1")
	if err != nil {
		t.Fatal(err)
	}
	line := view.Items[0]
	if line.PriceAtAdd != 10 {
		t.Fatalf("snapshot price must not follow the live edit, got %v", line.PriceAtAdd)
	}
	if !line.PriceChanged {
		t.Fatal("divergence from the live price should be flagged")
	}
	if view.Total != 10 {
		t.Fatalf("total must use the snapshot price, got %v", view.Total)
	}
}
