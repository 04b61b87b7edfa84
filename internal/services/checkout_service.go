package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ecofinds/internal/cache"
	"ecofinds/internal/domain"
	"ecofinds/internal/repos"
)

// CheckoutService converts a cart into an immutable purchase and flips each
// purchased product to sold. The multi-step transition is modeled as a
// persisted state machine (pending -> committing -> completed, or
// failed_needs_reconciliation when a product write loses) so a crashed or
// retried attempt can neither double-charge nor double-sell.
type CheckoutService struct {
	Carts     *repos.CartRepo
	Prods     *repos.ProductRepo
	Purchases *repos.PurchaseRepo
	Guard     *cache.IdempotencyGuard // optional redis fast path; nil is fine
}

func NewCheckoutService(carts *repos.CartRepo, prods *repos.ProductRepo, purchases *repos.PurchaseRepo, guard *cache.IdempotencyGuard) *CheckoutService {
	return &CheckoutService{Carts: carts, Prods: prods, Purchases: purchases, Guard: guard}
}

// Checkout runs one purchase attempt for the user's current cart.
//
// The idempotency key identifies the attempt: retrying with the same key
// returns ErrDuplicateAttempt along with the id of the original purchase.
// An empty key gets a generated one (single-shot attempt).
func (s *CheckoutService) Checkout(ctx context.Context, userID, idemKey string) (string, error) {
	if idemKey == "" {
		idemKey = uuid.NewString()
	}

	if s.Guard != nil {
		ok, err := s.Guard.Begin(ctx, userID, idemKey)
		if err == nil && !ok {
			// fast path; the persisted attempt below is authoritative
			if existing, found, _ := s.Purchases.ByIdempotencyKey(idemKey); found {
				return existing.ID, ErrDuplicateAttempt
			}
			return "", ErrDuplicateAttempt
		}
	}

	// A retried attempt must resolve to the original purchase, even after the
	// cart was cleared by the first run.
	if existing, found, err := s.Purchases.ByIdempotencyKey(idemKey); err != nil {
		s.release(ctx, userID, idemKey)
		return "", err
	} else if found {
		return existing.ID, ErrDuplicateAttempt
	}

	items, err := s.Carts.Items(userID)
	if err != nil {
		s.release(ctx, userID, idemKey)
		return "", err
	}
	if len(items) == 0 {
		s.release(ctx, userID, idemKey)
		return "", ErrEmptyCart
	}

	// Totals use the snapshotted add-time prices: a price change mid-cart
	// never alters what the buyer agreed to pay.
	var total float64
	purchaseItems := make([]domain.PurchaseItem, 0, len(items))
	for _, it := range items {
		if it.SellerID == userID {
			s.release(ctx, userID, idemKey)
			return "", ErrOwnListing
		}
		total += it.PriceAtAdd * float64(it.Qty)
		purchaseItems = append(purchaseItems, domain.PurchaseItem{
			ProductID:  it.ProductID,
			Title:      it.Title,
			Price:      it.PriceAtAdd,
			Quantity:   it.Qty,
			ImageURL:   it.ImageURL,
			SellerID:   it.SellerID,
			SellerName: it.SellerName,
		})
	}

	p := domain.Purchase{
		ID:             uuid.NewString(),
		BuyerID:        userID,
		Total:          total,
		Status:         domain.PurchasePending,
		IdempotencyKey: idemKey,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
		Items:          purchaseItems,
	}
	if err := s.Purchases.Create(p); err != nil {
		if existing, found, _ := s.Purchases.ByIdempotencyKey(idemKey); found {
			return existing.ID, ErrDuplicateAttempt
		}
		s.release(ctx, userID, idemKey)
		return "", err
	}

	// From here the attempt is persisted; never release the key.
	if err := s.Purchases.SetStatus(p.ID, domain.PurchaseCommitting); err != nil {
		return "", err
	}

	for _, it := range purchaseItems {
		ok, err := s.Prods.MarkSold(it.ProductID, userID)
		if err != nil {
			_ = s.Purchases.SetStatus(p.ID, domain.PurchaseNeedsRecheck)
			return "", err
		}
		if !ok {
			// Lost the race (or the seller pulled the listing). Any products
			// this attempt already flipped are reverted by Reconcile.
			_ = s.Purchases.SetStatus(p.ID, domain.PurchaseNeedsRecheck)
			return "", fmt.Errorf("%w: %s", ErrProductUnavailable, it.ProductID)
		}
	}

	if err := s.Purchases.Complete(p.ID); err != nil {
		return "", err
	}

	// The purchase stands even if the clear fails; retrying Clear is safe.
	_ = s.Carts.Clear(userID)

	return p.ID, nil
}

func (s *CheckoutService) release(ctx context.Context, userID, idemKey string) {
	if s.Guard != nil {
		_ = s.Guard.Release(ctx, userID, idemKey)
	}
}

// Reconcile compensates a failed attempt: every product the attempt marked
// sold is restored to active, then the attempt becomes terminal-failed.
// Completed purchases are never reconciled.
func (s *CheckoutService) Reconcile(purchaseID string) error {
	p, err := s.Purchases.Get(purchaseID)
	if err != nil {
		return err
	}
	if p.Status != domain.PurchaseNeedsRecheck {
		return ErrNotReconcilable
	}
	for _, it := range p.Items {
		// RevertSold matches on the buyer, so a later sale of the same
		// product to someone else is untouched.
		if _, err := s.Prods.RevertSold(it.ProductID, p.BuyerID); err != nil {
			return err
		}
	}
	return s.Purchases.SetStatus(p.ID, domain.PurchaseFailed)
}

func (s *CheckoutService) ListPurchases(userID string) ([]domain.Purchase, error) {
	return s.Purchases.ListByBuyer(userID)
}

func (s *CheckoutService) Get(purchaseID string) (domain.Purchase, error) {
	return s.Purchases.Get(purchaseID)
}
