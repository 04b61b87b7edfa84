package domain

type ProductStatus string

const (
	StatusActive   ProductStatus = "active"
	StatusSold     ProductStatus = "sold"
	StatusInactive ProductStatus = "inactive"
)

// Categories is the fixed set of listing categories.
var Categories = []string{
	"Electronics",
	"Clothing & Fashion",
	"Home & Garden",
	"Books & Media",
	"Sports & Outdoors",
	"Toys & Games",
	"Furniture",
	"Art & Collectibles",
	"Automotive",
	"Other",
}

type Product struct {
	ID          string        `db:"id" json:"id"`
	SellerID    string        `db:"seller_id" json:"sellerId"`
	SellerName  string        `db:"seller_name" json:"sellerName"`
	Title       string        `db:"title" json:"title"`
	Description string        `db:"description" json:"description"`
	Category    string        `db:"category" json:"category"`
	Price       float64       `db:"price" json:"price"`
	ImageURL    string        `db:"image_url" json:"imageUrl"`
	Condition   string        `db:"condition" json:"condition"` // excellent | good | fair | poor
	Location    string        `db:"location" json:"location,omitempty"`
	Status      ProductStatus `db:"status" json:"status"`
	SoldAt      string        `db:"sold_at" json:"soldAt,omitempty"`
	BuyerID     string        `db:"buyer_id" json:"buyerId,omitempty"`
	CreatedAt   string        `db:"created_at" json:"createdAt"`
	UpdatedAt   string        `db:"updated_at" json:"updatedAt,omitempty"`
}

// SaleInfo carries the fields that only exist once a product is sold.
type SaleInfo struct {
	SoldAt  string `json:"soldAt"`
	BuyerID string `json:"buyerId"`
}

// Sale returns the sale record; present only when the product is sold.
func (p Product) Sale() (SaleInfo, bool) {
	if p.Status != StatusSold {
		return SaleInfo{}, false
	}
	return SaleInfo{SoldAt: p.SoldAt, BuyerID: p.BuyerID}, true
}

type PurchaseStatus string

const (
	PurchasePending      PurchaseStatus = "pending"
	PurchaseCommitting   PurchaseStatus = "committing"
	PurchaseCompleted    PurchaseStatus = "completed"
	PurchaseNeedsRecheck PurchaseStatus = "failed_needs_reconciliation"
	PurchaseFailed       PurchaseStatus = "failed"
)

type Purchase struct {
	ID             string         `db:"id" json:"id"`
	BuyerID        string         `db:"buyer_id" json:"buyerId"`
	Total          float64        `db:"total" json:"totalAmount"`
	Status         PurchaseStatus `db:"status" json:"status"`
	IdempotencyKey string         `db:"idempotency_key" json:"-"`
	CreatedAt      string         `db:"created_at" json:"createdAt"`
	CompletedAt    string         `db:"completed_at" json:"completedAt,omitempty"`
	Items          []PurchaseItem `json:"items"`
}

// PurchaseItem is the immutable line snapshot copied from the cart at checkout.
type PurchaseItem struct {
	PurchaseID string  `db:"purchase_id" json:"-"`
	ProductID  string  `db:"product_id" json:"productId"`
	Title      string  `db:"title" json:"title"`
	Price      float64 `db:"price" json:"price"`
	Quantity   int     `db:"qty" json:"quantity"`
	ImageURL   string  `db:"image_url" json:"imageUrl"`
	SellerID   string  `db:"seller_id" json:"sellerId"`
	SellerName string  `db:"seller_name" json:"sellerName"`
}
