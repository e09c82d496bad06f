package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a single line of a remote order.
type Item struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"imageUrl,omitempty"`
}

// Order is the client's view of a backend order. It is fetched, displayed
// and patched via the REST API; the client never mutates it locally.
type Order struct {
	ID             int64
	BuyerID        int64
	BuyerName      string
	BuyerPhone     string
	Items          []Item
	Total          decimal.Decimal
	Status         Status
	DeliveryStatus DeliveryStatus
	Address        Address
	Notes          string
	CourierID      int64
	CreatedAt      time.Time
}

// Receipt is what the storefront surfaces after a successful checkout.
type Receipt struct {
	OrderID int64
	Total   decimal.Decimal
}
