package backend

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/teleshop/client/internal/domain/catalog"
	"github.com/teleshop/client/internal/domain/courier"
	"github.com/teleshop/client/internal/domain/order"
)

// ---------------------------------------------------------------------------
// Catalog wire shapes
// ---------------------------------------------------------------------------

type productDTO struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url"`
}

func (d productDTO) toDomain() catalog.Product {
	return catalog.Product{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Stock:       d.Stock,
		Category:    d.Category,
		ImageURL:    d.ImageURL,
	}
}

// ProductInput is the payload for admin product create/update calls.
type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
}

// ---------------------------------------------------------------------------
// Order wire shapes
// ---------------------------------------------------------------------------

type orderItemDTO struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"imageUrl,omitempty"`
}

type orderDTO struct {
	ID             int64           `json:"id"`
	BuyerID        int64           `json:"buyer_id"`
	BuyerName      string          `json:"buyer_name"`
	BuyerPhone     string          `json:"buyer_phone"`
	Items          []orderItemDTO  `json:"items"`
	Total          decimal.Decimal `json:"total"`
	Status         string          `json:"status"`
	DeliveryStatus string          `json:"delivery_status"`
	Address        order.Address   `json:"address"`
	Notes          string          `json:"notes"`
	CourierID      int64           `json:"courier_id"`
	CreatedAt      time.Time       `json:"created_at"`
}

func (d orderDTO) toDomain() order.Order {
	items := make([]order.Item, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, order.Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			ImageURL:  it.ImageURL,
		})
	}
	return order.Order{
		ID:             d.ID,
		BuyerID:        d.BuyerID,
		BuyerName:      d.BuyerName,
		BuyerPhone:     d.BuyerPhone,
		Items:          items,
		Total:          d.Total,
		Status:         order.Status(d.Status),
		DeliveryStatus: order.DeliveryStatus(d.DeliveryStatus),
		Address:        d.Address,
		Notes:          d.Notes,
		CourierID:      d.CourierID,
		CreatedAt:      d.CreatedAt,
	}
}

func ordersToDomain(dtos []orderDTO) []order.Order {
	orders := make([]order.Order, 0, len(dtos))
	for _, d := range dtos {
		orders = append(orders, d.toDomain())
	}
	return orders
}

// CreateOrderItem is one line of a checkout payload, cart-item shaped.
type CreateOrderItem struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"imageUrl,omitempty"`
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	BuyerID   int64             `json:"buyerId"`
	BuyerName string            `json:"buyerName"`
	Items     []CreateOrderItem `json:"items"`
	Total     decimal.Decimal   `json:"total"`
}

// ---------------------------------------------------------------------------
// Admin wire shapes
// ---------------------------------------------------------------------------

// DashboardStats is the admin console's aggregate view.
type DashboardStats struct {
	TotalOrders     int             `json:"total_orders"`
	PendingOrders   int             `json:"pending_orders"`
	CompletedOrders int             `json:"completed_orders"`
	TotalProducts   int             `json:"total_products"`
	Revenue         decimal.Decimal `json:"revenue"`
}

// ---------------------------------------------------------------------------
// Courier wire shapes
// ---------------------------------------------------------------------------

type loginResponse struct {
	envelope
	Courier courier.Courier `json:"courier"`
	Token   string          `json:"token"`
}

// CourierOrders are the three buckets the courier console renders.
type CourierOrders struct {
	Active    []order.Order
	Today     []order.Order
	Completed []order.Order
}

type courierOrdersDTO struct {
	Active    []orderDTO `json:"active"`
	Today     []orderDTO `json:"today"`
	Completed []orderDTO `json:"completed"`
}

// UpdateDeliveryRequest is the courier status-transition payload. Photo is
// the inline-encoded evidence image, required for delivered.
type UpdateDeliveryRequest struct {
	OrderID   int64                `json:"orderId"`
	CourierID int64                `json:"courierId"`
	Status    order.DeliveryStatus `json:"status"`
	Photo     string               `json:"photo,omitempty"`
	Notes     string               `json:"notes,omitempty"`
}
