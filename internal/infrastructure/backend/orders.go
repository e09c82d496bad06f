package backend

import (
	"context"
	"net/http"

	"github.com/teleshop/client/internal/domain/order"
)

// CreateOrder submits a checkout payload and returns the receipt.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (order.Receipt, error) {
	var resp struct {
		envelope
		OrderID int64 `json:"orderId"`
	}
	if err := c.sendJSON(ctx, http.MethodPost, "/api/create-order", req, &resp); err != nil {
		return order.Receipt{}, err
	}
	if err := resp.rejection(); err != nil {
		return order.Receipt{}, err
	}
	return order.Receipt{OrderID: resp.OrderID, Total: req.Total}, nil
}
