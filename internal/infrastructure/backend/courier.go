package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/teleshop/client/internal/domain/courier"
	"github.com/teleshop/client/internal/domain/order"
)

// Login exchanges courier credentials for an identity and a token.
func (c *Client) Login(ctx context.Context, username, password string) (courier.Courier, string, error) {
	payload := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	var resp loginResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/api/courier/login", payload, &resp); err != nil {
		return courier.Courier{}, "", err
	}
	if err := resp.rejection(); err != nil {
		return courier.Courier{}, "", err
	}
	return resp.Courier, resp.Token, nil
}

// CourierOrders fetches the courier's three order buckets.
func (c *Client) CourierOrders(ctx context.Context, courierID int64) (CourierOrders, error) {
	query := url.Values{}
	query.Set("courier_id", strconv.FormatInt(courierID, 10))

	var dto courierOrdersDTO
	if err := c.getJSON(ctx, "/api/courier/orders", query, &dto); err != nil {
		return CourierOrders{}, err
	}
	return CourierOrders{
		Active:    ordersToDomain(dto.Active),
		Today:     ordersToDomain(dto.Today),
		Completed: ordersToDomain(dto.Completed),
	}, nil
}

// CourierOrder fetches a single order by id.
func (c *Client) CourierOrder(ctx context.Context, orderID int64) (order.Order, error) {
	var dto orderDTO
	path := fmt.Sprintf("/api/courier/order/%d", orderID)
	if err := c.getJSON(ctx, path, nil, &dto); err != nil {
		return order.Order{}, err
	}
	return dto.toDomain(), nil
}

// UpdateDeliveryStatus submits a courier-driven delivery transition.
func (c *Client) UpdateDeliveryStatus(ctx context.Context, req UpdateDeliveryRequest) error {
	var resp envelope
	if err := c.sendJSON(ctx, http.MethodPost, "/api/courier/update-status", req, &resp); err != nil {
		return err
	}
	return resp.rejection()
}
