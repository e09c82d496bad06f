package backend

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/teleshop/client/internal/domain/catalog"
	"github.com/teleshop/client/internal/domain/order"
)

// Dashboard fetches the admin aggregate stats.
func (c *Client) Dashboard(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	if err := c.getJSON(ctx, "/api/admin/dashboard", nil, &stats); err != nil {
		return DashboardStats{}, err
	}
	return stats, nil
}

// AdminProducts fetches the full product list, including out-of-stock items
// hidden from the storefront.
func (c *Client) AdminProducts(ctx context.Context) ([]catalog.Product, error) {
	var dtos []productDTO
	if err := c.getJSON(ctx, "/api/admin/products", nil, &dtos); err != nil {
		return nil, err
	}
	products := make([]catalog.Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, d.toDomain())
	}
	return products, nil
}

// AdminOrders fetches all orders.
func (c *Client) AdminOrders(ctx context.Context) ([]order.Order, error) {
	var dtos []orderDTO
	if err := c.getJSON(ctx, "/api/admin/orders", nil, &dtos); err != nil {
		return nil, err
	}
	return ordersToDomain(dtos), nil
}

// CreateProduct creates a product.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) error {
	var resp envelope
	if err := c.sendJSON(ctx, http.MethodPost, "/api/admin/products", input, &resp); err != nil {
		return err
	}
	return resp.rejection()
}

// UpdateProduct updates the product with the given id.
func (c *Client) UpdateProduct(ctx context.Context, id int64, input ProductInput) error {
	var resp envelope
	path := "/api/admin/products?id=" + strconv.FormatInt(id, 10)
	if err := c.sendJSON(ctx, http.MethodPut, path, input, &resp); err != nil {
		return err
	}
	return resp.rejection()
}

// DeleteProduct deletes the product with the given id.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	var resp envelope
	path := "/api/admin/products?id=" + strconv.FormatInt(id, 10)
	if err := c.sendJSON(ctx, http.MethodDelete, path, nil, &resp); err != nil {
		return err
	}
	return resp.rejection()
}

// SetOrderStatus updates an order's commerce status.
func (c *Client) SetOrderStatus(ctx context.Context, orderID int64, status order.Status) error {
	payload := struct {
		Status order.Status `json:"status"`
	}{Status: status}

	var resp envelope
	path := fmt.Sprintf("/api/admin/orders/%d/status", orderID)
	if err := c.sendJSON(ctx, http.MethodPut, path, payload, &resp); err != nil {
		return err
	}
	return resp.rejection()
}

// UploadImage uploads a product image through the backend's multipart
// endpoint and returns the hosted URL.
func (c *Client) UploadImage(ctx context.Context, filename string, data []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("backend: failed to build multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("backend: failed to write multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("backend: failed to finalize multipart body: %w", err)
	}

	respBody, err := c.doRequest(ctx, http.MethodPost, "/api/admin/upload-image", url.Values{}, writer.FormDataContentType(), &buf)
	if err != nil {
		return "", err
	}

	var resp struct {
		envelope
		URL string `json:"url"`
	}
	if err := decodeJSON(respBody, &resp); err != nil {
		return "", err
	}
	if err := resp.rejection(); err != nil {
		return "", err
	}
	return resp.URL, nil
}
