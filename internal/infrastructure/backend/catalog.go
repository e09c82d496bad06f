package backend

import (
	"context"
	"net/url"

	"github.com/teleshop/client/internal/domain/catalog"
)

// Products fetches the catalog, optionally filtered by category. The
// catalog.CategoryAll sentinel (or an empty string) means no filter.
func (c *Client) Products(ctx context.Context, category string) ([]catalog.Product, error) {
	query := url.Values{}
	if category != "" && category != catalog.CategoryAll {
		query.Set("category", category)
	}

	var dtos []productDTO
	if err := c.getJSON(ctx, "/api/products", query, &dtos); err != nil {
		return nil, err
	}

	products := make([]catalog.Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, d.toDomain())
	}
	return products, nil
}

// Categories fetches the category names.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.getJSON(ctx, "/api/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
