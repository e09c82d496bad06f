// Package catalog holds read models for the remote product catalog.
// The client never owns these entities; each fetch replaces the previous
// in-memory snapshot.
package catalog

import "github.com/shopspring/decimal"

// CategoryAll is the reserved category filter sentinel meaning "no filter".
const CategoryAll = "all"

// Product is the client's view of a catalog product.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
}

// HasStock reports whether the requested quantity is covered by the
// last-known stock figure. The figure may be stale; the backend remains the
// source of truth at checkout.
func (p Product) HasStock(quantity int) bool {
	return quantity > 0 && quantity <= p.Stock
}

// FindByID returns the product with the given id from a fetched snapshot.
func FindByID(products []Product, id int64) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// FilterByCategory returns the products matching the category name.
// CategoryAll (or an empty name) returns the input unchanged.
func FilterByCategory(products []Product, category string) []Product {
	if category == "" || category == CategoryAll {
		return products
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}
