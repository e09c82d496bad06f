// Package cart implements the storefront shopping cart as an immutable value
// type. Every operation returns a new Cart; callers persist the result
// explicitly. The cart holds at most one line per product, merging quantities
// on repeated adds.
package cart

import "github.com/shopspring/decimal"

// Item is one cart line.
type Item struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"imageUrl,omitempty"`
}

// LineTotal returns unit price times quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is an ordered collection of items, unique by product id.
type Cart struct {
	Items []Item `json:"items"`
}

// Empty returns a cart with no items.
func Empty() Cart {
	return Cart{}
}

// IsEmpty reports whether the cart has no items.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Find returns the item for productID and whether it exists.
func (c Cart) Find(productID int64) (Item, bool) {
	for _, it := range c.Items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return Item{}, false
}

// Add merges quantity into an existing line for productID, or appends a new
// line preserving insertion order. Quantities below 1 are treated as 1.
func (c Cart) Add(productID int64, name string, unitPrice decimal.Decimal, quantity int, imageURL string) Cart {
	if quantity < 1 {
		quantity = 1
	}

	items := c.cloneItems()
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			return Cart{Items: items}
		}
	}
	items = append(items, Item{
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		ImageURL:  imageURL,
	})
	return Cart{Items: items}
}

// SetQuantity replaces the quantity of the line for productID. A quantity
// below 1 removes the line. Unknown product ids are a no-op.
func (c Cart) SetQuantity(productID int64, quantity int) Cart {
	if quantity < 1 {
		return c.Remove(productID)
	}

	items := c.cloneItems()
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			break
		}
	}
	return Cart{Items: items}
}

// Remove drops the line for productID, preserving the order of the rest.
func (c Cart) Remove(productID int64) Cart {
	items := make([]Item, 0, len(c.Items))
	for _, it := range c.Items {
		if it.ProductID != productID {
			items = append(items, it)
		}
	}
	return Cart{Items: items}
}

// Clear returns an empty cart.
func (c Cart) Clear() Cart {
	return Empty()
}

// Total returns the sum of all line totals.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// ItemCount returns the total unit count across all lines.
func (c Cart) ItemCount() int {
	count := 0
	for _, it := range c.Items {
		count += it.Quantity
	}
	return count
}

// Equals reports whether two carts hold the same lines in the same order.
func (c Cart) Equals(other Cart) bool {
	if len(c.Items) != len(other.Items) {
		return false
	}
	for i, it := range c.Items {
		o := other.Items[i]
		if it.ProductID != o.ProductID ||
			it.Name != o.Name ||
			!it.UnitPrice.Equal(o.UnitPrice) ||
			it.Quantity != o.Quantity ||
			it.ImageURL != o.ImageURL {
			return false
		}
	}
	return true
}

func (c Cart) cloneItems() []Item {
	items := make([]Item, len(c.Items))
	copy(items, c.Items)
	return items
}
