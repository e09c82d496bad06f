package storefront

import (
	"github.com/shopspring/decimal"

	"github.com/teleshop/client/internal/domain/catalog"
)

// View is the full render output for the storefront page.
type View struct {
	Catalog CatalogView
	Cart    CartView
	Detail  *DetailView
	Receipt *ReceiptView
	Notice  string
	Theme   string
}

// CatalogView is the product grid with its category filter bar.
type CatalogView struct {
	Products         []catalog.Product
	Categories       []string
	SelectedCategory string
	Loading          bool
}

// CartView is the cart drawer. Badge is the unit count shown on the cart
// button whether or not the drawer is open.
type CartView struct {
	Open  bool
	Lines []CartLine
	Total string
	Badge int
}

// CartLine is one rendered cart row.
type CartLine struct {
	ProductID int64
	Name      string
	UnitPrice string
	Quantity  int
	LineTotal string
	ImageURL  string
}

// DetailView is the product detail overlay.
type DetailView struct {
	Product catalog.Product
	Price   string
	InStock bool
}

// ReceiptView is the order confirmation overlay.
type ReceiptView struct {
	OrderID int64
	Total   string
}

// Render projects controller state into view models. It never mutates state;
// calling it twice in a row yields equal views.
func (c *Controller) Render() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := View{
		Catalog: CatalogView{
			Products:         c.state.products,
			Categories:       c.state.categories,
			SelectedCategory: c.state.category,
			Loading:          c.state.loading,
		},
		Cart: CartView{
			Open:  c.state.cartOpen,
			Total: formatMoney(c.state.cart.Total()),
			Badge: c.state.cart.ItemCount(),
		},
		Notice: c.state.notice,
		Theme:  c.state.theme,
	}

	for _, it := range c.state.cart.Items {
		view.Cart.Lines = append(view.Cart.Lines, CartLine{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: formatMoney(it.UnitPrice),
			Quantity:  it.Quantity,
			LineTotal: formatMoney(it.LineTotal()),
			ImageURL:  it.ImageURL,
		})
	}

	if c.state.detailID != 0 {
		if p, ok := catalog.FindByID(c.state.products, c.state.detailID); ok {
			view.Detail = &DetailView{
				Product: p,
				Price:   formatMoney(p.Price),
				InStock: p.Stock > 0,
			}
		}
	}

	if c.state.receipt != nil {
		view.Receipt = &ReceiptView{
			OrderID: c.state.receipt.OrderID,
			Total:   formatMoney(c.state.receipt.Total),
		}
	}

	return view
}

func formatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
