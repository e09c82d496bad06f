package admin

import (
	"github.com/shopspring/decimal"

	"github.com/teleshop/client/internal/domain/catalog"
	"github.com/teleshop/client/internal/domain/order"
)

// View is the full render output for the admin console.
type View struct {
	ActiveView ViewName
	Dashboard  DashboardView
	Products   ProductsView
	Orders     OrdersView
	Notice     string
}

// DashboardView is the stats tab. Live is false while the figures are still
// the pre-fetch placeholders.
type DashboardView struct {
	TotalOrders     int
	PendingOrders   int
	CompletedOrders int
	TotalProducts   int
	Revenue         string
	Live            bool
}

// ProductsView is the product management tab.
type ProductsView struct {
	Products      []ProductRow
	Categories    []string
	FormErrors    map[string]string
	PendingDelete int64 // product id awaiting confirmation, 0 = none
}

// ProductRow is one rendered product line.
type ProductRow struct {
	ID       int64
	Name     string
	Price    string
	Stock    int
	Category string
	ImageURL string
}

// OrdersView is the order management tab.
type OrdersView struct {
	Orders []OrderRow
}

// OrderRow is one rendered order line.
type OrderRow struct {
	ID        int64
	BuyerName string
	Total     string
	Status    order.Status
	Delivery  order.DeliveryStatus
	Address   string
	ItemCount int
}

// StatusChoices are the statuses the console offers on an order row.
var StatusChoices = []order.Status{
	order.StatusPending,
	order.StatusProcessing,
	order.StatusCompleted,
	order.StatusCancelled,
}

// Render projects controller state into view models.
func (c *Controller) Render() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := View{
		ActiveView: c.state.activeView,
		Dashboard: DashboardView{
			TotalOrders:     c.state.stats.TotalOrders,
			PendingOrders:   c.state.stats.PendingOrders,
			CompletedOrders: c.state.stats.CompletedOrders,
			TotalProducts:   c.state.stats.TotalProducts,
			Revenue:         formatMoney(c.state.stats.Revenue),
			Live:            c.state.statsLive,
		},
		Products: ProductsView{
			Categories:    c.state.categories,
			FormErrors:    c.state.formErrors,
			PendingDelete: c.state.pendingDelete,
		},
		Notice: c.state.notice,
	}

	for _, p := range c.state.products {
		view.Products.Products = append(view.Products.Products, productRow(p))
	}
	for _, o := range c.state.orders {
		view.Orders.Orders = append(view.Orders.Orders, orderRow(o))
	}
	return view
}

func productRow(p catalog.Product) ProductRow {
	return ProductRow{
		ID:       p.ID,
		Name:     p.Name,
		Price:    formatMoney(p.Price),
		Stock:    p.Stock,
		Category: p.Category,
		ImageURL: p.ImageURL,
	}
}

func orderRow(o order.Order) OrderRow {
	count := 0
	for _, it := range o.Items {
		count += it.Quantity
	}
	return OrderRow{
		ID:        o.ID,
		BuyerName: o.BuyerName,
		Total:     formatMoney(o.Total),
		Status:    o.Status,
		Delivery:  o.DeliveryStatus,
		Address:   o.Address.Display(),
		ItemCount: count,
	}
}

func formatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
