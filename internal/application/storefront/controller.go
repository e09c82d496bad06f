// Package storefront implements the buyer-facing shop controller: catalog
// browsing, product detail, the cart drawer, and checkout. State changes flow
// one way: an operation mutates controller state, Render projects the state
// into view models.
package storefront

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/teleshop/client/internal/domain/cart"
	"github.com/teleshop/client/internal/domain/catalog"
	"github.com/teleshop/client/internal/domain/order"
	"github.com/teleshop/client/internal/infrastructure/backend"
	"github.com/teleshop/client/internal/infrastructure/host"
	"github.com/teleshop/client/internal/infrastructure/localstore"
)

// User-facing fallback messages for failed backend calls. Server-provided
// error text, when present, takes precedence.
const (
	noticeCatalogUnavailable = "Could not load products. Pull to refresh."
	noticeCheckoutFailed     = "Could not place the order. Please try again."
	noticeCartEmpty          = "Your cart is empty."
	noticeOutOfStock         = "Not enough items in stock."
)

const defaultTheme = "light"

// CatalogAPI is the slice of the backend the storefront needs.
type CatalogAPI interface {
	Products(ctx context.Context, category string) ([]catalog.Product, error)
	Categories(ctx context.Context) ([]string, error)
	CreateOrder(ctx context.Context, req backend.CreateOrderRequest) (order.Receipt, error)
}

// state is the single mutable snapshot behind the storefront page.
type state struct {
	products   []catalog.Product
	categories []string
	category   string

	cart     cart.Cart
	cartOpen bool
	detailID int64 // 0 = no detail overlay
	receipt  *order.Receipt
	notice   string
	theme    string
	loading  bool
}

// Controller drives the storefront page.
type Controller struct {
	api    CatalogAPI
	carts  *localstore.CartStore
	prefs  *localstore.PrefsStore
	host   host.Host
	logger *zap.Logger

	mu    sync.Mutex
	state state

	// productSeq orders catalog fetches; a completion whose sequence number
	// is no longer current is discarded.
	productSeq uint64
}

// NewController creates a storefront controller.
func NewController(api CatalogAPI, carts *localstore.CartStore, prefs *localstore.PrefsStore, h host.Host, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		api:    api,
		carts:  carts,
		prefs:  prefs,
		host:   h,
		logger: logger.Named("storefront"),
		state: state{
			category: catalog.CategoryAll,
			theme:    defaultTheme,
		},
	}
}

// Start restores persisted state, configures the host shell, and issues the
// initial catalog fetch. Fetch failures degrade to an empty catalog with a
// dismissible notice; Start itself never fails.
func (c *Controller) Start(ctx context.Context) {
	restoredCart := c.carts.Load(ctx)
	theme := c.prefs.Theme(ctx, defaultTheme)

	c.mu.Lock()
	c.state.cart = restoredCart
	c.state.theme = theme
	c.mu.Unlock()

	c.host.Expand()
	c.host.EnableClosingConfirmation()
	c.applyTheme(theme)
	c.host.ShowBackButton(func() { c.CloseTopOverlay() })

	c.FetchCategories(ctx)
	c.FetchProducts(ctx, catalog.CategoryAll)
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

// FetchProducts loads the catalog for a category. A stale completion, one
// superseded by a later fetch, is dropped so the list can never go backwards.
func (c *Controller) FetchProducts(ctx context.Context, category string) {
	c.mu.Lock()
	c.productSeq++
	seq := c.productSeq
	c.state.category = category
	c.state.loading = true
	c.mu.Unlock()

	products, err := c.api.Products(ctx, category)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.productSeq {
		c.logger.Debug("Discarding stale catalog fetch",
			zap.Uint64("seq", seq),
			zap.String("category", category))
		return
	}
	c.state.loading = false
	if err != nil {
		c.logger.Warn("Catalog fetch failed", zap.String("category", category), zap.Error(err))
		c.state.products = nil
		c.state.notice = noticeCatalogUnavailable
		return
	}
	// The backend filters server-side; the filter is re-applied locally so a
	// backend that ignores the parameter cannot leak other categories.
	c.state.products = catalog.FilterByCategory(products, category)
}

// FetchCategories loads the category list. Like the product fetch, failure
// degrades to an empty list with a dismissible notice; the catalog itself is
// never blocked on categories.
func (c *Controller) FetchCategories(ctx context.Context) {
	categories, err := c.api.Categories(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Warn("Category fetch failed", zap.Error(err))
		c.state.categories = nil
		c.state.notice = noticeCatalogUnavailable
		return
	}
	c.state.categories = categories
}

// SelectCategory switches the category filter and refetches. The
// catalog.CategoryAll sentinel clears the filter.
func (c *Controller) SelectCategory(ctx context.Context, category string) {
	c.FetchProducts(ctx, category)
}

// OpenDetail opens the product detail overlay from the last fetched list.
// A product id missing from the snapshot is a silent no-op; the list the
// user tapped on is already gone.
func (c *Controller) OpenDetail(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := catalog.FindByID(c.state.products, productID); !ok {
		return
	}
	c.state.detailID = productID
}

// CloseDetail dismisses the product detail overlay.
func (c *Controller) CloseDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.detailID = 0
}

// AddToCartFromDetail adds the open detail product to the cart. Quantities
// above the last-known stock are rejected with a notice and no cart change.
func (c *Controller) AddToCartFromDetail(ctx context.Context, quantity int) {
	c.mu.Lock()
	product, ok := catalog.FindByID(c.state.products, c.state.detailID)
	if !ok {
		c.mu.Unlock()
		return
	}
	if !product.HasStock(quantity) {
		c.state.notice = noticeOutOfStock
		c.mu.Unlock()
		return
	}
	c.state.cart = c.state.cart.Add(product.ID, product.Name, product.Price, quantity, product.ImageURL)
	c.state.detailID = 0
	updated := c.state.cart
	c.mu.Unlock()

	c.carts.Save(ctx, updated)
}

// ---------------------------------------------------------------------------
// Cart drawer
// ---------------------------------------------------------------------------

// OpenCart opens the cart drawer.
func (c *Controller) OpenCart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.cartOpen = true
}

// CloseCart closes the cart drawer.
func (c *Controller) CloseCart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.cartOpen = false
}

// ToggleCart flips the cart drawer.
func (c *Controller) ToggleCart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.cartOpen = !c.state.cartOpen
}

// ChangeQuantity adjusts a cart line by delta. Reaching zero removes the
// line. The result is persisted immediately.
func (c *Controller) ChangeQuantity(ctx context.Context, productID int64, delta int) {
	c.mu.Lock()
	item, ok := c.state.cart.Find(productID)
	if !ok {
		c.mu.Unlock()
		return
	}
	c.state.cart = c.state.cart.SetQuantity(productID, item.Quantity+delta)
	updated := c.state.cart
	c.mu.Unlock()

	c.carts.Save(ctx, updated)
}

// RemoveFromCart drops a cart line and persists the result.
func (c *Controller) RemoveFromCart(ctx context.Context, productID int64) {
	c.mu.Lock()
	c.state.cart = c.state.cart.Remove(productID)
	updated := c.state.cart
	c.mu.Unlock()

	c.carts.Save(ctx, updated)
}

// Checkout submits the cart as an order. An empty cart is rejected before
// any network call. On success the cart is cleared and persisted and the
// receipt surfaced; on failure the cart stays exactly as it was and the user
// retries manually.
func (c *Controller) Checkout(ctx context.Context) {
	c.mu.Lock()
	current := c.state.cart
	if current.IsEmpty() {
		c.state.notice = noticeCartEmpty
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	buyerID := int64(0)
	buyerName := "Guest"
	if user, ok := c.host.Identity(); ok {
		buyerID = user.ID
		buyerName = user.Name
	}

	items := make([]backend.CreateOrderItem, 0, len(current.Items))
	for _, it := range current.Items {
		items = append(items, backend.CreateOrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			ImageURL:  it.ImageURL,
		})
	}
	req := backend.CreateOrderRequest{
		BuyerID:   buyerID,
		BuyerName: buyerName,
		Items:     items,
		Total:     current.Total(),
	}

	receipt, err := c.api.CreateOrder(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Warn("Checkout failed", zap.Int64("buyer_id", buyerID), zap.Error(err))
		c.state.notice = backend.UserMessage(err, noticeCheckoutFailed)
		return
	}

	c.logger.Info("Order placed",
		zap.Int64("order_id", receipt.OrderID),
		zap.String("total", receipt.Total.String()))
	c.state.cart = cart.Empty()
	c.state.cartOpen = false
	c.state.receipt = &receipt
	c.carts.Save(ctx, c.state.cart)
}

// ---------------------------------------------------------------------------
// Overlays and chrome
// ---------------------------------------------------------------------------

// CloseTopOverlay dismisses the topmost open overlay: the order receipt, the
// product detail, then the cart drawer. With nothing open it does nothing.
// The host back button calls this and may fire at any time, so it must stay
// idempotent.
func (c *Controller) CloseTopOverlay() {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.state.receipt != nil:
		c.state.receipt = nil
	case c.state.detailID != 0:
		c.state.detailID = 0
	case c.state.cartOpen:
		c.state.cartOpen = false
	}
}

// DismissNotice clears the transient notice.
func (c *Controller) DismissNotice() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.notice = ""
}

// DismissReceipt clears the order confirmation overlay.
func (c *Controller) DismissReceipt() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.receipt = nil
}

// SetTheme switches and persists the UI theme.
func (c *Controller) SetTheme(ctx context.Context, theme string) {
	c.mu.Lock()
	c.state.theme = theme
	c.mu.Unlock()

	c.applyTheme(theme)
	c.prefs.SaveTheme(ctx, theme)
}

func (c *Controller) applyTheme(theme string) {
	if theme == "dark" {
		c.host.SetHeaderColor("#1c1c1e")
		c.host.SetBackgroundColor("#1c1c1e")
		return
	}
	c.host.SetHeaderColor("#ffffff")
	c.host.SetBackgroundColor("#ffffff")
}

// Cart returns the current cart value, for callers that persist or inspect
// it outside a render pass.
func (c *Controller) Cart() cart.Cart {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.cart
}
