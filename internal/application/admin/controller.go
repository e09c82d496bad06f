// Package admin implements the shop management console controller: the
// dashboard, the product editor, and order status management.
package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/teleshop/client/internal/domain/catalog"
	"github.com/teleshop/client/internal/domain/order"
	"github.com/teleshop/client/internal/infrastructure/backend"
)

// ViewName selects which console tab is active. The background refresher
// only refreshes data for the active tab.
type ViewName string

const (
	ViewDashboard ViewName = "dashboard"
	ViewProducts  ViewName = "products"
	ViewOrders    ViewName = "orders"
)

const (
	noticeLoadFailed   = "Some data could not be loaded. It will refresh automatically."
	noticeWriteFailed  = "The change was not saved. Please try again."
	noticeUploadFailed = "Image upload failed. Please try again."
)

// demoStats seed the dashboard so it renders figures before the first
// successful fetch. They are replaced, never merged, on the first success.
var demoStats = backend.DashboardStats{
	TotalOrders:     156,
	PendingOrders:   8,
	CompletedOrders: 142,
	TotalProducts:   24,
	Revenue:         decimal.NewFromInt(12480),
}

// AdminAPI is the slice of the backend the console needs.
type AdminAPI interface {
	Dashboard(ctx context.Context) (backend.DashboardStats, error)
	AdminProducts(ctx context.Context) ([]catalog.Product, error)
	AdminOrders(ctx context.Context) ([]order.Order, error)
	Categories(ctx context.Context) ([]string, error)
	CreateProduct(ctx context.Context, input backend.ProductInput) error
	UpdateProduct(ctx context.Context, id int64, input backend.ProductInput) error
	DeleteProduct(ctx context.Context, id int64) error
	SetOrderStatus(ctx context.Context, orderID int64, status order.Status) error
	UploadImage(ctx context.Context, filename string, data []byte) (string, error)
}

// ProductForm is the product editor's input shape. Price arrives as text
// exactly as typed; it is parsed after the structural checks pass.
type ProductForm struct {
	Name        string `validate:"required"`
	Description string
	Price       string `validate:"required"`
	Stock       int    `validate:"gte=0"`
	Category    string
	ImageURL    string
}

// state is the console's single mutable snapshot.
type state struct {
	stats      backend.DashboardStats
	statsLive  bool // false until the first successful dashboard fetch
	products   []catalog.Product
	orders     []order.Order
	categories []string

	activeView    ViewName
	pendingDelete int64 // product id awaiting delete confirmation, 0 = none
	formErrors    map[string]string
	notice        string
}

// Controller drives the admin console.
type Controller struct {
	api      AdminAPI
	validate *validator.Validate
	logger   *zap.Logger

	mu    sync.Mutex
	state state
}

// NewController creates an admin controller. The dashboard starts with demo
// figures until the first refresh succeeds.
func NewController(api AdminAPI, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		api:      api,
		validate: validator.New(),
		logger:   logger.Named("admin"),
		state: state{
			stats:      demoStats,
			activeView: ViewDashboard,
		},
	}
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// RefreshAll fetches stats, products, orders, and categories concurrently.
// Each fetch degrades independently: lists fall back to empty, stats keep
// their last-known figures. One failure never blocks the others.
func (c *Controller) RefreshAll(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(4)
	go func() { defer wg.Done(); c.refreshStats(ctx) }()
	go func() { defer wg.Done(); c.refreshProducts(ctx) }()
	go func() { defer wg.Done(); c.refreshOrders(ctx) }()
	go func() { defer wg.Done(); c.refreshCategories(ctx) }()
	wg.Wait()
}

func (c *Controller) refreshStats(ctx context.Context) {
	stats, err := c.api.Dashboard(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Warn("Dashboard stats fetch failed", zap.Error(err))
		c.state.notice = noticeLoadFailed
		return // last-known figures stay on screen
	}
	c.state.stats = stats
	c.state.statsLive = true
}

func (c *Controller) refreshProducts(ctx context.Context) {
	products, err := c.api.AdminProducts(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Warn("Product list fetch failed", zap.Error(err))
		c.state.products = nil
		c.state.notice = noticeLoadFailed
		return
	}
	c.state.products = products
}

func (c *Controller) refreshOrders(ctx context.Context) {
	orders, err := c.api.AdminOrders(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Warn("Order list fetch failed", zap.Error(err))
		c.state.orders = nil
		c.state.notice = noticeLoadFailed
		return
	}
	c.state.orders = orders
}

func (c *Controller) refreshCategories(ctx context.Context) {
	categories, err := c.api.Categories(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Warn("Category fetch failed", zap.Error(err))
		c.state.categories = nil
		c.state.notice = noticeLoadFailed
		return
	}
	c.state.categories = categories
}

// SetActiveView switches the console tab.
func (c *Controller) SetActiveView(view ViewName) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.activeView = view
}

// ViewActive reports whether any console tab is showing; the background
// refresher gates on it.
func (c *Controller) ViewActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.activeView != ""
}

// RefreshTick refreshes the data behind the active tab. It is the periodic
// refresh callback; a hidden console refreshes nothing.
func (c *Controller) RefreshTick(ctx context.Context) {
	c.mu.Lock()
	view := c.state.activeView
	c.mu.Unlock()

	switch view {
	case ViewDashboard:
		c.refreshStats(ctx)
	case ViewProducts:
		c.refreshProducts(ctx)
	case ViewOrders:
		c.refreshOrders(ctx)
	}
}

// ---------------------------------------------------------------------------
// Product writes
// ---------------------------------------------------------------------------

// CreateProduct validates the form and, only when it passes, submits it.
// Validation failures set inline field errors and never reach the network.
// On success the product list and stats are refetched.
func (c *Controller) CreateProduct(ctx context.Context, form ProductForm) error {
	input, err := c.checkForm(form)
	if err != nil {
		return err
	}

	if err := c.api.CreateProduct(ctx, input); err != nil {
		c.fail("Product create failed", err, noticeWriteFailed)
		return err
	}

	c.logger.Info("Product created", zap.String("name", input.Name))
	c.refreshProducts(ctx)
	c.refreshStats(ctx)
	return nil
}

// UpdateProduct validates the form and submits it for an existing product.
func (c *Controller) UpdateProduct(ctx context.Context, id int64, form ProductForm) error {
	input, err := c.checkForm(form)
	if err != nil {
		return err
	}

	if err := c.api.UpdateProduct(ctx, id, input); err != nil {
		c.fail("Product update failed", err, noticeWriteFailed)
		return err
	}

	c.logger.Info("Product updated", zap.Int64("product_id", id))
	c.refreshProducts(ctx)
	return nil
}

// RequestDeleteProduct stages a product deletion pending confirmation.
// Nothing is sent until ConfirmDeleteProduct.
func (c *Controller) RequestDeleteProduct(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.pendingDelete = id
}

// CancelDeleteProduct drops the staged deletion.
func (c *Controller) CancelDeleteProduct() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.pendingDelete = 0
}

// ConfirmDeleteProduct executes the staged deletion. Without a staged id it
// does nothing.
func (c *Controller) ConfirmDeleteProduct(ctx context.Context) error {
	c.mu.Lock()
	id := c.state.pendingDelete
	c.state.pendingDelete = 0
	c.mu.Unlock()
	if id == 0 {
		return nil
	}

	if err := c.api.DeleteProduct(ctx, id); err != nil {
		c.fail("Product delete failed", err, noticeWriteFailed)
		return err
	}

	c.logger.Info("Product deleted", zap.Int64("product_id", id))
	c.refreshProducts(ctx)
	c.refreshStats(ctx)
	return nil
}

// UploadProductImage uploads image bytes and returns the hosted URL for the
// form's image field.
func (c *Controller) UploadProductImage(ctx context.Context, filename string, data []byte) (string, error) {
	url, err := c.api.UploadImage(ctx, filename, data)
	if err != nil {
		c.fail("Image upload failed", err, noticeUploadFailed)
		return "", err
	}
	return url, nil
}

// checkForm runs client-side validation and converts the form into the wire
// input. It returns field-keyed errors recorded in state.
func (c *Controller) checkForm(form ProductForm) (backend.ProductInput, error) {
	fieldErrs := map[string]string{}

	if err := c.validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				switch fe.Field() {
				case "Name":
					fieldErrs["name"] = "Name is required"
				case "Price":
					fieldErrs["price"] = "Price is required"
				case "Stock":
					fieldErrs["stock"] = "Stock cannot be negative"
				}
			}
		}
	}

	var price decimal.Decimal
	if fieldErrs["price"] == "" {
		parsed, err := decimal.NewFromString(form.Price)
		switch {
		case err != nil:
			fieldErrs["price"] = "Price must be a number"
		case parsed.IsNegative():
			fieldErrs["price"] = "Price cannot be negative"
		default:
			price = parsed
		}
	}

	if len(fieldErrs) > 0 {
		c.mu.Lock()
		c.state.formErrors = fieldErrs
		c.mu.Unlock()
		return backend.ProductInput{}, fmt.Errorf("admin: product form is invalid")
	}

	c.mu.Lock()
	c.state.formErrors = nil
	c.mu.Unlock()

	return backend.ProductInput{
		Name:        form.Name,
		Description: form.Description,
		Price:       price,
		Stock:       form.Stock,
		Category:    form.Category,
		ImageURL:    form.ImageURL,
	}, nil
}

// ---------------------------------------------------------------------------
// Order writes
// ---------------------------------------------------------------------------

// SetOrderStatus submits an order status change. Unknown statuses are
// rejected client-side; success refetches orders and stats.
func (c *Controller) SetOrderStatus(ctx context.Context, orderID int64, status order.Status) error {
	if !status.Valid() {
		return fmt.Errorf("admin: unknown order status %q", status)
	}

	if err := c.api.SetOrderStatus(ctx, orderID, status); err != nil {
		c.fail("Order status change failed", err, noticeWriteFailed)
		return err
	}

	c.logger.Info("Order status changed",
		zap.Int64("order_id", orderID),
		zap.String("status", string(status)))
	c.refreshOrders(ctx)
	c.refreshStats(ctx)
	return nil
}

// DismissNotice clears the transient notice.
func (c *Controller) DismissNotice() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.notice = ""
}

func (c *Controller) fail(msg string, err error, fallback string) {
	c.logger.Warn(msg, zap.Error(err))
	c.mu.Lock()
	c.state.notice = backend.UserMessage(err, fallback)
	c.mu.Unlock()
}
