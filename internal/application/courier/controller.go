// Package courier implements the delivery console controller: login session
// management and the assigned → picked_up → delivered lifecycle, with a
// cancelled side-exit while still assigned.
package courier

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "github.com/teleshop/client/internal/domain/courier"
	"github.com/teleshop/client/internal/domain/order"
	"github.com/teleshop/client/internal/infrastructure/backend"
	"github.com/teleshop/client/internal/infrastructure/localstore"
)

const (
	noticeLoginFailed   = "Login failed. Check your credentials."
	noticeOrdersFailed  = "Could not load orders. Pull to refresh."
	noticeUpdateFailed  = "Could not update the delivery. Please try again."
	noticePhotoRequired = "A delivery photo is required."
)

// CourierAPI is the slice of the backend the console needs.
type CourierAPI interface {
	Login(ctx context.Context, username, password string) (domain.Courier, string, error)
	CourierOrders(ctx context.Context, courierID int64) (backend.CourierOrders, error)
	CourierOrder(ctx context.Context, orderID int64) (order.Order, error)
	UpdateDeliveryStatus(ctx context.Context, req backend.UpdateDeliveryRequest) error
}

// loginForm carries the credential fields through validation.
type loginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// state is the console's single mutable snapshot.
type state struct {
	session  domain.Session
	loggedIn bool

	orders backend.CourierOrders
	detail *order.Order

	photo      *Photo
	photoError string

	pendingPickup int64 // order id awaiting pickup confirmation, 0 = none
	pendingLogout bool
	loginError    string
	notice        string
}

// Controller drives the courier console.
type Controller struct {
	api      CourierAPI
	sessions *localstore.SessionStore
	validate *validator.Validate
	logger   *zap.Logger

	sessionTTL time.Duration
	now        func() time.Time

	mu    sync.Mutex
	state state
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// NewController creates a courier controller. sessionTTL is the fallback
// session lifetime used when the login token carries no expiry of its own.
func NewController(api CourierAPI, sessions *localstore.SessionStore, sessionTTL time.Duration, logger *zap.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		api:        api,
		sessions:   sessions,
		validate:   validator.New(),
		logger:     logger.Named("courier"),
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start restores a persisted session. An expired or corrupt session reads as
// logged out with no error; a restored one triggers the initial order load.
func (c *Controller) Start(ctx context.Context) {
	session, ok := c.sessions.Load(ctx, c.now())
	if !ok {
		return
	}

	c.mu.Lock()
	c.state.session = session
	c.state.loggedIn = true
	c.mu.Unlock()

	c.logger.Info("Session restored", zap.Int64("courier_id", session.Courier.ID))
	c.reloadOrders(ctx)
}

// ---------------------------------------------------------------------------
// Session
// ---------------------------------------------------------------------------

// Login exchanges credentials for a session. Empty fields are rejected
// before any network call. The session is persisted; its expiry comes from
// the token's own exp claim when present, the configured TTL otherwise.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	if err := c.validate.Struct(loginForm{Username: username, Password: password}); err != nil {
		c.mu.Lock()
		c.state.loginError = "Username and password are required"
		c.mu.Unlock()
		return fmt.Errorf("courier: credentials are incomplete")
	}

	courier, token, err := c.api.Login(ctx, username, password)
	if err != nil {
		c.logger.Warn("Login failed", zap.String("username", username), zap.Error(err))
		c.mu.Lock()
		c.state.loginError = backend.UserMessage(err, noticeLoginFailed)
		c.mu.Unlock()
		return err
	}

	session := domain.NewSession(courier, token, c.sessionTTL, c.now())
	c.sessions.Save(ctx, session)

	c.mu.Lock()
	c.state = state{session: session, loggedIn: true}
	c.mu.Unlock()

	c.logger.Info("Courier logged in",
		zap.Int64("courier_id", courier.ID),
		zap.Time("expires_at", session.ExpiresAt))
	c.reloadOrders(ctx)
	return nil
}

// RequestLogout stages a logout pending confirmation.
func (c *Controller) RequestLogout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.pendingLogout = true
}

// CancelLogout drops the staged logout.
func (c *Controller) CancelLogout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.pendingLogout = false
}

// ConfirmLogout clears the session, persisted and in memory.
func (c *Controller) ConfirmLogout(ctx context.Context) {
	c.mu.Lock()
	if !c.state.pendingLogout {
		c.mu.Unlock()
		return
	}
	id := c.state.session.Courier.ID
	c.state = state{}
	c.mu.Unlock()

	c.sessions.Clear(ctx)
	c.logger.Info("Courier logged out", zap.Int64("courier_id", id))
}

// ---------------------------------------------------------------------------
// Orders
// ---------------------------------------------------------------------------

// reloadOrders refetches the three buckets. Failure keeps the last-known
// buckets on screen with a notice; the console is never blocked.
func (c *Controller) reloadOrders(ctx context.Context) {
	c.mu.Lock()
	courierID := c.state.session.Courier.ID
	c.mu.Unlock()

	orders, err := c.api.CourierOrders(ctx, courierID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Warn("Order reload failed", zap.Int64("courier_id", courierID), zap.Error(err))
		c.state.notice = noticeOrdersFailed
		return
	}
	c.state.orders = orders
}

// Refresh refetches the order buckets on demand.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	loggedIn := c.state.loggedIn
	c.mu.Unlock()
	if !loggedIn {
		return
	}
	c.reloadOrders(ctx)
}

// OpenOrder fetches a fresh copy of one order for the detail overlay.
func (c *Controller) OpenOrder(ctx context.Context, orderID int64) {
	detail, err := c.api.CourierOrder(ctx, orderID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Warn("Order detail fetch failed", zap.Int64("order_id", orderID), zap.Error(err))
		c.state.notice = noticeOrdersFailed
		return
	}
	c.state.detail = &detail
}

// CloseOrder dismisses the detail overlay.
func (c *Controller) CloseOrder() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.detail = nil
}

// ---------------------------------------------------------------------------
// Delivery transitions
// ---------------------------------------------------------------------------

// RequestPickup stages a pickup pending confirmation. Nothing is sent until
// ConfirmPickup.
func (c *Controller) RequestPickup(orderID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.pendingPickup = orderID
}

// CancelPickup drops the staged pickup.
func (c *Controller) CancelPickup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.pendingPickup = 0
}

// ConfirmPickup executes the staged pickup. Without a staged order it does
// nothing.
func (c *Controller) ConfirmPickup(ctx context.Context) error {
	c.mu.Lock()
	orderID := c.state.pendingPickup
	c.state.pendingPickup = 0
	c.mu.Unlock()
	if orderID == 0 {
		return nil
	}
	return c.transition(ctx, orderID, order.DeliveryPickedUp, "", "")
}

// AttachPhoto validates and stages the delivery evidence photo. An invalid
// capture is rejected with an inline message and nothing is staged.
func (c *Controller) AttachPhoto(photo Photo) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := photo.Validate(); err != nil {
		c.state.photo = nil
		c.state.photoError = err.Error()
		return err
	}
	c.state.photo = &photo
	c.state.photoError = ""
	return nil
}

// ClearPhoto drops the staged photo.
func (c *Controller) ClearPhoto() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.photo = nil
	c.state.photoError = ""
}

// Deliver completes a delivery. It requires a staged photo; without one no
// network call is made. The photo travels inline in the payload.
func (c *Controller) Deliver(ctx context.Context, orderID int64, notes string) error {
	c.mu.Lock()
	photo := c.state.photo
	c.mu.Unlock()
	if photo == nil {
		c.mu.Lock()
		c.state.photoError = noticePhotoRequired
		c.mu.Unlock()
		return fmt.Errorf("courier: delivery requires a photo")
	}

	if err := c.transition(ctx, orderID, order.DeliveryDelivered, photo.Encoded(), notes); err != nil {
		return err
	}

	c.mu.Lock()
	c.state.photo = nil
	c.state.detail = nil
	c.mu.Unlock()
	return nil
}

// Cancel abandons an assigned delivery.
func (c *Controller) Cancel(ctx context.Context, orderID int64) error {
	return c.transition(ctx, orderID, order.DeliveryCancelled, "", "")
}

// transition posts a delivery status change and, on success, reloads every
// bucket. The client holds no independently mutable order state; the fresh
// fetch is the only thing that moves an order between buckets. A change the
// lifecycle forbids is rejected before the network.
func (c *Controller) transition(ctx context.Context, orderID int64, target order.DeliveryStatus, photo, notes string) error {
	c.mu.Lock()
	courierID := c.state.session.Courier.ID
	current, known := c.findOrder(orderID)
	c.mu.Unlock()

	if known && !current.CanTransitionTo(target) {
		return fmt.Errorf("courier: cannot move order %d from %s to %s", orderID, current, target)
	}

	err := c.api.UpdateDeliveryStatus(ctx, backend.UpdateDeliveryRequest{
		OrderID:   orderID,
		CourierID: courierID,
		Status:    target,
		Photo:     photo,
		Notes:     notes,
	})
	if err != nil {
		c.logger.Warn("Delivery transition failed",
			zap.Int64("order_id", orderID),
			zap.String("target", string(target)),
			zap.Error(err))
		c.mu.Lock()
		c.state.notice = backend.UserMessage(err, noticeUpdateFailed)
		c.mu.Unlock()
		return err
	}

	c.logger.Info("Delivery transition applied",
		zap.Int64("order_id", orderID),
		zap.String("target", string(target)))
	c.reloadOrders(ctx)
	return nil
}

// findOrder locates an order's delivery status across the buckets. Callers
// must hold c.mu.
func (c *Controller) findOrder(orderID int64) (order.DeliveryStatus, bool) {
	buckets := [][]order.Order{c.state.orders.Active, c.state.orders.Today, c.state.orders.Completed}
	for _, bucket := range buckets {
		for _, o := range bucket {
			if o.ID == orderID {
				return o.DeliveryStatus, true
			}
		}
	}
	return "", false
}

// DismissNotice clears the transient notice.
func (c *Controller) DismissNotice() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.notice = ""
}
