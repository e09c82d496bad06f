package courier

import (
	"github.com/shopspring/decimal"

	"github.com/teleshop/client/internal/domain/order"
)

// View is the full render output for the courier console. Exactly one of
// Login and Orders is set.
type View struct {
	Login  *LoginView
	Orders *OrdersView
	Notice string
}

// LoginView is the credentials screen.
type LoginView struct {
	Error string
}

// OrdersView is the logged-in console with its three buckets.
type OrdersView struct {
	CourierName string
	Active      []OrderCard
	Today       []OrderCard
	Completed   []OrderCard
	Detail      *OrderCard

	PendingPickup int64 // order id awaiting pickup confirmation, 0 = none
	PendingLogout bool
	PhotoAttached bool
	PhotoError    string
}

// OrderCard is one rendered delivery card.
type OrderCard struct {
	ID         int64
	BuyerName  string
	BuyerPhone string
	Address    string
	Total      string
	Status     order.DeliveryStatus
	Notes      string
	CanPickUp  bool
	CanDeliver bool
	CanCancel  bool
}

// Render projects controller state into view models.
func (c *Controller) Render() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.loggedIn {
		return View{
			Login:  &LoginView{Error: c.state.loginError},
			Notice: c.state.notice,
		}
	}

	orders := &OrdersView{
		CourierName:   c.state.session.Courier.Name,
		Active:        orderCards(c.state.orders.Active),
		Today:         orderCards(c.state.orders.Today),
		Completed:     orderCards(c.state.orders.Completed),
		PendingPickup: c.state.pendingPickup,
		PendingLogout: c.state.pendingLogout,
		PhotoAttached: c.state.photo != nil,
		PhotoError:    c.state.photoError,
	}
	if c.state.detail != nil {
		card := orderCard(*c.state.detail)
		orders.Detail = &card
	}

	return View{Orders: orders, Notice: c.state.notice}
}

func orderCards(orders []order.Order) []OrderCard {
	cards := make([]OrderCard, 0, len(orders))
	for _, o := range orders {
		cards = append(cards, orderCard(o))
	}
	return cards
}

func orderCard(o order.Order) OrderCard {
	return OrderCard{
		ID:         o.ID,
		BuyerName:  o.BuyerName,
		BuyerPhone: o.BuyerPhone,
		Address:    o.Address.Display(),
		Total:      formatMoney(o.Total),
		Status:     o.DeliveryStatus,
		Notes:      o.Notes,
		CanPickUp:  o.DeliveryStatus.CanTransitionTo(order.DeliveryPickedUp),
		CanDeliver: o.DeliveryStatus.CanTransitionTo(order.DeliveryDelivered),
		CanCancel:  o.DeliveryStatus.CanTransitionTo(order.DeliveryCancelled),
	}
}

func formatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
