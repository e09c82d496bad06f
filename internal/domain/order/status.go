// Package order holds the client's read models for remote orders: the
// commerce status lifecycle managed by the admin console and the delivery
// (assignment) lifecycle observed by the courier console.
package order

// Status is the commerce status of an order, owned by the backend and
// changed through the admin console.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Valid reports whether the status is part of the admin-settable set.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// DeliveryStatus is the courier-side lifecycle of a single order delivery,
// distinct from the order's own commerce status.
type DeliveryStatus string

const (
	DeliveryAssigned  DeliveryStatus = "assigned"
	DeliveryPickedUp  DeliveryStatus = "picked_up"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryCancelled DeliveryStatus = "cancelled"
)

// CanTransitionTo reports whether the courier may drive the delivery from
// the current status to the target one: assigned → picked_up → delivered,
// with a cancelled side-exit from assigned.
func (s DeliveryStatus) CanTransitionTo(target DeliveryStatus) bool {
	switch s {
	case DeliveryAssigned:
		return target == DeliveryPickedUp || target == DeliveryCancelled
	case DeliveryPickedUp:
		return target == DeliveryDelivered
	}
	return false
}
