package order

import "errors"

// Status is the order lifecycle state. The happy path runs Pending ->
// Order Placed -> Out for Delivery -> Delivered; Cancelled is reachable
// from any non-terminal state. Delivered and Cancelled are terminal.
type Status string

const (
	StatusPending        Status = "Pending"
	StatusPlaced         Status = "Order Placed"
	StatusOutForDelivery Status = "Out for Delivery"
	StatusDelivered      Status = "Delivered"
	StatusCancelled      Status = "Cancelled"
)

var ErrInvalidTransition = errors.New("invalid order status transition")

// AllStatuses returns the valid status labels in lifecycle order, for
// client-side display.
func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusPlaced,
		StatusOutForDelivery,
		StatusDelivered,
		StatusCancelled,
	}
}

// Valid reports whether s is one of the known status labels.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPlaced, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed out of s.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

var allowedTransitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusPlaced:    true,
		StatusCancelled: true,
	},
	StatusPlaced: {
		StatusOutForDelivery: true,
		StatusCancelled:      true,
	},
	StatusOutForDelivery: {
		StatusDelivered: true,
		StatusCancelled: true,
	},
	StatusDelivered: {},
	StatusCancelled: {},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to Status) bool {
	return allowedTransitions[from][to]
}
