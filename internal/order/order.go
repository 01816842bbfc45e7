package order

import (
	"errors"

	"github.com/kashishh0311/quickbuyz-backend/internal/product"
)

var (
	ErrNotFound       = errors.New("order not found")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrInvalidAddress = errors.New("invalid delivery address selection")
)

// Item is one line of an order: the product reference plus the quantity and
// line total captured when the order was created. Later price changes do
// not touch it.
type Item struct {
	ProductID  int     `json:"productId"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"totalPrice"`

	Product *product.Summary `json:"product,omitempty"`
}

// DeliveryAddress is the address snapshot copied from the customer's
// address book at creation or update time.
type DeliveryAddress struct {
	Type    string `json:"type"`
	Details string `json:"details"`
}

// Order is an immutable snapshot of a cart at checkout, plus its lifecycle
// status. Fields change only through the status-transition and
// address-update operations.
// Invariant: TotalOrderAmount == round(sum(Items[].TotalPrice) + Charges, 2).
type Order struct {
	OrderID          int             `json:"orderId"`
	UserID           int             `json:"userId"`
	Items            []Item          `json:"orderItems"`
	TotalOrderAmount float64         `json:"totalOrderAmount"`
	Charges          float64         `json:"charges"`
	Status           Status          `json:"orderStatus"`
	DeliveryAddress  DeliveryAddress `json:"deliveryAddress"`
	CreatedAt        string          `json:"createdAt,omitempty"`
	UpdatedAt        string          `json:"updatedAt,omitempty"`
}
