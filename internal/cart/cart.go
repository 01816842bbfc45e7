package cart

import (
	"errors"

	"github.com/kashishh0311/quickbuyz-backend/internal/product"
)

var (
	ErrNotFound          = errors.New("cart not found")
	ErrItemNotFound      = errors.New("item not found in cart")
	ErrDuplicateItem     = errors.New("product already exists in cart")
	ErrInsufficientStock = errors.New("requested quantity exceeds available stock")
)

// Item is one line in a cart: a product reference plus the quantity and the
// line total captured at add/update time.
type Item struct {
	ProductID  int     `json:"productId"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"totalPrice"`

	// Product carries the populated summary in API responses. It is not
	// persisted with the line.
	Product *product.Summary `json:"product,omitempty"`
}

// Cart holds a customer's pending purchase lines. There is exactly one cart
// per customer; it is created lazily and emptied rather than deleted.
// Invariant: TotalCartAmount equals the sum of Items[].TotalPrice after
// every mutation.
type Cart struct {
	CartID          int     `json:"cartId"`
	UserID          int     `json:"userId"`
	Items           []Item  `json:"items"`
	TotalCartAmount float64 `json:"totalCartAmount"`
	CreatedAt       string  `json:"createdAt,omitempty"`
	UpdatedAt       string  `json:"updatedAt,omitempty"`
}

func (c *Cart) findItem(productID int) *Item {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

func (c *Cart) removeItem(productID int) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}
