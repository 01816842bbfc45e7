package address

import "errors"

var ErrNotFound = errors.New("address not found")

// Address is one entry in a customer's address book. Orders copy the
// type/details pair at creation time; they never reference the row.
type Address struct {
	AddressID int    `json:"addressId"`
	UserID    int    `json:"userId"`
	Type      string `json:"type"`
	Details   string `json:"details"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
