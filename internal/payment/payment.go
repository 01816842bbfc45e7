package payment

import "errors"

var (
	ErrNotFound            = errors.New("payment not found")
	ErrInvalidState        = errors.New("payment is not in a state that allows this operation")
	ErrGateway             = errors.New("payment gateway error")
	ErrPaymentNotCompleted = errors.New("payment has not been completed")
)

// Method is how the customer pays for an order.
type Method string

const (
	MethodCashOnDelivery Method = "Cash on Delivery"
	MethodDigital        Method = "Digital"
)

func (m Method) Valid() bool {
	return m == MethodCashOnDelivery || m == MethodDigital
}

// Status is the settlement state of a payment record.
type Status string

const (
	StatusPending Status = "Pending"
	StatusPaid    Status = "Paid"
	StatusFailed  Status = "Failed"
)

// Payment is the record created alongside every order. It starts out as a
// Pending Digital payment and is settled (or re-pointed at Cash on Delivery)
// through the checkout endpoints.
type Payment struct {
	PaymentID       int     `json:"paymentId"`
	OrderID         int     `json:"orderId"`
	UserID          int     `json:"userId"`
	Method          Method  `json:"paymentMethod"`
	Amount          float64 `json:"amount"`
	Status          Status  `json:"paymentStatus"`
	TransactionID   string  `json:"transactionId,omitempty"`
	StripeSessionID string  `json:"-"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}
