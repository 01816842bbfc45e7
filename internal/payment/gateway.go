package payment

import "context"

// CheckoutSession is a hosted checkout page created at the gateway. The
// client is redirected to URL and comes back with the session id.
type CheckoutSession struct {
	ID  string `json:"sessionId"`
	URL string `json:"url"`
}

// SessionResult is the settlement state of a checkout session as reported
// by the gateway.
type SessionResult struct {
	ID            string
	PaymentStatus string
	TransactionID string
}

// Paid reports whether the gateway considers the session settled.
func (r SessionResult) Paid() bool {
	return r.PaymentStatus == "paid"
}

// Gateway abstracts the external payment provider so the service can be
// exercised against a fake in tests.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, paymentID, orderID int, amount float64) (CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (SessionResult, error)
}
