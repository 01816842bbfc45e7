package payment

import (
	"errors"
	"sync"

	"github.com/kashishh0311/quickbuyz-backend/internal/cart"
	"github.com/kashishh0311/quickbuyz-backend/internal/order"
)

// Repository persists payment records. Settlement methods update the
// payment, the order, and the cart together: a caller never observes a paid
// payment next to a still-Pending order.
type Repository interface {
	Create(p Payment) (Payment, error)
	GetByID(paymentID int) (Payment, error)
	GetByOrderID(orderID int) (Payment, error)
	ListByUser(userID int) ([]Payment, error)
	UpdateMethod(paymentID int, method Method, now string) (Payment, error)
	SetSessionID(paymentID int, sessionID string, now string) (Payment, error)
	// SettleDigital marks the payment Paid with the gateway transaction
	// id, moves the order to Order Placed, and clears the customer's cart.
	SettleDigital(paymentID int, transactionID string, now string) (Payment, error)
	MarkFailed(paymentID int, now string) (Payment, error)
	// SettleCashOnDelivery places the order and clears the cart without
	// touching the payment record, which stays Pending until delivery.
	SettleCashOnDelivery(orderID, userID int, now string) error
}

// InMemoryRepository backs tests. It coordinates with the in-memory order
// and cart repositories the same way the Postgres one does with a
// transaction.
type InMemoryRepository struct {
	mu       sync.RWMutex
	payments map[int]Payment
	byOrder  map[int]int
	nextID   int

	orders *order.InMemoryRepository
	carts  *cart.InMemoryRepository
}

func NewInMemoryRepository(orders *order.InMemoryRepository, carts *cart.InMemoryRepository) *InMemoryRepository {
	return &InMemoryRepository{
		payments: make(map[int]Payment),
		byOrder:  make(map[int]int),
		nextID:   1,
		orders:   orders,
		carts:    carts,
	}
}

func (r *InMemoryRepository) Create(p Payment) (Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byOrder[p.OrderID]; ok {
		return Payment{}, errors.New("payment already exists for order")
	}

	p.PaymentID = r.nextID
	r.nextID++
	r.payments[p.PaymentID] = p
	r.byOrder[p.OrderID] = p.PaymentID
	return p, nil
}

func (r *InMemoryRepository) GetByID(paymentID int) (Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.payments[paymentID]
	if !ok {
		return Payment{}, ErrNotFound
	}
	return p, nil
}

func (r *InMemoryRepository) GetByOrderID(orderID int) (Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byOrder[orderID]
	if !ok {
		return Payment{}, ErrNotFound
	}
	return r.payments[id], nil
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Payment{}
	for id := 1; id < r.nextID; id++ {
		if p, ok := r.payments[id]; ok && p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) UpdateMethod(paymentID int, method Method, now string) (Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.payments[paymentID]
	if !ok {
		return Payment{}, ErrNotFound
	}
	p.Method = method
	p.UpdatedAt = now
	r.payments[paymentID] = p
	return p, nil
}

func (r *InMemoryRepository) SetSessionID(paymentID int, sessionID string, now string) (Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.payments[paymentID]
	if !ok {
		return Payment{}, ErrNotFound
	}
	p.StripeSessionID = sessionID
	p.UpdatedAt = now
	r.payments[paymentID] = p
	return p, nil
}

func (r *InMemoryRepository) SettleDigital(paymentID int, transactionID string, now string) (Payment, error) {
	r.mu.Lock()
	p, ok := r.payments[paymentID]
	if !ok {
		r.mu.Unlock()
		return Payment{}, ErrNotFound
	}
	p.Status = StatusPaid
	p.TransactionID = transactionID
	p.UpdatedAt = now
	r.payments[paymentID] = p
	r.mu.Unlock()

	if _, err := r.orders.UpdateStatus(p.OrderID, order.StatusPlaced, now); err != nil {
		return Payment{}, err
	}
	if _, err := r.carts.Clear(p.UserID, now); err != nil && !errors.Is(err, cart.ErrNotFound) {
		return Payment{}, err
	}
	return p, nil
}

func (r *InMemoryRepository) MarkFailed(paymentID int, now string) (Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.payments[paymentID]
	if !ok {
		return Payment{}, ErrNotFound
	}
	p.Status = StatusFailed
	p.UpdatedAt = now
	r.payments[paymentID] = p
	return p, nil
}

func (r *InMemoryRepository) SettleCashOnDelivery(orderID, userID int, now string) error {
	if _, err := r.orders.UpdateStatus(orderID, order.StatusPlaced, now); err != nil {
		return err
	}
	if _, err := r.carts.Clear(userID, now); err != nil && !errors.Is(err, cart.ErrNotFound) {
		return err
	}
	return nil
}
