package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kashishh0311/quickbuyz-backend/internal/address"
	"github.com/kashishh0311/quickbuyz-backend/internal/cart"
	"github.com/kashishh0311/quickbuyz-backend/internal/order"
	"github.com/kashishh0311/quickbuyz-backend/internal/product"
)

// fakeGateway scripts the provider responses so settlement logic can be
// exercised without the network.
type fakeGateway struct {
	createErr   error
	sessionPaid bool
	retrieveErr error

	created int
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, paymentID, orderID int, amount float64) (CheckoutSession, error) {
	if g.createErr != nil {
		return CheckoutSession{}, g.createErr
	}
	g.created++
	return CheckoutSession{ID: "cs_test_1", URL: "https://checkout.example/cs_test_1"}, nil
}

func (g *fakeGateway) RetrieveSession(_ context.Context, sessionID string) (SessionResult, error) {
	if g.retrieveErr != nil {
		return SessionResult{}, g.retrieveErr
	}
	if g.sessionPaid {
		return SessionResult{ID: sessionID, PaymentStatus: "paid", TransactionID: "pi_test_1"}, nil
	}
	return SessionResult{ID: sessionID, PaymentStatus: "unpaid"}, nil
}

type fixture struct {
	service  *Service
	orders   *order.Service
	carts    *cart.Service
	repo     *InMemoryRepository
	gateway  *fakeGateway
	cartRepo *cart.InMemoryRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	products := product.NewService(product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Headphones", Price: 200.00, Category: "ELECTRONICS", IsAvailable: true, Stock: 10},
	}))
	cartRepo := cart.NewInMemoryRepository()
	carts := cart.NewService(cartRepo, products)
	addresses := address.NewService(address.NewInMemoryRepository([]address.Address{
		{AddressID: 1, UserID: 7, Type: "Home", Details: "12 Baker Street"},
	}))
	orderRepo := order.NewInMemoryRepository()
	orders := order.NewService(orderRepo, carts, addresses, products)

	repo := NewInMemoryRepository(orderRepo, cartRepo)
	gateway := &fakeGateway{}
	return &fixture{
		service:  NewService(repo, gateway, orders),
		orders:   orders,
		carts:    carts,
		repo:     repo,
		gateway:  gateway,
		cartRepo: cartRepo,
	}
}

// placeOrder fills the cart with two headphones, creates the order, and
// seeds the companion Pending payment the way the transactional repository
// does in production.
func (f *fixture) placeOrder(t *testing.T) order.Order {
	t.Helper()

	if _, err := f.carts.AddItem(7, 1, 2); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	ord, err := f.orders.Create(7, 0)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := f.repo.Create(Payment{
		OrderID:   ord.OrderID,
		UserID:    ord.UserID,
		Method:    MethodDigital,
		Amount:    ord.TotalOrderAmount,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	return ord
}

func TestDigitalPaymentHappyPath(t *testing.T) {
	f := newFixture(t)
	ord := f.placeOrder(t)

	// 2 x 200.00 lands in the free-delivery tier
	if ord.TotalOrderAmount != 400.00 || ord.Charges != 40.00 {
		t.Fatalf("unexpected order amounts: total=%v charges=%v", ord.TotalOrderAmount, ord.Charges)
	}

	session, err := f.service.CreateCheckoutSession(context.Background(), ord.OrderID, 7)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if session.ID == "" || session.URL == "" {
		t.Fatalf("expected session id and url, got %+v", session)
	}

	f.gateway.sessionPaid = true
	p, err := f.service.VerifyDigitalPayment(context.Background(), ord.OrderID, 7)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if p.Status != StatusPaid {
		t.Fatalf("expected Paid, got %s", p.Status)
	}
	if p.TransactionID != "pi_test_1" {
		t.Fatalf("expected transaction id, got %q", p.TransactionID)
	}

	// settlement placed the order and cleared the cart
	placed, err := f.orders.GetByID(ord.OrderID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if placed.Status != order.StatusPlaced {
		t.Fatalf("expected Order Placed, got %s", placed.Status)
	}
	c, err := f.carts.GetCart(7)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(c.Items) != 0 {
		t.Fatalf("cart should be empty after settlement, got %d items", len(c.Items))
	}

	// re-verifying a settled payment is a no-op
	again, err := f.service.VerifyDigitalPayment(context.Background(), ord.OrderID, 7)
	if err != nil {
		t.Fatalf("second verify: %v", err)
	}
	if again.Status != StatusPaid {
		t.Fatalf("expected Paid on re-verify, got %s", again.Status)
	}
}

func TestDigitalPaymentFailure(t *testing.T) {
	f := newFixture(t)
	ord := f.placeOrder(t)

	if _, err := f.service.CreateCheckoutSession(context.Background(), ord.OrderID, 7); err != nil {
		t.Fatalf("create session: %v", err)
	}

	f.gateway.sessionPaid = false
	if _, err := f.service.VerifyDigitalPayment(context.Background(), ord.OrderID, 7); !errors.Is(err, ErrPaymentNotCompleted) {
		t.Fatalf("expected ErrPaymentNotCompleted, got %v", err)
	}

	p, err := f.service.GetByOrderID(ord.OrderID)
	if err != nil {
		t.Fatalf("get payment: %v", err)
	}
	if p.Status != StatusFailed {
		t.Fatalf("expected Failed, got %s", p.Status)
	}

	// failure touches neither the order nor the cart
	pending, err := f.orders.GetByID(ord.OrderID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if pending.Status != order.StatusPending {
		t.Fatalf("expected order still Pending, got %s", pending.Status)
	}
	c, err := f.carts.GetCart(7)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(c.Items) != 1 {
		t.Fatalf("cart should be intact after failed payment, got %d items", len(c.Items))
	}
}

func TestCreateCheckoutSession_GatewayDown(t *testing.T) {
	f := newFixture(t)
	ord := f.placeOrder(t)

	f.gateway.createErr = errors.New("connection refused")
	if _, err := f.service.CreateCheckoutSession(context.Background(), ord.OrderID, 7); !errors.Is(err, ErrGateway) {
		t.Fatalf("expected ErrGateway, got %v", err)
	}

	// the payment record must be untouched so the customer can retry
	p, err := f.service.GetByOrderID(ord.OrderID)
	if err != nil {
		t.Fatalf("get payment: %v", err)
	}
	if p.Status != StatusPending || p.StripeSessionID != "" {
		t.Fatalf("payment changed by failed session create: %+v", p)
	}

	f.gateway.createErr = nil
	if _, err := f.service.CreateCheckoutSession(context.Background(), ord.OrderID, 7); err != nil {
		t.Fatalf("retry after gateway recovery: %v", err)
	}
}

func TestVerify_GatewayDown(t *testing.T) {
	f := newFixture(t)
	ord := f.placeOrder(t)

	if _, err := f.service.CreateCheckoutSession(context.Background(), ord.OrderID, 7); err != nil {
		t.Fatalf("create session: %v", err)
	}

	f.gateway.retrieveErr = errors.New("connection refused")
	if _, err := f.service.VerifyDigitalPayment(context.Background(), ord.OrderID, 7); !errors.Is(err, ErrGateway) {
		t.Fatalf("expected ErrGateway, got %v", err)
	}

	// an unreachable gateway is not a failed payment
	p, err := f.service.GetByOrderID(ord.OrderID)
	if err != nil {
		t.Fatalf("get payment: %v", err)
	}
	if p.Status != StatusPending {
		t.Fatalf("expected still Pending, got %s", p.Status)
	}
}

func TestCreateCheckoutSession_WrongState(t *testing.T) {
	f := newFixture(t)
	ord := f.placeOrder(t)

	if _, err := f.service.UpdateMethod(ord.OrderID, 7, MethodCashOnDelivery); err != nil {
		t.Fatalf("switch to COD: %v", err)
	}
	if _, err := f.service.CreateCheckoutSession(context.Background(), ord.OrderID, 7); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for COD payment, got %v", err)
	}
}

func TestCashOnDelivery(t *testing.T) {
	f := newFixture(t)
	ord := f.placeOrder(t)

	if _, err := f.service.UpdateMethod(ord.OrderID, 7, MethodCashOnDelivery); err != nil {
		t.Fatalf("switch to COD: %v", err)
	}
	p, err := f.service.SettleCashOnDelivery(ord.OrderID, 7)
	if err != nil {
		t.Fatalf("settle COD: %v", err)
	}

	// the payment stays Pending until the courier collects
	if p.Status != StatusPending || p.Method != MethodCashOnDelivery {
		t.Fatalf("unexpected payment after COD: %+v", p)
	}

	placed, err := f.orders.GetByID(ord.OrderID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if placed.Status != order.StatusPlaced {
		t.Fatalf("expected Order Placed, got %s", placed.Status)
	}
	c, err := f.carts.GetCart(7)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(c.Items) != 0 {
		t.Fatalf("cart should be empty after COD placement, got %d items", len(c.Items))
	}

	// placing the same order twice is rejected
	if _, err := f.service.SettleCashOnDelivery(ord.OrderID, 7); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState on second COD settle, got %v", err)
	}
}

func TestSettleCashOnDelivery_DigitalMethod(t *testing.T) {
	f := newFixture(t)
	ord := f.placeOrder(t)

	if _, err := f.service.SettleCashOnDelivery(ord.OrderID, 7); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for Digital payment, got %v", err)
	}
}

func TestUpdateMethod_AfterSettlement(t *testing.T) {
	f := newFixture(t)
	ord := f.placeOrder(t)

	if _, err := f.service.CreateCheckoutSession(context.Background(), ord.OrderID, 7); err != nil {
		t.Fatalf("create session: %v", err)
	}
	f.gateway.sessionPaid = true
	if _, err := f.service.VerifyDigitalPayment(context.Background(), ord.OrderID, 7); err != nil {
		t.Fatalf("verify: %v", err)
	}

	if _, err := f.service.UpdateMethod(ord.OrderID, 7, MethodCashOnDelivery); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for settled payment, got %v", err)
	}
}

func TestOwnership(t *testing.T) {
	f := newFixture(t)
	ord := f.placeOrder(t)

	if _, err := f.service.CreateCheckoutSession(context.Background(), ord.OrderID, 8); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign user, got %v", err)
	}
	if _, err := f.service.VerifyDigitalPayment(context.Background(), ord.OrderID, 8); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign user, got %v", err)
	}
	if _, err := f.service.SettleCashOnDelivery(ord.OrderID, 8); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign user, got %v", err)
	}
}
