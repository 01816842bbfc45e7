package feedback

import (
	"errors"
	"testing"

	"github.com/kashishh0311/quickbuyz-backend/internal/address"
	"github.com/kashishh0311/quickbuyz-backend/internal/cart"
	"github.com/kashishh0311/quickbuyz-backend/internal/order"
	"github.com/kashishh0311/quickbuyz-backend/internal/product"
)

type fixture struct {
	service *Service
	orders  *order.Service
	carts   *cart.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	products := product.NewService(product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Blender", Price: 60.00, Category: "HOME_APPLIANCES", IsAvailable: true, Stock: 10},
		{ID: 2, Name: "Novel", Price: 12.00, Category: "BOOKS", IsAvailable: true, Stock: 50},
	}))
	carts := cart.NewService(cart.NewInMemoryRepository(), products)
	addresses := address.NewService(address.NewInMemoryRepository([]address.Address{
		{AddressID: 1, UserID: 7, Type: "Home", Details: "12 Baker Street"},
	}))
	orders := order.NewService(order.NewInMemoryRepository(), carts, addresses, products)

	return &fixture{
		service: NewService(NewInMemoryRepository(), orders, products),
		orders:  orders,
		carts:   carts,
	}
}

// deliverOrder walks an order for the product through the full lifecycle.
func (f *fixture) deliverOrder(t *testing.T, productID int) {
	t.Helper()

	if _, err := f.carts.AddItem(7, productID, 1); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	ord, err := f.orders.Create(7, 0)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	for _, status := range []order.Status{order.StatusPlaced, order.StatusOutForDelivery, order.StatusDelivered} {
		if _, err := f.orders.UpdateStatus(ord.OrderID, status); err != nil {
			t.Fatalf("advance to %s: %v", status, err)
		}
	}
	if _, err := f.carts.Clear(7); err != nil {
		t.Fatalf("clear cart: %v", err)
	}
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	f.deliverOrder(t, 1)

	created, err := f.service.Create(7, 1, 5, "works great")
	if err != nil {
		t.Fatalf("create feedback: %v", err)
	}
	if created.FeedbackID == 0 || created.Rating != 5 {
		t.Fatalf("unexpected feedback: %+v", created)
	}

	listed, err := f.service.ListByProduct(1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].Comment != "works great" {
		t.Fatalf("unexpected listing: %+v", listed)
	}
}

func TestCreate_NotDelivered(t *testing.T) {
	f := newFixture(t)

	// no order at all
	if _, err := f.service.Create(7, 1, 4, ""); !errors.Is(err, ErrNotEligible) {
		t.Fatalf("expected ErrNotEligible, got %v", err)
	}

	// a pending order is not enough
	if _, err := f.carts.AddItem(7, 1, 1); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	if _, err := f.orders.Create(7, 0); err != nil {
		t.Fatalf("create order: %v", err)
	}
	if _, err := f.service.Create(7, 1, 4, ""); !errors.Is(err, ErrNotEligible) {
		t.Fatalf("expected ErrNotEligible for undelivered order, got %v", err)
	}
}

func TestCreate_WrongProduct(t *testing.T) {
	f := newFixture(t)
	f.deliverOrder(t, 1)

	// delivered order exists, but not for this product
	if _, err := f.service.Create(7, 2, 4, ""); !errors.Is(err, ErrNotEligible) {
		t.Fatalf("expected ErrNotEligible, got %v", err)
	}
	if _, err := f.service.Create(7, 99, 4, ""); !errors.Is(err, product.ErrNotFound) {
		t.Fatalf("expected product.ErrNotFound, got %v", err)
	}
}

func TestCreate_Duplicate(t *testing.T) {
	f := newFixture(t)
	f.deliverOrder(t, 1)

	if _, err := f.service.Create(7, 1, 5, "first"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.service.Create(7, 1, 2, "changed my mind"); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreate_InvalidRating(t *testing.T) {
	f := newFixture(t)

	if _, err := f.service.Create(7, 1, 0, ""); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
	if _, err := f.service.Create(7, 1, 6, ""); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	f.deliverOrder(t, 1)

	created, err := f.service.Create(7, 1, 3, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.service.Delete(created.FeedbackID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := f.service.Delete(created.FeedbackID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
