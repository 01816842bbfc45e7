package cart

import (
	"errors"
	"testing"

	"github.com/kashishh0311/quickbuyz-backend/internal/product"
)

func seedProducts() []product.Product {
	return []product.Product{
		{ID: 1, Name: "Wireless Mouse", Price: 25.50, Category: "ELECTRONICS", IsAvailable: true, Stock: 10},
		{ID: 2, Name: "Notebook", Price: 3.20, Category: "BOOKS", IsAvailable: true, Stock: 100},
		{ID: 3, Name: "Discontinued Lamp", Price: 40, Category: "HOME_APPLIANCES", IsAvailable: false, Stock: 5},
		{ID: 4, Name: "Handbag", Price: 200, Category: "FASHION", IsAvailable: true, Stock: 2},
	}
}

func newTestService() *Service {
	products := product.NewService(product.NewInMemoryRepository(seedProducts()))
	return NewService(NewInMemoryRepository(), products)
}

func TestAddItem(t *testing.T) {
	service := newTestService()

	c, err := service.AddItem(7, 1, 2)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if len(c.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(c.Items))
	}
	if c.Items[0].TotalPrice != 51.00 {
		t.Fatalf("expected line total 51.00, got %v", c.Items[0].TotalPrice)
	}
	if c.TotalCartAmount != 51.00 {
		t.Fatalf("expected cart total 51.00, got %v", c.TotalCartAmount)
	}
	if c.Items[0].Product == nil || c.Items[0].Product.Name != "Wireless Mouse" {
		t.Fatalf("expected populated product summary, got %+v", c.Items[0].Product)
	}
}

func TestAddItem_DuplicateRejected(t *testing.T) {
	service := newTestService()

	if _, err := service.AddItem(7, 1, 1); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := service.AddItem(7, 1, 3); !errors.Is(err, ErrDuplicateItem) {
		t.Fatalf("expected ErrDuplicateItem, got %v", err)
	}

	// the failed add must not have touched the cart
	c, err := service.GetCart(7)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(c.Items) != 1 || c.Items[0].Quantity != 1 {
		t.Fatalf("cart changed by rejected add: %+v", c.Items)
	}
}

func TestAddItem_UnavailableProduct(t *testing.T) {
	service := newTestService()

	if _, err := service.AddItem(7, 3, 1); !errors.Is(err, product.ErrNotFound) {
		t.Fatalf("expected product.ErrNotFound for unavailable product, got %v", err)
	}
	if _, err := service.AddItem(7, 99, 1); !errors.Is(err, product.ErrNotFound) {
		t.Fatalf("expected product.ErrNotFound for unknown product, got %v", err)
	}
}

func TestAddItem_InsufficientStock(t *testing.T) {
	service := newTestService()

	if _, err := service.AddItem(7, 4, 3); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestSetQuantity_Recomputes(t *testing.T) {
	service := newTestService()

	if _, err := service.AddItem(7, 1, 2); err != nil {
		t.Fatalf("add mouse: %v", err)
	}
	if _, err := service.AddItem(7, 2, 5); err != nil {
		t.Fatalf("add notebook: %v", err)
	}

	c, err := service.SetQuantity(7, 1, 4)
	if err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	// 4*25.50 + 5*3.20
	if c.TotalCartAmount != 118.00 {
		t.Fatalf("expected total 118.00, got %v", c.TotalCartAmount)
	}
}

func TestSetQuantity_ZeroRemovesLine(t *testing.T) {
	service := newTestService()

	if _, err := service.AddItem(7, 1, 2); err != nil {
		t.Fatalf("add mouse: %v", err)
	}
	if _, err := service.AddItem(7, 2, 5); err != nil {
		t.Fatalf("add notebook: %v", err)
	}

	c, err := service.SetQuantity(7, 1, 0)
	if err != nil {
		t.Fatalf("set quantity zero: %v", err)
	}
	if len(c.Items) != 1 || c.Items[0].ProductID != 2 {
		t.Fatalf("expected only notebook left, got %+v", c.Items)
	}
	if c.TotalCartAmount != 16.00 {
		t.Fatalf("expected total 16.00, got %v", c.TotalCartAmount)
	}
}

func TestSetQuantity_MissingLine(t *testing.T) {
	service := newTestService()

	if _, err := service.AddItem(7, 1, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := service.SetQuantity(7, 2, 3); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestGetCart_NoCart(t *testing.T) {
	service := newTestService()

	if _, err := service.GetCart(7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClear_KeepsCartRow(t *testing.T) {
	service := newTestService()

	if _, err := service.AddItem(7, 1, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	cleared, err := service.Clear(7)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(cleared.Items) != 0 || cleared.TotalCartAmount != 0 {
		t.Fatalf("expected empty cart, got %+v", cleared)
	}

	// clearing keeps the row, so a follow-up get succeeds
	c, err := service.GetCart(7)
	if err != nil {
		t.Fatalf("get after clear: %v", err)
	}
	if len(c.Items) != 0 {
		t.Fatalf("expected no items after clear, got %+v", c.Items)
	}
}
