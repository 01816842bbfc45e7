package product

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func seed() []Product {
	return []Product{
		{ID: 1, Name: "Keyboard", Price: 45, Category: "ELECTRONICS", IsAvailable: true, Stock: 20},
		{ID: 2, Name: "Novel", Price: 12, Category: "BOOKS", IsAvailable: true, Stock: 50},
	}
}

func makeApp() (*fiber.App, *Service) {
	service := NewService(NewInMemoryRepository(seed()))
	handler := NewHandler(service)
	app := fiber.New()
	handler.RegisterPublicRoutes(app)
	handler.RegisterAdminRoutes(app.Group("/api/v1/admin"))
	return app, service
}

func TestPublicRoutes(t *testing.T) {
	app, _ := makeApp()

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/products", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 listing products, got %d", res.StatusCode)
	}
	var products []Product
	if err := json.NewDecoder(res.Body).Decode(&products); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/products?category=BOOKS", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for category filter, got %d", res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(&products); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Novel" {
		t.Fatalf("unexpected filtered products: %+v", products)
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/products?search=key", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for search, got %d", res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(&products); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Keyboard" {
		t.Fatalf("unexpected search results: %+v", products)
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/products?category=TOYS", nil))
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown category, got %d", res.StatusCode)
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/products/categories", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for categories, got %d", res.StatusCode)
	}
	var categories []string
	if err := json.NewDecoder(res.Body).Decode(&categories); err != nil {
		t.Fatalf("decode categories: %v", err)
	}
	if len(categories) != len(AllowedCategories) {
		t.Fatalf("expected %d categories, got %d", len(AllowedCategories), len(categories))
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/product/1", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for product detail, got %d", res.StatusCode)
	}
	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/product/99", nil))
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", res.StatusCode)
	}
}

func TestAdminRoutes(t *testing.T) {
	app, service := makeApp()

	body := `{"name":"Desk Lamp","price":35.5,"category":"HOME_APPLIANCES","stock":8,"isAvailable":true}`
	req := httptest.NewRequest("POST", "/api/v1/admin/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 creating product, got %d", res.StatusCode)
	}
	var created Product
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id, got %+v", created)
	}

	// invalid category is rejected
	req = httptest.NewRequest("POST", "/api/v1/admin/products", strings.NewReader(`{"name":"X","price":1,"category":"NOPE","stock":1}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bad category, got %d", res.StatusCode)
	}

	// toggle availability
	req = httptest.NewRequest("PATCH", "/api/v1/admin/product/1/availability", strings.NewReader(`{"isAvailable":false}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 toggling availability, got %d", res.StatusCode)
	}
	p, err := service.GetByID(1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.IsAvailable {
		t.Fatal("product should be unavailable")
	}

	// stock update
	req = httptest.NewRequest("PATCH", "/api/v1/admin/product/2/stock", strings.NewReader(`{"stock":7}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 updating stock, got %d", res.StatusCode)
	}

	// delete
	res, _ = app.Test(httptest.NewRequest("DELETE", "/api/v1/admin/product/2", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 deleting, got %d", res.StatusCode)
	}
	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/product/2", nil))
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", res.StatusCode)
	}
}
