package order

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func orderRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"order_id", "user_id", "order_items", "total_order_amount",
		"charges", "order_status", "delivery_address", "created_at", "updated_at"})
}

func TestPostgresCreate_InsertsPaymentInSameTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	ord := Order{
		UserID:           7,
		Items:            []Item{{ProductID: 1, Quantity: 2, TotalPrice: 400}},
		TotalOrderAmount: 440,
		Charges:          40,
		Status:           StatusPending,
		DeliveryAddress:  DeliveryAddress{Type: "Home", Details: "12 Baker Street"},
		CreatedAt:        "2026-09-01T10:00:00Z",
		UpdatedAt:        "2026-09-01T10:00:00Z",
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(orderRows().AddRow(3, 7, `[{"productId":1,"quantity":2,"totalPrice":400}]`,
			440.0, 40.0, "Pending", `{"type":"Home","details":"12 Baker Street"}`,
			"2026-09-01T10:00:00Z", "2026-09-01T10:00:00Z"))
	mock.ExpectExec("INSERT INTO payments").
		WithArgs(3, 7, 440.0, "2026-09-01T10:00:00Z").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	created, err := repo.Create(ord)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.OrderID != 3 {
		t.Fatalf("expected order id 3, got %d", created.OrderID)
	}
	if len(created.Items) != 1 || created.Items[0].TotalPrice != 400 {
		t.Fatalf("unexpected items: %+v", created.Items)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCreate_RollsBackWhenPaymentInsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(orderRows().AddRow(3, 7, `[]`, 440.0, 40.0, "Pending", `{}`, "t", "t"))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	if _, err := repo.Create(Order{UserID: 7, Items: []Item{}, Status: StatusPending}); err == nil {
		t.Fatal("expected error when payment insert fails")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM orders").WithArgs(99).WillReturnRows(orderRows())

	if _, err := repo.GetByID(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
