package payment

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func paymentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"payment_id", "order_id", "user_id", "payment_method", "amount",
		"payment_status", "transaction_id", "stripe_session_id", "created_at", "updated_at"})
}

func TestPostgresSettleDigital(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE payments").
		WithArgs(5, "pi_test_1", "2026-09-01T10:00:00Z").
		WillReturnRows(paymentRows().AddRow(5, 3, 7, "Digital", 440.0, "Paid", "pi_test_1", "cs_test_1", "t", "t"))
	mock.ExpectExec("UPDATE orders").
		WithArgs(3, "2026-09-01T10:00:00Z").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE carts").
		WithArgs(7, "2026-09-01T10:00:00Z").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	settled, err := repo.SettleDigital(5, "pi_test_1", "2026-09-01T10:00:00Z")
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if settled.Status != StatusPaid || settled.TransactionID != "pi_test_1" {
		t.Fatalf("unexpected payment: %+v", settled)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresSettleDigital_RollsBackOnOrderFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE payments").
		WillReturnRows(paymentRows().AddRow(5, 3, 7, "Digital", 440.0, "Paid", "pi_test_1", "cs_test_1", "t", "t"))
	mock.ExpectExec("UPDATE orders").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	if _, err := repo.SettleDigital(5, "pi_test_1", "now"); err == nil {
		t.Fatal("expected error when order update fails")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresSettleCashOnDelivery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE orders").
		WithArgs(3, "now").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE carts").
		WithArgs(7, "now").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.SettleCashOnDelivery(3, 7, "now"); err != nil {
		t.Fatalf("settle COD: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresSettleCashOnDelivery_UnknownOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE orders").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	if err := repo.SettleCashOnDelivery(99, 7, "now"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
