package address

import (
	"errors"
	"testing"
)

func newTestService() *Service {
	return NewService(NewInMemoryRepository([]Address{
		{AddressID: 3, UserID: 7, Type: "Home", Details: "12 Baker Street"},
		{AddressID: 5, UserID: 7, Type: "Work", Details: "1 Office Park"},
		{AddressID: 4, UserID: 8, Type: "Home", Details: "9 Elm Road"},
	}))
}

func TestGetByIndex(t *testing.T) {
	service := newTestService()

	// index refers to the position in the id-ordered book
	first, err := service.GetByIndex(7, 0)
	if err != nil {
		t.Fatalf("index 0: %v", err)
	}
	if first.AddressID != 3 {
		t.Fatalf("expected address 3 first, got %d", first.AddressID)
	}

	second, err := service.GetByIndex(7, 1)
	if err != nil {
		t.Fatalf("index 1: %v", err)
	}
	if second.Type != "Work" {
		t.Fatalf("expected Work address, got %+v", second)
	}
}

func TestGetByIndex_OutOfRange(t *testing.T) {
	service := newTestService()

	if _, err := service.GetByIndex(7, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound past the end, got %v", err)
	}
	if _, err := service.GetByIndex(7, -1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for negative index, got %v", err)
	}
}

func TestGetByIndex_ScopedToUser(t *testing.T) {
	service := newTestService()

	only, err := service.GetByIndex(8, 0)
	if err != nil {
		t.Fatalf("index 0: %v", err)
	}
	if only.Details != "9 Elm Road" {
		t.Fatalf("expected user 8's address, got %+v", only)
	}
	if _, err := service.GetByIndex(8, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for user 8 index 1, got %v", err)
	}
}

func TestAddUpdateDelete(t *testing.T) {
	service := newTestService()

	added, err := service.Add(7, "Other", "PO Box 99")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.AddressID == 0 {
		t.Fatalf("expected assigned id, got %+v", added)
	}

	updated, err := service.Update(7, added.AddressID, "Other", "PO Box 100")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Details != "PO Box 100" {
		t.Fatalf("expected updated details, got %+v", updated)
	}

	// users cannot touch each other's entries
	if _, err := service.Update(8, added.AddressID, "Other", "hijack"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign update, got %v", err)
	}
	if err := service.Delete(8, added.AddressID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign delete, got %v", err)
	}

	if err := service.Delete(7, added.AddressID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := service.GetByIndex(7, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected entry gone, got %v", err)
	}
}
