package address

import (
	"errors"
	"time"
)

// ServiceInterface is consumed by the order flow to resolve delivery
// addresses by index.
type ServiceInterface interface {
	List(userID int) ([]Address, error)
	GetByIndex(userID, index int) (Address, error)
	Add(userID int, addrType, details string) (Address, error)
	Update(userID, addressID int, addrType, details string) (Address, error)
	Delete(userID, addressID int) error
}

type Service struct {
	repo Repository
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(userID int) ([]Address, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.List(userID)
}

// GetByIndex resolves the index-based address selection used at checkout.
// The index refers to the position in the id-ordered address book, which is
// fragile if entries are removed concurrently, but matches the external
// contract clients rely on.
func (s *Service) GetByIndex(userID, index int) (Address, error) {
	addrs, err := s.repo.List(userID)
	if err != nil {
		return Address{}, err
	}
	if index < 0 || index >= len(addrs) {
		return Address{}, ErrNotFound
	}
	return addrs[index], nil
}

func (s *Service) Add(userID int, addrType, details string) (Address, error) {
	if userID <= 0 {
		return Address{}, ErrNotFound
	}
	if addrType == "" || details == "" {
		return Address{}, errors.New("type and details are required")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	return s.repo.Add(Address{
		UserID:    userID,
		Type:      addrType,
		Details:   details,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *Service) Update(userID, addressID int, addrType, details string) (Address, error) {
	if userID <= 0 || addressID <= 0 {
		return Address{}, ErrNotFound
	}
	if addrType == "" || details == "" {
		return Address{}, errors.New("type and details are required")
	}
	return s.repo.Update(userID, addressID, Address{
		Type:      addrType,
		Details:   details,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Service) Delete(userID, addressID int) error {
	if userID <= 0 || addressID <= 0 {
		return ErrNotFound
	}
	return s.repo.Delete(userID, addressID)
}
