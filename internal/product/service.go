package product

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ServiceInterface allows other packages (cart, order, feedback) to depend
// on product lookups without pulling in the concrete service.
type ServiceInterface interface {
	List() ([]Product, error)
	ListByCategory(category string) ([]Product, error)
	ListByIDs(ids []int) ([]Product, error)
	Search(query string) ([]Product, error)
	GetByID(id int) (Product, error)
	Create(p Product) (Product, error)
	Update(id int, p Product) (Product, error)
	SetAvailability(id int, available bool) (Product, error)
	SetStock(id int, stock int) (Product, error)
	Delete(id int) error
}

type Service struct {
	repo Repository
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Product, error) {
	return s.repo.List()
}

func (s *Service) ListByCategory(category string) ([]Product, error) {
	if !ValidCategory(category) {
		return nil, ErrInvalidCategory
	}
	return s.repo.ListByCategory(category)
}

func (s *Service) ListByIDs(ids []int) ([]Product, error) {
	return s.repo.ListByIDs(ids)
}

func (s *Service) Search(query string) ([]Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.repo.List()
	}
	return s.repo.Search(query)
}

func (s *Service) GetByID(id int) (Product, error) {
	if id <= 0 {
		return Product{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}

func (s *Service) Create(p Product) (Product, error) {
	if err := validate(p); err != nil {
		return Product{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	p.CreatedAt = now
	p.UpdatedAt = now

	created, err := s.repo.Create(p)
	if err != nil {
		log.Error().Err(err).Str("name", p.Name).Msg("product: create failed")
		return Product{}, err
	}
	return created, nil
}

func (s *Service) Update(id int, p Product) (Product, error) {
	if err := validate(p); err != nil {
		return Product{}, err
	}
	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Update(id, p)
}

func (s *Service) SetAvailability(id int, available bool) (Product, error) {
	return s.repo.SetAvailability(id, available)
}

func (s *Service) SetStock(id int, stock int) (Product, error) {
	if stock < 0 {
		return Product{}, errors.New("stock cannot be negative")
	}
	return s.repo.SetStock(id, stock)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

func validate(p Product) error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.Price < 0 {
		return errors.New("price cannot be negative")
	}
	if p.Stock < 0 {
		return errors.New("stock cannot be negative")
	}
	if !ValidCategory(p.Category) {
		return ErrInvalidCategory
	}
	return nil
}
