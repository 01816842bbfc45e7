package feedback

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kashishh0311/quickbuyz-backend/internal/order"
	"github.com/kashishh0311/quickbuyz-backend/internal/product"
)

type ServiceInterface interface {
	Create(userID, productID, rating int, comment string) (Feedback, error)
	ListByProduct(productID int) ([]Feedback, error)
	ListAll() ([]Feedback, error)
	Delete(feedbackID int) error
}

type Service struct {
	repo     Repository
	orders   order.ServiceInterface
	products product.ServiceInterface
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, orders order.ServiceInterface, products product.ServiceInterface) *Service {
	return &Service{repo: repo, orders: orders, products: products}
}

// Create records a review. The customer must have a Delivered order
// containing the product, and at most one review per product is kept.
func (s *Service) Create(userID, productID, rating int, comment string) (Feedback, error) {
	if rating < 1 || rating > 5 {
		return Feedback{}, ErrInvalidRating
	}
	if _, err := s.products.GetByID(productID); err != nil {
		return Feedback{}, err
	}

	delivered, err := s.hasDelivered(userID, productID)
	if err != nil {
		return Feedback{}, err
	}
	if !delivered {
		return Feedback{}, ErrNotEligible
	}

	if _, err := s.repo.GetByUserAndProduct(userID, productID); err == nil {
		return Feedback{}, ErrAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return Feedback{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	created, err := s.repo.Create(Feedback{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return Feedback{}, err
	}

	log.Info().Int("feedbackId", created.FeedbackID).Int("productId", productID).Msg("feedback recorded")
	return created, nil
}

func (s *Service) ListByProduct(productID int) ([]Feedback, error) {
	if _, err := s.products.GetByID(productID); err != nil {
		return nil, err
	}
	return s.repo.ListByProduct(productID)
}

func (s *Service) ListAll() ([]Feedback, error) {
	return s.repo.ListAll()
}

func (s *Service) Delete(feedbackID int) error {
	return s.repo.Delete(feedbackID)
}

func (s *Service) hasDelivered(userID, productID int) (bool, error) {
	orders, err := s.orders.ListByUser(userID)
	if err != nil {
		return false, err
	}
	for _, ord := range orders {
		if ord.Status != order.StatusDelivered {
			continue
		}
		for _, item := range ord.Items {
			if item.ProductID == productID {
				return true, nil
			}
		}
	}
	return false, nil
}
