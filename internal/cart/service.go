package cart

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kashishh0311/quickbuyz-backend/internal/pricing"
	"github.com/kashishh0311/quickbuyz-backend/internal/product"
)

// ServiceInterface is what the order flow depends on to read and snapshot
// carts at checkout.
type ServiceInterface interface {
	AddItem(userID, productID, quantity int) (Cart, error)
	SetQuantity(userID, productID, quantity int) (Cart, error)
	GetCart(userID int) (Cart, error)
	Clear(userID int) (Cart, error)
}

type Service struct {
	repo     Repository
	products product.ServiceInterface
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, products product.ServiceInterface) *Service {
	return &Service{repo: repo, products: products}
}

// AddItem appends a new line for the product. Re-adding a product that
// already has a line is rejected rather than merged; clients change amounts
// through SetQuantity. The cart total is advanced by the new line only.
func (s *Service) AddItem(userID, productID, quantity int) (Cart, error) {
	if quantity < 1 {
		return Cart{}, errors.New("quantity must be a positive integer")
	}

	p, err := s.products.GetByID(productID)
	if err != nil {
		return Cart{}, product.ErrNotFound
	}
	if !p.IsAvailable {
		return Cart{}, product.ErrNotFound
	}
	if quantity > p.Stock {
		return Cart{}, ErrInsufficientStock
	}

	now := time.Now().UTC().Format(time.RFC3339)
	c, err := s.repo.GetOrCreate(userID, now)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("cart: get-or-create failed")
		return Cart{}, err
	}

	if c.findItem(productID) != nil {
		return Cart{}, ErrDuplicateItem
	}

	lineTotal := pricing.LineTotal(p.Price, quantity)
	c.Items = append(c.Items, Item{
		ProductID:  productID,
		Quantity:   quantity,
		TotalPrice: lineTotal,
	})
	c.TotalCartAmount = pricing.Round2(c.TotalCartAmount + lineTotal)
	c.UpdatedAt = now

	saved, err := s.repo.Save(c)
	if err != nil {
		return Cart{}, err
	}
	return s.populate(saved)
}

// SetQuantity updates a line's quantity, removing it entirely when the new
// quantity is zero or below. The cart total is recomputed from the full item
// list so repeated updates cannot drift.
func (s *Service) SetQuantity(userID, productID, quantity int) (Cart, error) {
	c, err := s.repo.Get(userID)
	if err != nil {
		return Cart{}, err
	}

	p, err := s.products.GetByID(productID)
	if err != nil {
		return Cart{}, product.ErrNotFound
	}
	if !p.IsAvailable {
		return Cart{}, product.ErrNotFound
	}
	if quantity > p.Stock {
		return Cart{}, ErrInsufficientStock
	}

	item := c.findItem(productID)
	if item == nil {
		return Cart{}, ErrItemNotFound
	}

	if quantity <= 0 {
		c.removeItem(productID)
	} else {
		item.Quantity = quantity
		item.TotalPrice = pricing.LineTotal(p.Price, quantity)
	}

	totals := make([]float64, 0, len(c.Items))
	for _, it := range c.Items {
		totals = append(totals, it.TotalPrice)
	}
	c.TotalCartAmount = pricing.SumLineTotals(totals)
	c.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	saved, err := s.repo.Save(c)
	if err != nil {
		return Cart{}, err
	}
	return s.populate(saved)
}

func (s *Service) GetCart(userID int) (Cart, error) {
	c, err := s.repo.Get(userID)
	if err != nil {
		return Cart{}, err
	}
	return s.populate(c)
}

func (s *Service) Clear(userID int) (Cart, error) {
	return s.repo.Clear(userID, time.Now().UTC().Format(time.RFC3339))
}

// populate attaches product summaries to the cart lines for API responses.
func (s *Service) populate(c Cart) (Cart, error) {
	if len(c.Items) == 0 {
		return c, nil
	}

	ids := make([]int, 0, len(c.Items))
	for _, it := range c.Items {
		ids = append(ids, it.ProductID)
	}

	products, err := s.products.ListByIDs(ids)
	if err != nil {
		// the cart itself is intact; log and return it unpopulated
		log.Warn().Err(err).Int("user_id", c.UserID).Msg("cart: product enrichment failed")
		return c, nil
	}

	byID := make(map[int]product.Summary, len(products))
	for _, p := range products {
		byID[p.ID] = p.Summary()
	}
	for i := range c.Items {
		if summary, ok := byID[c.Items[i].ProductID]; ok {
			s := summary
			c.Items[i].Product = &s
		}
	}
	return c, nil
}
