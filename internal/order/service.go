package order

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kashishh0311/quickbuyz-backend/internal/address"
	"github.com/kashishh0311/quickbuyz-backend/internal/cart"
	"github.com/kashishh0311/quickbuyz-backend/internal/pricing"
	"github.com/kashishh0311/quickbuyz-backend/internal/product"
)

// ServiceInterface is what the payment coordinator and handlers depend on.
type ServiceInterface interface {
	Create(userID, addressIndex int) (Order, error)
	GetByID(orderID int) (Order, error)
	ListByUser(userID int) ([]Order, error)
	ListAll() ([]Order, error)
	ListByStatus(status Status) ([]Order, error)
	UpdateStatus(orderID int, newStatus Status) (Order, error)
	UpdateDeliveryAddress(orderID, userID, addressIndex int) (Order, error)
	Delete(orderID int) error
}

type Service struct {
	repo      Repository
	carts     cart.ServiceInterface
	addresses address.ServiceInterface
	products  product.ServiceInterface
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, carts cart.ServiceInterface, addresses address.ServiceInterface, products product.ServiceInterface) *Service {
	return &Service{repo: repo, carts: carts, addresses: addresses, products: products}
}

// Create materialises the customer's cart into an immutable order snapshot.
// Line totals are re-rounded, the items total is recomputed from the
// snapshot rather than trusted from the cart, and the delivery charge and
// grand total come from the pricing tiers. The companion Pending payment is
// created by the repository in the same transaction. The cart is NOT
// cleared here; that happens on payment settlement.
func (s *Service) Create(userID, addressIndex int) (Order, error) {
	cartDoc, err := s.carts.GetCart(userID)
	if err != nil {
		return Order{}, err
	}
	if len(cartDoc.Items) == 0 {
		return Order{}, ErrEmptyCart
	}

	addr, err := s.addresses.GetByIndex(userID, addressIndex)
	if err != nil {
		if errors.Is(err, address.ErrNotFound) {
			return Order{}, ErrInvalidAddress
		}
		return Order{}, err
	}

	items := make([]Item, 0, len(cartDoc.Items))
	totals := make([]float64, 0, len(cartDoc.Items))
	for _, it := range cartDoc.Items {
		lineTotal := pricing.Round2(it.TotalPrice)
		items = append(items, Item{
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			TotalPrice: lineTotal,
		})
		totals = append(totals, lineTotal)
	}

	itemsTotal := pricing.SumLineTotals(totals)
	charges, totalOrderAmount := pricing.OrderTotal(itemsTotal)

	now := time.Now().UTC().Format(time.RFC3339)
	ord := Order{
		UserID:           userID,
		Items:            items,
		TotalOrderAmount: totalOrderAmount,
		Charges:          charges,
		Status:           StatusPending,
		DeliveryAddress: DeliveryAddress{
			Type:    addr.Type,
			Details: addr.Details,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ord)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("order: create failed")
		return Order{}, err
	}

	log.Info().Int("order_id", created.OrderID).Int("user_id", userID).
		Float64("total", created.TotalOrderAmount).Msg("order created")
	return created, nil
}

func (s *Service) GetByID(orderID int) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	return s.populate(ord), nil
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	orders, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.populateAll(orders), nil
}

func (s *Service) ListAll() ([]Order, error) {
	orders, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}
	return s.populateAll(orders), nil
}

func (s *Service) ListByStatus(status Status) ([]Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidTransition
	}
	orders, err := s.repo.ListByStatus(status)
	if err != nil {
		return nil, err
	}
	return s.populateAll(orders), nil
}

// UpdateStatus applies a lifecycle transition, rejecting moves the
// transition table does not allow. Terminal orders reject everything.
func (s *Service) UpdateStatus(orderID int, newStatus Status) (Order, error) {
	if !newStatus.Valid() {
		return Order{}, ErrInvalidTransition
	}

	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}

	if !CanTransition(ord.Status, newStatus) {
		log.Warn().Int("order_id", orderID).
			Str("from", string(ord.Status)).Str("to", string(newStatus)).
			Msg("order: rejected status transition")
		return Order{}, ErrInvalidTransition
	}

	return s.repo.UpdateStatus(orderID, newStatus, time.Now().UTC().Format(time.RFC3339))
}

// UpdateDeliveryAddress re-copies the address snapshot from the customer's
// address book. Terminal orders are immutable.
func (s *Service) UpdateDeliveryAddress(orderID, userID, addressIndex int) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if ord.UserID != userID {
		return Order{}, ErrNotFound
	}
	if ord.Status.Terminal() {
		return Order{}, ErrInvalidTransition
	}

	addr, err := s.addresses.GetByIndex(userID, addressIndex)
	if err != nil {
		if errors.Is(err, address.ErrNotFound) {
			return Order{}, ErrInvalidAddress
		}
		return Order{}, err
	}

	return s.repo.UpdateAddress(orderID, DeliveryAddress{
		Type:    addr.Type,
		Details: addr.Details,
	}, time.Now().UTC().Format(time.RFC3339))
}

func (s *Service) Delete(orderID int) error {
	return s.repo.Delete(orderID)
}

func (s *Service) populate(ord Order) Order {
	out := s.populateAll([]Order{ord})
	return out[0]
}

// populateAll attaches product summaries to order lines. Enrichment
// failures are logged and skipped; the orders themselves are intact.
func (s *Service) populateAll(orders []Order) []Order {
	idSet := map[int]struct{}{}
	for _, ord := range orders {
		for _, it := range ord.Items {
			idSet[it.ProductID] = struct{}{}
		}
	}
	if len(idSet) == 0 {
		return orders
	}

	ids := make([]int, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	products, err := s.products.ListByIDs(ids)
	if err != nil {
		log.Warn().Err(err).Msg("order: product enrichment failed")
		return orders
	}

	byID := make(map[int]product.Summary, len(products))
	for _, p := range products {
		byID[p.ID] = p.Summary()
	}
	for i := range orders {
		for j := range orders[i].Items {
			if summary, ok := byID[orders[i].Items[j].ProductID]; ok {
				s := summary
				orders[i].Items[j].Product = &s
			}
		}
	}
	return orders
}
