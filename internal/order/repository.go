package order

import (
	"sort"
	"sync"
)

type Repository interface {
	// Create persists the order and its companion Pending payment record
	// (method Digital, amount = TotalOrderAmount) atomically.
	Create(ord Order) (Order, error)
	GetByID(orderID int) (Order, error)
	ListByUser(userID int) ([]Order, error)
	ListAll() ([]Order, error)
	ListByStatus(status Status) ([]Order, error)
	UpdateStatus(orderID int, status Status, now string) (Order, error)
	UpdateAddress(orderID int, addr DeliveryAddress, now string) (Order, error)
	Delete(orderID int) error
}

// InMemoryRepository backs tests. Companion payment records are seeded by
// the tests themselves; only the postgres implementation creates them.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage map[int]Order
	nextID  int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{storage: make(map[int]Order), nextID: 1}
}

func (r *InMemoryRepository) Create(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ord.OrderID = r.nextID
	r.nextID++
	r.storage[ord.OrderID] = cloneOrder(ord)
	return ord, nil
}

func (r *InMemoryRepository) GetByID(orderID int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ord, ok := r.storage[orderID]
	if !ok {
		return Order{}, ErrNotFound
	}
	return cloneOrder(ord), nil
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0)
	for _, ord := range r.storage {
		if ord.UserID == userID {
			out = append(out, cloneOrder(ord))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderID < out[j].OrderID })
	return out, nil
}

func (r *InMemoryRepository) ListAll() ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0, len(r.storage))
	for _, ord := range r.storage {
		out = append(out, cloneOrder(ord))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderID < out[j].OrderID })
	return out, nil
}

func (r *InMemoryRepository) ListByStatus(status Status) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0)
	for _, ord := range r.storage {
		if ord.Status == status {
			out = append(out, cloneOrder(ord))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderID < out[j].OrderID })
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(orderID int, status Status, now string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ord, ok := r.storage[orderID]
	if !ok {
		return Order{}, ErrNotFound
	}
	ord.Status = status
	ord.UpdatedAt = now
	r.storage[orderID] = ord
	return cloneOrder(ord), nil
}

func (r *InMemoryRepository) UpdateAddress(orderID int, addr DeliveryAddress, now string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ord, ok := r.storage[orderID]
	if !ok {
		return Order{}, ErrNotFound
	}
	ord.DeliveryAddress = addr
	ord.UpdatedAt = now
	r.storage[orderID] = ord
	return cloneOrder(ord), nil
}

func (r *InMemoryRepository) Delete(orderID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.storage[orderID]; !ok {
		return ErrNotFound
	}
	delete(r.storage, orderID)
	return nil
}

func cloneOrder(ord Order) Order {
	items := make([]Item, len(ord.Items))
	copy(items, ord.Items)
	ord.Items = items
	return ord
}
