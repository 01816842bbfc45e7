package cart

import "sync"

type Repository interface {
	// Get returns the customer's cart or ErrNotFound if none exists yet.
	Get(userID int) (Cart, error)
	// GetOrCreate returns the customer's cart, creating an empty one on
	// first use.
	GetOrCreate(userID int, now string) (Cart, error)
	// Save persists the full cart document (items plus total) in one write.
	Save(c Cart) (Cart, error)
	// Clear empties items and zeroes the total, keeping the row.
	Clear(userID int, now string) (Cart, error)
}

// InMemoryRepository backs tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	carts  map[int]Cart
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{carts: make(map[int]Cart), nextID: 1}
}

func (r *InMemoryRepository) Get(userID int) (Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.carts[userID]
	if !ok {
		return Cart{}, ErrNotFound
	}
	return cloneCart(c), nil
}

func (r *InMemoryRepository) GetOrCreate(userID int, now string) (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.carts[userID]; ok {
		return cloneCart(c), nil
	}

	c := Cart{
		CartID:    r.nextID,
		UserID:    userID,
		Items:     []Item{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.nextID++
	r.carts[userID] = c
	return cloneCart(c), nil
}

func (r *InMemoryRepository) Save(c Cart) (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[c.UserID]; !ok {
		return Cart{}, ErrNotFound
	}
	r.carts[c.UserID] = cloneCart(c)
	return c, nil
}

func (r *InMemoryRepository) Clear(userID int, now string) (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.carts[userID]
	if !ok {
		return Cart{}, ErrNotFound
	}
	c.Items = []Item{}
	c.TotalCartAmount = 0
	c.UpdatedAt = now
	r.carts[userID] = c
	return cloneCart(c), nil
}

func cloneCart(c Cart) Cart {
	items := make([]Item, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}
