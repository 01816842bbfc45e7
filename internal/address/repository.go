package address

import "sync"

type Repository interface {
	// List returns the user's addresses ordered by addressID. Checkout
	// selects delivery addresses by position in this exact ordering.
	List(userID int) ([]Address, error)
	Add(a Address) (Address, error)
	Update(userID, addressID int, a Address) (Address, error)
	Delete(userID, addressID int) error
}

// InMemoryRepository backs tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Address
	nextID  int
}

func NewInMemoryRepository(seed []Address) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Address, 0, len(seed)), nextID: 1}
	maxID := 0
	for _, a := range seed {
		r.storage = append(r.storage, a)
		if a.AddressID > maxID {
			maxID = a.AddressID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List(userID int) ([]Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Address, 0)
	for _, a := range r.storage {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	// storage is append-only per user, so insertion order matches id order
	return out, nil
}

func (r *InMemoryRepository) Add(a Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.AddressID = r.nextID
	r.nextID++
	r.storage = append(r.storage, a)
	return a, nil
}

func (r *InMemoryRepository) Update(userID, addressID int, a Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, cur := range r.storage {
		if cur.UserID == userID && cur.AddressID == addressID {
			a.AddressID = addressID
			a.UserID = userID
			a.CreatedAt = cur.CreatedAt
			r.storage[i] = a
			return a, nil
		}
	}
	return Address{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(userID, addressID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, cur := range r.storage {
		if cur.UserID == userID && cur.AddressID == addressID {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
