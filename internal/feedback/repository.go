package feedback

import "sync"

type Repository interface {
	Create(f Feedback) (Feedback, error)
	GetByUserAndProduct(userID, productID int) (Feedback, error)
	ListByProduct(productID int) ([]Feedback, error)
	ListAll() ([]Feedback, error)
	Delete(feedbackID int) error
}

// InMemoryRepository backs tests and local scenarios.
type InMemoryRepository struct {
	mu        sync.RWMutex
	feedbacks map[int]Feedback
	nextID    int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{feedbacks: make(map[int]Feedback), nextID: 1}
}

func (r *InMemoryRepository) Create(f Feedback) (Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.feedbacks {
		if existing.UserID == f.UserID && existing.ProductID == f.ProductID {
			return Feedback{}, ErrAlreadyExists
		}
	}

	f.FeedbackID = r.nextID
	r.nextID++
	r.feedbacks[f.FeedbackID] = f
	return f, nil
}

func (r *InMemoryRepository) GetByUserAndProduct(userID, productID int) (Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.feedbacks {
		if f.UserID == userID && f.ProductID == productID {
			return f, nil
		}
	}
	return Feedback{}, ErrNotFound
}

func (r *InMemoryRepository) ListByProduct(productID int) ([]Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Feedback{}
	for id := 1; id < r.nextID; id++ {
		if f, ok := r.feedbacks[id]; ok && f.ProductID == productID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListAll() ([]Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Feedback{}
	for id := 1; id < r.nextID; id++ {
		if f, ok := r.feedbacks[id]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Delete(feedbackID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.feedbacks[feedbackID]; !ok {
		return ErrNotFound
	}
	delete(r.feedbacks, feedbackID)
	return nil
}
