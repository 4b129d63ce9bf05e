package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidCartID is returned for ids a persister cannot key on
var ErrInvalidCartID = errors.New("invalid cart id")

// Persister loads and saves carts by id. Load returns an empty cart when
// nothing is stored under id.
type Persister interface {
	Load(ctx context.Context, id string) (*Cart, error)
	Save(ctx context.Context, id string, cart *Cart) error
	Delete(ctx context.Context, id string) error
}

// Store applies cart mutations one at a time and persists the result after
// every change
type Store struct {
	mu        sync.Mutex
	persister Persister
}

// NewStore creates a store over persister
func NewStore(persister Persister) *Store {
	return &Store{persister: persister}
}

// Get returns the current cart for id
func (s *Store) Get(ctx context.Context, id string) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.persister.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return c, nil
}

// Update loads the cart for id, applies mutate and saves the result. An
// emptied cart is deleted rather than stored.
func (s *Store) Update(ctx context.Context, id string, mutate func(*Cart)) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.persister.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	mutate(c)

	if c.Len() == 0 {
		if err := s.persister.Delete(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to delete cart: %w", err)
		}
		return c, nil
	}

	if err := s.persister.Save(ctx, id, c); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return c, nil
}
