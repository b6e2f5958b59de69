package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"legalcheck/internal/person/models"
	"legalcheck/internal/sentinel"
	id "legalcheck/pkg/domain"
)

// InMemory keeps persons in a map guarded by a RWMutex. Records are cloned
// on the way in and out so callers never share memory with the store.
type InMemory struct {
	mu      sync.RWMutex
	persons map[id.PersonID]*models.Person
}

func NewInMemory() *InMemory {
	return &InMemory{persons: make(map[id.PersonID]*models.Person)}
}

func (s *InMemory) Create(_ context.Context, p *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.persons[p.ID]; exists {
		return fmt.Errorf("person %s: %w", p.ID, sentinel.ErrAlreadyExists)
	}
	s.persons[p.ID] = p.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, personID id.PersonID) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.persons[personID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return p.Clone(), nil
}

// ListByOwner returns the owner's persons, oldest first.
func (s *InMemory) ListByOwner(_ context.Context, owner id.UserID) ([]*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Person
	for _, p := range s.persons {
		if p.OwnerID == owner {
			out = append(out, p.Clone())
		}
	}
	slices.SortFunc(out, func(a, b *models.Person) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return compareIDs(a.ID, b.ID)
	})
	return out, nil
}

// Update applies fn to a working copy under the write lock and stores the
// copy only when fn succeeds.
func (s *InMemory) Update(_ context.Context, personID id.PersonID, fn func(*models.Person) error) (*models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.persons[personID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	working := current.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	s.persons[personID] = working
	return working.Clone(), nil
}

func compareIDs(a, b id.PersonID) int {
	switch as, bs := a.String(), b.String(); {
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}
