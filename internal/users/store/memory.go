package store

import (
	"context"
	"fmt"
	"sync"

	"legalcheck/internal/sentinel"
	"legalcheck/internal/users/models"
	id "legalcheck/pkg/domain"
)

// InMemory stores users by id with a unique email index.
type InMemory struct {
	mu      sync.RWMutex
	users   map[id.UserID]*models.User
	byEmail map[string]id.UserID
}

func NewInMemory() *InMemory {
	return &InMemory{
		users:   make(map[id.UserID]*models.User),
		byEmail: make(map[string]id.UserID),
	}
}

// Create fails with sentinel.ErrAlreadyExists when the id or email is taken.
func (s *InMemory) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[u.ID]; exists {
		return fmt.Errorf("user %s: %w", u.ID, sentinel.ErrAlreadyExists)
	}
	if _, exists := s.byEmail[u.Email]; exists {
		return fmt.Errorf("email %s: %w", u.Email, sentinel.ErrAlreadyExists)
	}
	s.users[u.ID] = u.Clone()
	s.byEmail[u.Email] = u.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return u.Clone(), nil
}

func (s *InMemory) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.byEmail[email]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.users[userID].Clone(), nil
}

// Update applies fn to a working copy under the write lock. Email is not
// mutable through Update.
func (s *InMemory) Update(_ context.Context, userID id.UserID, fn func(*models.User) error) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.users[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	working := current.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	working.Email = current.Email
	s.users[userID] = working
	return working.Clone(), nil
}
