package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sweetshop/internal/models"

	"github.com/google/uuid"
)

// InMemoryUserRepository is an in-memory implementation of UserRepository.
type InMemoryUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewInMemoryUserRepository creates a new instance of InMemoryUserRepository.
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{users: make(map[string]models.User)}
}

// Create adds a user, rejecting taken usernames and emails.
func (r *InMemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("user %s: %w", user.Username, ErrDuplicate)
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

// GetByUsername returns the user with the given username.
func (r *InMemoryUserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Username == username }, "username "+username)
}

// GetByEmail returns the user with the given email.
func (r *InMemoryUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email }, "email "+email)
}

// GetByID returns the user with the given ID.
func (r *InMemoryUserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.ID == id }, "ID "+id)
}

func (r *InMemoryUserRepository) find(match func(models.User) bool, what string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user with %s: %w", what, ErrNotFound)
}
