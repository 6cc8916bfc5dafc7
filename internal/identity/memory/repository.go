// Package memory provides an in-process identity repository.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bissquit/job-board/internal/domain"
	"github.com/bissquit/job-board/internal/identity"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// Repository implements identity.Repository with maps guarded by a mutex. The email
// index is keyed by the case-folded address.
type Repository struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string
}

func emailKey(email string) string {
	return cases.Fold().String(email)
}

// NewRepository creates an empty repository.
func NewRepository() *Repository {
	return &Repository{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

// CreateUser stores a user, rejecting a taken email.
func (r *Repository) CreateUser(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(user.Email)
	if _, ok := r.byEmail[key]; ok {
		return identity.ErrEmailExists
	}

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()

	r.byID[user.ID] = *user
	r.byEmail[key] = user.ID
	return nil
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, identity.ErrUserNotFound
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email.
func (r *Repository) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, identity.ErrUserNotFound
	}
	user := r.byID[id]
	return &user, nil
}
