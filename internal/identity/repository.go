package identity

import (
	"context"

	"github.com/bissquit/job-board/internal/domain"
)

// Repository defines the interface for credential storage.
//
// CreateUser must enforce email uniqueness atomically and return ErrEmailExists on a
// duplicate. Lookups return ErrUserNotFound when nothing matches.
type Repository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
