package identity

import (
	"errors"

	"github.com/bissquit/job-board/internal/identity/jwt"
)

// Identity errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("user already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("email and password are required")
	ErrInvalidToken       = jwt.ErrInvalidToken
)
