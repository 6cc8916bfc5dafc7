// Package identity provides user registration, login and token validation.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bissquit/job-board/internal/domain"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenAuthenticator issues and verifies bearer tokens.
type TokenAuthenticator interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}

// Service implements identity business logic.
type Service struct {
	repo   Repository
	hasher PasswordHasher
	tokens TokenAuthenticator
}

// NewService creates a new identity service.
func NewService(repo Repository, hasher PasswordHasher, tokens TokenAuthenticator) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

// RegisterInput holds data for registration.
type RegisterInput struct {
	Email    string
	Password string
}

// LoginInput holds data for login.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is returned by a successful registration or login.
type AuthResult struct {
	User  *domain.User
	Token string
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user and issues a token for it.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	_, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:    email,
		Password: hash,
	}

	// The store re-checks uniqueness, so a concurrent registration still fails here.
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	recordIdentityOperation("register", "success")

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Login checks credentials and issues a token. Unknown email and wrong password both
// yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.repo.GetUserByEmail(ctx, NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			recordIdentityOperation("login", "rejected")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !s.hasher.Verify(input.Password, user.Password) {
		recordIdentityOperation("login", "rejected")
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	recordIdentityOperation("login", "success")

	return &AuthResult{User: user, Token: token}, nil
}

// ValidateToken verifies a bearer token and returns the user ID it was issued to.
func (s *Service) ValidateToken(_ context.Context, token string) (string, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return "", ErrInvalidToken
	}
	return userID, nil
}

// GetUserByID returns a user by ID.
func (s *Service) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetUserByID(ctx, id)
}
