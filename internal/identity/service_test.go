package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/bissquit/job-board/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepository implements Repository for testing.
type mockRepository struct {
	users          map[string]*domain.User
	createUserErr  error
	getUserByEmail func(email string) (*domain.User, error)
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *mockRepository) CreateUser(_ context.Context, user *domain.User) error {
	if m.createUserErr != nil {
		return m.createUserErr
	}
	user.ID = "test-user-id"
	m.users[user.Email] = user
	return nil
}

func (m *mockRepository) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	if m.getUserByEmail != nil {
		return m.getUserByEmail(email)
	}
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, ErrUserNotFound
}

// mockHasher prefixes the plaintext so hashes are predictable.
type mockHasher struct {
	err error
}

func (m *mockHasher) Hash(plaintext string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "hashed:" + plaintext, nil
}

func (m *mockHasher) Verify(plaintext, hash string) bool {
	return hash == "hashed:"+plaintext
}

// mockTokens issues "token-<id>" and verifies only that form.
type mockTokens struct {
	issueErr error
}

func (m *mockTokens) Issue(userID string) (string, error) {
	if m.issueErr != nil {
		return "", m.issueErr
	}
	return "token-" + userID, nil
}

func (m *mockTokens) Verify(token string) (string, error) {
	if len(token) > len("token-") && token[:6] == "token-" {
		return token[6:], nil
	}
	return "", errors.New("signature is invalid")
}

func newTestService(repo *mockRepository) *Service {
	return NewService(repo, &mockHasher{}, &mockTokens{})
}

func TestRegister_Success(t *testing.T) {
	// Arrange
	repo := newMockRepository()
	service := newTestService(repo)

	// Act
	result, err := service.Register(context.Background(), RegisterInput{
		Email:    "  Test@Example.com ",
		Password: "password123",
	})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "test@example.com", result.User.Email)
	assert.Equal(t, "hashed:password123", result.User.Password)
	assert.Equal(t, "token-test-user-id", result.Token)
}

func TestRegister_EmailAlreadyExists(t *testing.T) {
	// Arrange
	repo := newMockRepository()
	service := newTestService(repo)

	_, err := service.Register(context.Background(), RegisterInput{
		Email:    "existing@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	// Act
	result, err := service.Register(context.Background(), RegisterInput{
		Email:    "existing@example.com",
		Password: "password456",
	})

	// Assert
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestRegister_StoreRejectsDuplicate(t *testing.T) {
	// Arrange: lookup misses (concurrent insert), unique index fires on create
	repo := newMockRepository()
	repo.createUserErr = ErrEmailExists
	service := newTestService(repo)

	// Act
	result, err := service.Register(context.Background(), RegisterInput{
		Email:    "race@example.com",
		Password: "password123",
	})

	// Assert
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestRegister_CreateUserFails(t *testing.T) {
	// Arrange
	repo := newMockRepository()
	repo.createUserErr = errors.New("database error")
	service := newTestService(repo)

	// Act
	result, err := service.Register(context.Background(), RegisterInput{
		Email:    "test@example.com",
		Password: "password123",
	})

	// Assert
	assert.Nil(t, result)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailExists)
}

func TestRegister_HashFails(t *testing.T) {
	// Arrange
	repo := newMockRepository()
	service := NewService(repo, &mockHasher{err: errors.New("out of memory")}, &mockTokens{})

	// Act
	result, err := service.Register(context.Background(), RegisterInput{
		Email:    "test@example.com",
		Password: "password123",
	})

	// Assert
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Empty(t, repo.users, "user must not be stored when hashing fails")
}

func TestRegister_LookupFails(t *testing.T) {
	repo := newMockRepository()
	repo.getUserByEmail = func(_ string) (*domain.User, error) {
		return nil, errors.New("connection refused")
	}
	service := newTestService(repo)

	result, err := service.Register(context.Background(), RegisterInput{
		Email:    "test@example.com",
		Password: "password123",
	})

	assert.Nil(t, result)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailExists)
}

func TestRegister_EmptyInput(t *testing.T) {
	service := newTestService(newMockRepository())

	_, err := service.Register(context.Background(), RegisterInput{Email: " ", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	repo := newMockRepository()
	service := newTestService(repo)

	_, err := service.Register(context.Background(), RegisterInput{
		Email:    "user@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		result, err := service.Login(context.Background(), LoginInput{
			Email:    "USER@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.Equal(t, "token-test-user-id", result.Token)
		assert.Equal(t, "user@example.com", result.User.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		result, err := service.Login(context.Background(), LoginInput{
			Email:    "user@example.com",
			Password: "wrong",
		})
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email gives the same error", func(t *testing.T) {
		result, err := service.Login(context.Background(), LoginInput{
			Email:    "nobody@example.com",
			Password: "password123",
		})
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLogin_IssueFails(t *testing.T) {
	repo := newMockRepository()
	repo.users["user@example.com"] = &domain.User{ID: "u1", Email: "user@example.com", Password: "hashed:pw"}
	service := NewService(repo, &mockHasher{}, &mockTokens{issueErr: errors.New("sign failed")})

	result, err := service.Login(context.Background(), LoginInput{Email: "user@example.com", Password: "pw"})

	assert.Nil(t, result)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken(t *testing.T) {
	service := newTestService(newMockRepository())

	userID, err := service.ValidateToken(context.Background(), "token-u42")
	require.NoError(t, err)
	assert.Equal(t, "u42", userID)

	userID, err = service.ValidateToken(context.Background(), "forged")
	assert.Empty(t, userID)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
