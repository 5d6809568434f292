package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajagopika181204/techstore/internal/core/domain"
)

// Mock UserRepository
type mockUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*domain.User), nextID: 1}
}

func (m *mockUserRepo) CreateUser(ctx context.Context, username, email, passwordHash string) (int64, error) {
	for _, u := range m.users {
		if u.Username == username || u.Email == email {
			return 0, domain.ErrUserExists
		}
	}
	id := m.nextID
	m.nextID++
	m.users[username] = &domain.User{ID: id, Username: username, Email: email, PasswordHash: passwordHash}
	return id, nil
}

func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func TestSignupLoginRoundTrip(t *testing.T) {
	svc := NewAuthService(newMockUserRepo(), []byte("test-secret"), time.Hour)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "gopika", "gopika@x.com", "hunter2"))

	token, err := svc.Login(ctx, "gopika", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), userID)
}

func TestSignup_MissingFields(t *testing.T) {
	svc := NewAuthService(newMockUserRepo(), []byte("test-secret"), time.Hour)

	err := svc.Signup(context.Background(), "gopika", "", "hunter2")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSignup_DuplicateUser(t *testing.T) {
	svc := NewAuthService(newMockUserRepo(), []byte("test-secret"), time.Hour)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "gopika", "gopika@x.com", "hunter2"))

	err := svc.Signup(ctx, "gopika", "other@x.com", "hunter2")
	require.ErrorIs(t, err, domain.ErrUserExists)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := NewAuthService(newMockUserRepo(), []byte("test-secret"), time.Hour)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "gopika", "gopika@x.com", "hunter2"))

	_, err := svc.Login(ctx, "gopika", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := NewAuthService(newMockUserRepo(), []byte("test-secret"), time.Hour)

	_, err := svc.Login(context.Background(), "nobody", "hunter2")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestVerifyToken_Expired(t *testing.T) {
	repo := newMockUserRepo()
	ctx := context.Background()

	issuer := NewAuthService(repo, []byte("test-secret"), -time.Minute)
	require.NoError(t, issuer.Signup(ctx, "gopika", "gopika@x.com", "hunter2"))

	token, err := issuer.Login(ctx, "gopika", "hunter2")
	require.NoError(t, err)

	_, err = issuer.VerifyToken(token)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	repo := newMockUserRepo()
	ctx := context.Background()

	issuer := NewAuthService(repo, []byte("secret-a"), time.Hour)
	require.NoError(t, issuer.Signup(ctx, "gopika", "gopika@x.com", "hunter2"))

	token, err := issuer.Login(ctx, "gopika", "hunter2")
	require.NoError(t, err)

	verifier := NewAuthService(repo, []byte("secret-b"), time.Hour)
	_, err = verifier.VerifyToken(token)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
