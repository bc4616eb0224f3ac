package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/GoArmGo/TextForge/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserStorage mimics the unique-index behavior of the real storage.
type fakeUserStorage struct {
	mu    sync.Mutex
	users map[string]domain.User // keyed by email
}

func newFakeUserStorage() *fakeUserStorage {
	return &fakeUserStorage{users: make(map[string]domain.User)}
}

func (f *fakeUserStorage) SaveUser(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[user.Email]; exists {
		return domain.ErrConflict
	}
	for _, u := range f.users {
		if u.Username == user.Username {
			return domain.ErrConflict
		}
	}
	f.users[user.Email] = *user
	return nil
}

func (f *fakeUserStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUserStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	users := newFakeUserStorage()
	uc := NewAccountUseCase(users, testLogger())

	id, err := uc.Register(context.Background(), "alice", "a@x.com", "pw123")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	stored, err := users.GetUserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Username)
	assert.NotEqual(t, "pw123", stored.PasswordHash, "plaintext password must never be stored")
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	users := newFakeUserStorage()
	uc := NewAccountUseCase(users, testLogger())

	_, err := uc.Register(context.Background(), "alice", "a@x.com", "pw123")
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), "alice2", "a@x.com", "other")
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegister_MissingFields(t *testing.T) {
	t.Parallel()

	uc := NewAccountUseCase(newFakeUserStorage(), testLogger())

	cases := []struct {
		name                      string
		username, email, password string
	}{
		{"no username", "", "a@x.com", "pw"},
		{"no email", "alice", "", "pw"},
		{"no password", "alice", "a@x.com", ""},
		{"whitespace username", "  ", "a@x.com", "pw"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Register(context.Background(), tc.username, tc.email, tc.password)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	users := newFakeUserStorage()
	uc := NewAccountUseCase(users, testLogger())

	_, err := uc.Register(context.Background(), "alice", "a@x.com", "pw123")
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		user, err := uc.Authenticate(context.Background(), "a@x.com", "pw123")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := uc.Authenticate(context.Background(), "a@x.com", "wrong")
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := uc.Authenticate(context.Background(), "nobody@x.com", "pw123")
		// Same error as a wrong password, so callers cannot enumerate accounts.
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
