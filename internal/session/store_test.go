package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateResolveDelete(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Hour)
	userID := uuid.New()

	id := store.Create(userID)
	require.NotEmpty(t, id)

	got, ok := store.Resolve(id)
	require.True(t, ok)
	assert.Equal(t, userID, got)

	store.Delete(id)
	_, ok = store.Resolve(id)
	assert.False(t, ok)

	// Deleting again is a no-op.
	store.Delete(id)
}

func TestStore_Expiry(t *testing.T) {
	t.Parallel()

	store := NewStore(-time.Second)
	id := store.Create(uuid.New())

	_, ok := store.Resolve(id)
	assert.False(t, ok, "expired sessions must not resolve")
}

func TestStore_UnknownSession(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Hour)
	_, ok := store.Resolve("no-such-session")
	assert.False(t, ok)
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec("secret", time.Hour)

	token, err := codec.Encode("sess-123")
	require.NoError(t, err)

	id, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-123", id)
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewTokenCodec("right", time.Hour).Encode("sess-123")
	require.NoError(t, err)

	_, err = NewTokenCodec("wrong", time.Hour).Decode(token)
	require.Error(t, err)
}

func TestTokenCodec_Expired(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec("secret", -time.Minute)
	token, err := codec.Encode("sess-123")
	require.NoError(t, err)

	_, err = codec.Decode(token)
	require.Error(t, err)
}

func TestTokenCodec_Malformed(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec("secret", time.Hour)
	_, err := codec.Decode("not.a.token")
	require.Error(t, err)
}
