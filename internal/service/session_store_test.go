package service

import (
	"context"
	"testing"
	"time"

	"ava-assistant/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewSessionStore(client, 30*time.Minute), mr
}

func TestSessionStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	session := &entity.BookingSession{
		ID:        "9f2c1c6e-1111-2222-3333-444455556666",
		State:     entity.StateChooseMode,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Save(ctx, session))

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, entity.StateChooseMode, got.State)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestSessionStoreGetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStoreExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	session := &entity.BookingSession{ID: "expiring", State: entity.StateGreeting}
	require.NoError(t, store.Save(ctx, session))

	mr.FastForward(31 * time.Minute)

	_, err := store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStoreDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	session := &entity.BookingSession{ID: "deleted", State: entity.StateEnded}
	require.NoError(t, store.Save(ctx, session))
	require.NoError(t, store.Delete(ctx, session.ID))

	_, err := store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
