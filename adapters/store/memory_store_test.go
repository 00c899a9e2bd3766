package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layer-3/wombat/core"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	session := &core.Session{
		ID:       "s1",
		AppName:  "testdapp",
		Accounts: []core.Account{{Name: "alice", ChainID: "aa"}},
	}
	require.NoError(t, s.SaveSession(ctx, session, time.Minute))

	// Mutating the caller's copy must not leak into the store.
	session.Accounts[0].Name = "mallory"

	got, err := s.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "testdapp", got.AppName)
	assert.Equal(t, "alice", got.Accounts[0].Name)

	require.NoError(t, s.DeleteSession(ctx, "s1"))
	_, err = s.GetSession(ctx, "s1")
	assert.ErrorIs(t, err, core.ErrSessionNotFound)

	require.NoError(t, s.DeleteSession(ctx, "unknown"))
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	s := &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      func() time.Time { return now },
	}

	require.NoError(t, s.SaveSession(ctx, &core.Session{ID: "short"}, time.Second))
	require.NoError(t, s.SaveSession(ctx, &core.Session{ID: "long"}, time.Hour))

	now = now.Add(time.Minute)

	_, err := s.GetSession(ctx, "short")
	assert.ErrorIs(t, err, core.ErrSessionNotFound)

	_, err = s.GetSession(ctx, "long")
	assert.NoError(t, err)
}
