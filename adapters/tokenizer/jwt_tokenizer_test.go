package tokenizer

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layer-3/wombat/core"
)

func newKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	return key
}

func TestSessionToken(t *testing.T) {
	tok := NewJWTTokenizer(newKey(t))

	now := time.Now().Truncate(time.Second)
	session := &core.Session{
		ID:      "session-1",
		AppName: "testdapp",
		Accounts: []core.Account{
			{Name: "alice", Authority: "active", PublicKey: "EOS6MRy", ChainID: "aa"},
			{Name: "bob", Authority: "owner", PublicKey: "EOS7abc", ChainID: "bb"},
		},
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}

	token, err := tok.SessionToToken(session)
	require.NoError(t, err)

	got, err := tok.TokenToSession(token)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, session.AppName, got.AppName)
	assert.True(t, session.ExpiresAt.Equal(got.ExpiresAt))
	require.Len(t, got.Accounts, 2)
	assert.Equal(t, "alice", got.Accounts[0].Name)
	assert.Equal(t, "bb", got.Accounts[1].ChainID)
}

func TestSessionTokenRejected(t *testing.T) {
	tok := NewJWTTokenizer(newKey(t))
	now := time.Now()

	t.Run("expired", func(t *testing.T) {
		token, err := tok.SessionToToken(&core.Session{ID: "x", IssuedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)})
		require.NoError(t, err)

		_, err = tok.TokenToSession(token)
		assert.ErrorIs(t, err, core.ErrTokenExpired)
	})

	t.Run("other key", func(t *testing.T) {
		other := NewJWTTokenizer(newKey(t))
		token, err := other.SessionToToken(&core.Session{ID: "x", IssuedAt: now, ExpiresAt: now.Add(time.Hour)})
		require.NoError(t, err)

		_, err = tok.TokenToSession(token)
		assert.ErrorIs(t, err, core.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tok.TokenToSession("not-a-jwt")
		assert.ErrorIs(t, err, core.ErrInvalidToken)
	})
}
