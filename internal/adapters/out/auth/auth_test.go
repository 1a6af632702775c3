package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTIssuer(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		issuer, err := NewJWTIssuer("s3cret", time.Hour)
		require.NoError(t, err)

		token, err := issuer.Issue("ana@example.com")
		require.NoError(t, err)

		subject, err := issuer.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", subject)
	})

	t.Run("rejects foreign signature", func(t *testing.T) {
		a, _ := NewJWTIssuer("one", time.Hour)
		b, _ := NewJWTIssuer("two", time.Hour)

		token, err := a.Issue("ana@example.com")
		require.NoError(t, err)

		_, err = b.Parse(token)
		require.Error(t, err)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		issuer, _ := NewJWTIssuer("s3cret", time.Minute)
		issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }

		token, err := issuer.Issue("ana@example.com")
		require.NoError(t, err)

		_, err = issuer.Parse(token)
		require.Error(t, err)
	})

	t.Run("requires secret", func(t *testing.T) {
		_, err := NewJWTIssuer("", time.Hour)
		require.ErrorIs(t, err, ErrSecretIsRequired)
	})

	t.Run("default ttl", func(t *testing.T) {
		issuer, err := NewJWTIssuer("s3cret", 0)
		require.NoError(t, err)
		assert.Equal(t, DefaultTokenTTL, issuer.ttl)
	})
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("123@qtu")
	require.NoError(t, err)

	assert.NotEqual(t, "123@qtu", hash)
	assert.True(t, h.Compare(hash, "123@qtu"))
	assert.False(t, h.Compare(hash, "wrong"))

	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).cost)
}
