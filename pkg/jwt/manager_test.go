package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GenerateAndVerify(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.Generate("admin", "admin", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.True(t, claims.IsAdmin())
}

func TestManager_WrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).Generate("admin", "admin", "admin")
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_ExpiredToken(t *testing.T) {
	// NewManager treats non-positive expiry as the 24h default, so build an
	// already-expired manager directly.
	m := &Manager{secretKey: []byte("test-secret"), expiry: -time.Minute}

	token, err := m.Generate("admin", "admin", "admin")
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestManager_Garbage(t *testing.T) {
	_, err := NewManager("test-secret", time.Hour).Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaims_IsAdmin(t *testing.T) {
	assert.True(t, (&Claims{Role: "admin"}).IsAdmin())
	assert.False(t, (&Claims{Role: "editor"}).IsAdmin())
	assert.False(t, (&Claims{}).IsAdmin())
}
