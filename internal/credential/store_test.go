package credential

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	creds, err := store.Get(ctx)
	require.NoError(t, err)
	assert.False(t, creds.HasAccess())

	require.NoError(t, store.Set(ctx, Credentials{AccessToken: "T1", RefreshToken: "R1"}))
	creds, _ = store.Get(ctx)
	assert.Equal(t, "T1", creds.AccessToken)
	assert.True(t, creds.HasRefresh())

	require.NoError(t, store.Clear(ctx))
	creds, _ = store.Get(ctx)
	assert.Equal(t, Credentials{}, creds)
}

func TestExpiresAtReadsJWTExpiry(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "staff-1",
		"exp": exp.Unix(),
	}).SignedString([]byte("any-secret"))
	require.NoError(t, err)

	got := ExpiresAt(token)
	require.NotNil(t, got)
	assert.True(t, exp.Equal(*got))
}

func TestExpiresAtOpaqueToken(t *testing.T) {
	assert.Nil(t, ExpiresAt(""))
	assert.Nil(t, ExpiresAt("opaque-token"))
}
