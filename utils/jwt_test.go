package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("access", "refresh", time.Hour, 24*time.Hour)

	access, err := tm.SignAccess(42)
	require.NoError(t, err)
	claims, err := tm.ParseAccess(access)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)

	refresh, err := tm.SignRefresh(42)
	require.NoError(t, err)
	claims, err = tm.ParseRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestTokenManager_KindsAreNotInterchangeable(t *testing.T) {
	tm := NewTokenManager("access", "refresh", time.Hour, time.Hour)

	access, _ := tm.SignAccess(1)
	refresh, _ := tm.SignRefresh(1)

	_, err := tm.ParseRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = tm.ParseAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager("access", "refresh", time.Minute, time.Minute)
	issued := time.Now().Add(-time.Hour)
	tm.now = func() time.Time { return issued }
	token, err := tm.SignAccess(7)
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.ParseAccess(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	tm := NewTokenManager("access", "refresh", time.Minute, time.Minute)
	_, err := tm.ParseAccess("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_DistinctTokens(t *testing.T) {
	tm := NewTokenManager("access", "refresh", time.Minute, time.Minute)
	a, _ := tm.SignRefresh(3)
	b, _ := tm.SignRefresh(3)
	assert.NotEqual(t, a, b)
}

func TestPasswordHashing(t *testing.T) {
	digest, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", digest)
	assert.True(t, CheckPassword("s3cret", digest))
	assert.False(t, CheckPassword("wrong", digest))
}
