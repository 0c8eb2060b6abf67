package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcosta/flashdeck/internal/auth"
)

func TestSession_Lifecycle(t *testing.T) {
	session := auth.NewSession()

	_, ok := session.CurrentUserID(context.Background())
	assert.False(t, ok)

	var signedIn []uuid.UUID
	signedOut := 0
	session.OnSignedIn(func(id uuid.UUID) { signedIn = append(signedIn, id) })
	session.OnSignedOut(func() { signedOut++ })

	userID := uuid.New()
	session.SignIn(userID)

	got, ok := session.CurrentUserID(context.Background())
	require.True(t, ok)
	assert.Equal(t, userID, got)
	assert.Equal(t, []uuid.UUID{userID}, signedIn)

	session.SignOut()
	_, ok = session.CurrentUserID(context.Background())
	assert.False(t, ok)
	assert.Equal(t, 1, signedOut)

	// Signing out while already signed out must not re-fire handlers.
	session.SignOut()
	assert.Equal(t, 1, signedOut)
}

func TestJWTVerifier_RoundTrip(t *testing.T) {
	verifier := auth.NewJWTVerifier("test-secret")
	userID := uuid.New()

	token, err := verifier.GenerateToken(userID, time.Hour)
	require.NoError(t, err)

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestJWTVerifier_RejectsBadTokens(t *testing.T) {
	verifier := auth.NewJWTVerifier("test-secret")

	_, err := verifier.Verify("not-a-token")
	assert.Error(t, err)

	other := auth.NewJWTVerifier("other-secret")
	token, err := other.GenerateToken(uuid.New(), time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err, "token signed with a different secret must be rejected")
}

func TestJWTVerifier_RejectsExpiredToken(t *testing.T) {
	verifier := auth.NewJWTVerifier("test-secret")

	token, err := verifier.GenerateToken(uuid.New(), -time.Minute)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}
