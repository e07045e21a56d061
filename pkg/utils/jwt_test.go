package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	userID := uuid.New()

	token, err := issuer.Create(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
}

func TestTokenIssuerRejectsWrongKey(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	other := NewTokenIssuer("other-secret", time.Hour)

	token, err := issuer.Create(uuid.New())
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestTokenIssuerRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Create(uuid.New())
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	assert.Error(t, err)
}
