package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResetTokensSingleUse(t *testing.T) {
	store := NewResetTokens()
	store.Set("tok", "user@example.com", time.Minute)

	assert.Equal(t, "user@example.com", store.Consume("tok"))
	assert.Equal(t, "", store.Consume("tok"), "token must be single-use")
}

func TestResetTokensExpiry(t *testing.T) {
	store := NewResetTokens()
	store.Set("tok", "user@example.com", -time.Second)

	assert.Equal(t, "", store.Consume("tok"))
}

func TestResetTokensUnknown(t *testing.T) {
	store := NewResetTokens()
	assert.Equal(t, "", store.Consume("missing"))
}
