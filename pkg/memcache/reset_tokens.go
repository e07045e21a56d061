package mem

import (
	"sync"
	"time"
)

// ResetTokenStore holds single-use password reset tokens. Tokens live for
// minutes, so loss on restart is acceptable and no external store is used.
type ResetTokenStore interface {
	Set(token string, accountEmail string, ttl time.Duration)

	// Consume returns the account email for token if not expired and
	// removes it (single-use). Returns "" if missing or expired.
	Consume(token string) string
}

type entry struct {
	email     string
	expiresAt time.Time
}

type ResetTokens struct {
	mu   sync.Mutex
	data map[string]entry
}

func NewResetTokens() *ResetTokens {
	return &ResetTokens{data: make(map[string]entry)}
}

func (s *ResetTokens) Set(token string, accountEmail string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[token] = entry{
		email:     accountEmail,
		expiresAt: time.Now().Add(ttl),
	}
}

func (s *ResetTokens) Consume(token string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[token]
	if !ok {
		return ""
	}
	delete(s.data, token)
	if time.Now().After(e.expiresAt) {
		return ""
	}
	return e.email
}
