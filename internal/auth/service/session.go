package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
)

// ============================================================
// Session Manager
// ============================================================

type SessionManager struct {
	tokens *ttlcache.Cache[string, string] // token -> userID
}

// NewSessionManager хранит токены ttl; каждое обращение продлевает сессию.
func NewSessionManager(ttl time.Duration) *SessionManager {
	return &SessionManager{
		tokens: ttlcache.New(ttlcache.WithTTL[string, string](ttl)),
	}
}

// Start запускает удаление протухших токенов; блокирует до Stop.
func (m *SessionManager) Start() { m.tokens.Start() }

func (m *SessionManager) Stop() { m.tokens.Stop() }

func (m *SessionManager) Issue(userID string) string {
	token := uuid.NewString()
	m.tokens.Set(token, userID, ttlcache.DefaultTTL)
	return token
}

func (m *SessionManager) Resolve(token string) (string, bool) {
	item := m.tokens.Get(token)
	if item == nil {
		return "", false
	}
	return item.Value(), true
}

func (m *SessionManager) Revoke(token string) {
	m.tokens.Delete(token)
}
