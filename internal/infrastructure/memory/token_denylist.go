// Package memory contiene adaptadores en proceso para cuando no hay Redis configurado.
package memory

import (
	"context"
	"sync"
	"time"
)

// TokenDenyList lista de tokens revocados en memoria. Válida solo para una instancia.
type TokenDenyList struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewTokenDenyList construye la lista vacía.
func NewTokenDenyList() *TokenDenyList {
	return &TokenDenyList{entries: make(map[string]time.Time), now: time.Now}
}

// Revoke marca el token como revocado durante ttl.
func (l *TokenDenyList) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.purgeLocked()
	l.entries[tokenID] = l.now().Add(ttl)
	return nil
}

// IsRevoked indica si el token sigue revocado.
func (l *TokenDenyList) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	exp, ok := l.entries[tokenID]
	if !ok {
		return false, nil
	}
	if !l.now().Before(exp) {
		delete(l.entries, tokenID)
		return false, nil
	}
	return true, nil
}

// purgeLocked borra entradas vencidas; el token ya expiró por sí mismo.
func (l *TokenDenyList) purgeLocked() {
	now := l.now()
	for id, exp := range l.entries {
		if !now.Before(exp) {
			delete(l.entries, id)
		}
	}
}
