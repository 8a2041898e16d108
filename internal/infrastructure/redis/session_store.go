// Package redis implementa el store de sesiones sobre Redis. El TTL de la
// clave expira la sesión sin necesidad de limpieza propia.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/punto-venta/internal/application/session"
)

var _ session.Store = (*SessionStore)(nil)

const keyPrefix = "session:"

// SessionStore adaptador Redis del puerto session.Store.
type SessionStore struct {
	rdb *redis.Client
}

// NewSessionStore construye el store con un cliente Redis ya configurado.
func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

// Save registra la sesión con expiración por TTL de la clave.
func (s *SessionStore) Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, keyPrefix+sessionID, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

// Exists indica si la sesión sigue activa.
func (s *SessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, keyPrefix+sessionID).Result()
	if err != nil {
		return false, fmt.Errorf("redis check session: %w", err)
	}
	return n > 0, nil
}

// Delete revoca la sesión (logout).
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}
