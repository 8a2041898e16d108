// Package session define el límite de verificación de identidad: el core
// consulta las sesiones activas como capacidad inyectada, sin asumir un
// backend concreto (Redis en producción, memoria en desarrollo y tests).
package session

import (
	"context"
	"sync"
	"time"
)

// Store registro de sesiones activas. El token JWT lleva el id de sesión;
// una sesión ausente (expirada o revocada por logout) invalida el token.
type Store interface {
	Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore implementación en memoria para desarrollo y tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
}

type memorySession struct {
	userID    string
	expiresAt time.Time
}

// NewMemoryStore construye el store en memoria.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memorySession)}
}

// Save registra la sesión con su expiración.
func (s *MemoryStore) Save(_ context.Context, sessionID, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = memorySession{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Exists indica si la sesión sigue activa. Purga la entrada si ya expiró.
func (s *MemoryStore) Exists(_ context.Context, sessionID string) (bool, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if time.Now().After(sess.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}

// Delete revoca la sesión (logout).
func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
