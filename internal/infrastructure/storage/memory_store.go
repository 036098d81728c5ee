package storage

import (
	"context"
	"sync"
)

// MemoryStore implementa el puerto clave-valor en memoria: para tests y para
// correr el servicio sin durabilidad (driver "memory").
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore construye el almacén vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get devuelve el valor y si la clave existe.
func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok, nil
}

// Set escribe el valor.
func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
