// Package store provee la colección genérica en memoria sobre la que se montan
// los catálogos de artículos, categorías y clientes. No conoce ningún
// invariante de dominio: los casos de uso validan antes de mutar.
package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/negocio-api/internal/domain"
)

// Options configura un Store para un tipo concreto.
type Options[T any] struct {
	// NewID generador de IDs opacos y únicos; uuid v4 si es nil.
	NewID func() string
	// GetID / SetID acceso al campo ID del registro.
	GetID func(T) string
	SetID func(*T, string)
}

// Store colección con asignación de IDs y orden de inserción estable.
// Un único mutex por store: disciplina de un escritor por colección.
type Store[T any] struct {
	mu    sync.Mutex
	items []T
	byID  map[string]int
	opts  Options[T]
}

// New construye un Store vacío.
func New[T any](opts Options[T]) *Store[T] {
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Store[T]{
		byID: make(map[string]int),
		opts: opts,
	}
}

// Add agrega al final y devuelve el registro almacenado. Si el registro llega
// sin ID se le asigna uno fresco; si llega con ID (hidratación) se respeta.
func (s *Store[T]) Add(item T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opts.GetID(item) == "" {
		s.opts.SetID(&item, s.opts.NewID())
	}
	s.byID[s.opts.GetID(item)] = len(s.items)
	s.items = append(s.items, item)
	return item
}

// Update aplica el parche sobre el registro existente y devuelve el resultado.
// El parche no puede cambiar el ID. Falla con domain.ErrNotFound si el ID no existe.
func (s *Store[T]) Update(id string, patch func(T) T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	idx, ok := s.byID[id]
	if !ok {
		return zero, domain.ErrNotFound
	}
	merged := patch(s.items[idx])
	s.opts.SetID(&merged, id)
	s.items[idx] = merged
	return merged, nil
}

// Get devuelve el registro por ID.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	idx, ok := s.byID[id]
	if !ok {
		return zero, false
	}
	return s.items[idx], true
}

// Remove elimina si el ID existe; eliminar un ID ausente es un no-op (idempotente).
func (s *Store[T]) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.byID[id]
	if !ok {
		return
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.reindex()
}

// List devuelve un snapshot en orden de inserción. No es orden de
// presentación: los listados pasan por el pipeline de consulta.
func (s *Store[T]) List() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Replace sustituye el contenido completo (hidratación y ruta de escritura de
// lista completa). Asigna IDs frescos a los registros que lleguen sin uno.
func (s *Store[T]) Replace(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]T, len(items))
	copy(s.items, items)
	for i := range s.items {
		if s.opts.GetID(s.items[i]) == "" {
			s.opts.SetID(&s.items[i], s.opts.NewID())
		}
	}
	s.reindex()
}

// Len cantidad de registros.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// reindex reconstruye el índice por ID; llamar con el mutex tomado.
func (s *Store[T]) reindex() {
	s.byID = make(map[string]int, len(s.items))
	for i := range s.items {
		s.byID[s.opts.GetID(s.items[i])] = i
	}
}
