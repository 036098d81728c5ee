package store_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/store"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type record struct {
	ID   string
	Name string
}

func newStore() *store.Store[record] {
	return store.New(store.Options[record]{
		GetID: func(r record) string { return r.ID },
		SetID: func(r *record, id string) { r.ID = id },
	})
}

// newSequentialStore usa un generador determinista para poder asertar IDs.
func newSequentialStore() *store.Store[record] {
	n := 0
	return store.New(store.Options[record]{
		NewID: func() string { n++; return fmt.Sprintf("id-%d", n) },
		GetID: func(r record) string { return r.ID },
		SetID: func(r *record, id string) { r.ID = id },
	})
}

func TestAdd_AsignaIDYConservaOrden(t *testing.T) {
	s := newSequentialStore()

	a := s.Add(record{Name: "primero"})
	b := s.Add(record{Name: "segundo"})

	assert.Equal(t, "id-1", a.ID)
	assert.Equal(t, "id-2", b.ID)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "primero", list[0].Name, "el snapshot conserva el orden de inserción")
	assert.Equal(t, "segundo", list[1].Name)
}

func TestAdd_RespetaIDExistente(t *testing.T) {
	s := newStore()

	stored := s.Add(record{ID: "ya-tengo-id", Name: "hidratado"})

	assert.Equal(t, "ya-tengo-id", stored.ID)
	got, ok := s.Get("ya-tengo-id")
	require.True(t, ok)
	assert.Equal(t, "hidratado", got.Name)
}

func TestUpdate_AplicaParcheYProtegeElID(t *testing.T) {
	s := newStore()
	stored := s.Add(record{Name: "antes"})

	updated, err := s.Update(stored.ID, func(r record) record {
		r.Name = "después"
		r.ID = "intento-de-cambio" // el parche no puede cambiar el ID
		return r
	})

	require.NoError(t, err)
	assert.Equal(t, stored.ID, updated.ID)
	assert.Equal(t, "después", updated.Name)
}

func TestUpdate_IDAusenteFalla(t *testing.T) {
	s := newStore()

	_, err := s.Update("no-existe", func(r record) record { return r })

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemove_EsIdempotente(t *testing.T) {
	s := newStore()
	stored := s.Add(record{Name: "efímero"})

	s.Remove(stored.ID)
	s.Remove(stored.ID) // segunda vez: no-op, no entra en pánico
	s.Remove("nunca-existió")

	assert.Equal(t, 0, s.Len())
}

func TestRemove_ReindexaLosRestantes(t *testing.T) {
	s := newSequentialStore()
	s.Add(record{Name: "a"})
	b := s.Add(record{Name: "b"})
	s.Add(record{Name: "c"})

	s.Remove(b.ID)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Name)
	assert.Equal(t, "c", list[1].Name)
	// los sobrevivientes siguen accesibles por ID después del reindex
	got, ok := s.Get(list[1].ID)
	require.True(t, ok)
	assert.Equal(t, "c", got.Name)
}

func TestList_DevuelveSnapshotIndependiente(t *testing.T) {
	s := newStore()
	s.Add(record{Name: "intacto"})

	list := s.List()
	list[0].Name = "mutado-afuera"

	again := s.List()
	assert.Equal(t, "intacto", again[0].Name, "mutar el snapshot no afecta al store")
}

func TestReplace_SustituyeContenidoYAsignaIDsFaltantes(t *testing.T) {
	s := newSequentialStore()
	s.Add(record{Name: "viejo"})

	s.Replace([]record{
		{ID: "fijo", Name: "con-id"},
		{Name: "sin-id"},
	})

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "fijo", list[0].ID)
	assert.NotEmpty(t, list[1].ID, "Replace asigna ID a los registros que llegan sin uno")

	_, ok := s.Get("fijo")
	assert.True(t, ok)
}
