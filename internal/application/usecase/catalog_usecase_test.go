package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/application/usecase"
	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/query"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
	"github.com/jhoicas/negocio-api/internal/domain/store"
	"github.com/jhoicas/negocio-api/internal/infrastructure/storage"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// flakyKV envuelve el almacén en memoria y permite inyectar un fallo de
// escritura para verificar que la memoria no adelanta a la copia durable.
type flakyKV struct {
	*storage.MemoryStore
	failSet bool
}

func (f *flakyKV) Set(ctx context.Context, key, value string) error {
	if f.failSet {
		return errors.New("disco lleno")
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func newItemStore() *store.Store[entity.Item] {
	return store.New(store.Options[entity.Item]{
		GetID: func(i entity.Item) string { return i.ID },
		SetID: func(i *entity.Item, id string) { i.ID = id },
	})
}

func newCategoryStore() *store.Store[entity.Category] {
	return store.New(store.Options[entity.Category]{
		GetID: func(c entity.Category) string { return c.ID },
		SetID: func(c *entity.Category, id string) { c.ID = id },
	})
}

func newCatalog(kv repository.KeyValueStore) *usecase.CatalogUseCase {
	return usecase.NewCatalogUseCase(newItemStore(), newCategoryStore(), kv)
}

func productRequest() dto.CreateItemRequest {
	return dto.CreateItemRequest{
		Type:          "product",
		Name:          "Arroz",
		Category:      "Granos",
		Quantity:      20,
		BuyingPrice:   decimal.NewFromInt(80),
		SellingPrice:  decimal.NewFromInt(100),
		MeasuringUnit: "kg",
	}
}

func ptr[T any](v T) *T { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Artículos
// ──────────────────────────────────────────────────────────────────────────────

func TestAddItem_ProductoCalculaValorDeInventario(t *testing.T) {
	uc := newCatalog(storage.NewMemoryStore())

	item, err := uc.AddItem(context.Background(), productRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.True(t, item.StockValue.Equal(decimal.NewFromInt(1600)), "80 × 20 = 1600, got %s", item.StockValue)
}

func TestAddItem_ServicioFuerzaCamposDeStockEnCero(t *testing.T) {
	uc := newCatalog(storage.NewMemoryStore())

	item, err := uc.AddItem(context.Background(), dto.CreateItemRequest{
		Type:    "service",
		Name:    "Domicilio",
		Charges: decimal.NewFromInt(15),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(0), item.Quantity)
	assert.True(t, item.BuyingPrice.IsZero())
	assert.True(t, item.StockValue.IsZero())
	assert.True(t, item.SellingPrice.Equal(decimal.NewFromInt(15)), "la tarifa queda como precio de venta")
}

func TestAddItem_RechazaVentaMenorQueCompra(t *testing.T) {
	uc := newCatalog(storage.NewMemoryStore())

	in := productRequest()
	in.SellingPrice = decimal.NewFromInt(50)

	_, err := uc.AddItem(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, 0, uc.ListItems(query.Request{}).Page.TotalItems, "falla cerrado: el store queda sin cambios")
}

func TestUpdateItem_RevalidaElResultadoCombinado(t *testing.T) {
	uc := newCatalog(storage.NewMemoryStore())
	item, err := uc.AddItem(context.Background(), productRequest())
	require.NoError(t, err)

	// bajar la venta por debajo de la compra vigente debe rechazarse
	_, err = uc.UpdateItem(context.Background(), item.ID, dto.UpdateItemRequest{
		SellingPrice: ptr(decimal.NewFromInt(70)),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// el artículo quedó como estaba
	got, err := uc.GetItem(item.ID)
	require.NoError(t, err)
	assert.True(t, got.SellingPrice.Equal(decimal.NewFromInt(100)))
}

func TestUpdateItem_RecalculaValorDeInventario(t *testing.T) {
	uc := newCatalog(storage.NewMemoryStore())
	item, err := uc.AddItem(context.Background(), productRequest())
	require.NoError(t, err)

	updated, err := uc.UpdateItem(context.Background(), item.ID, dto.UpdateItemRequest{
		Quantity: ptr(int64(7)),
	})

	require.NoError(t, err)
	assert.True(t, updated.StockValue.Equal(decimal.NewFromInt(560)), "80 × 7, got %s", updated.StockValue)
}

func TestUpdateItem_IDAusente(t *testing.T) {
	uc := newCatalog(storage.NewMemoryStore())

	_, err := uc.UpdateItem(context.Background(), "no-existe", dto.UpdateItemRequest{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveItem_EliminaYReportaAusente(t *testing.T) {
	uc := newCatalog(storage.NewMemoryStore())
	item, err := uc.AddItem(context.Background(), productRequest())
	require.NoError(t, err)

	require.NoError(t, uc.RemoveItem(context.Background(), item.ID))
	assert.ErrorIs(t, uc.RemoveItem(context.Background(), item.ID), domain.ErrNotFound)
}

func TestAddItem_FalloDePersistenciaNoTocaMemoria(t *testing.T) {
	kv := &flakyKV{MemoryStore: storage.NewMemoryStore()}
	uc := newCatalog(kv)

	kv.failSet = true
	_, err := uc.AddItem(context.Background(), productRequest())
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, 0, uc.ListItems(query.Request{}).Page.TotalItems)

	// la misma operación lógica es reintentable tal cual
	kv.failSet = false
	_, err = uc.AddItem(context.Background(), productRequest())
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestAddCategory_DuplicadoSinDistinguirMayusculas(t *testing.T) {
	uc := newCatalog(storage.NewMemoryStore())

	_, err := uc.AddCategory(context.Background(), "Drinks")
	require.NoError(t, err)

	_, err = uc.AddCategory(context.Background(), "drinks")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, uc.ListCategories(), 1, "el store sigue con exactamente una categoría")
}

func TestEditCategory_SeExcluyeASiMisma(t *testing.T) {
	uc := newCatalog(storage.NewMemoryStore())
	drinks, err := uc.AddCategory(context.Background(), "Drinks")
	require.NoError(t, err)
	_, err = uc.AddCategory(context.Background(), "Snacks")
	require.NoError(t, err)

	// cambiar solo las mayúsculas del propio nombre es válido
	renamed, err := uc.EditCategory(context.Background(), drinks.ID, "DRINKS")
	require.NoError(t, err)
	assert.Equal(t, "DRINKS", renamed.Name)

	// chocar con otra categoría sigue prohibido
	_, err = uc.EditCategory(context.Background(), drinks.ID, "snacks")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado y agregados
// ──────────────────────────────────────────────────────────────────────────────

func TestListItems_PipelineCompleto(t *testing.T) {
	uc := newCatalog(storage.NewMemoryStore())
	ctx := context.Background()

	for _, in := range []dto.CreateItemRequest{
		{Type: "product", Name: "Banana", Category: "Frutas", Quantity: 3, SellingPrice: decimal.NewFromInt(5)},
		{Type: "product", Name: "apple", Category: "Frutas", Quantity: 9, SellingPrice: decimal.NewFromInt(4)},
		{Type: "service", Name: "Domicilio", Category: "Servicios", Charges: decimal.NewFromInt(10)},
	} {
		_, err := uc.AddItem(ctx, in)
		require.NoError(t, err)
	}

	page := uc.ListItems(query.Request{
		Sort: query.State{Key: query.KeyQuantity, Dir: query.Ascending},
	})

	require.Len(t, page.Items, 3)
	assert.Equal(t, "Domicilio", page.Items[0].Name, "el servicio (cantidad no aplicable) ordena primero en ascendente")
	assert.Equal(t, "Banana", page.Items[1].Name)
	assert.Equal(t, "apple", page.Items[2].Name)
	assert.Equal(t, []int{5}, page.Page.PageSizeOptions)
}

func TestSummary_EscenarioArroz(t *testing.T) {
	uc := newCatalog(storage.NewMemoryStore())
	before := uc.Summary()

	_, err := uc.AddItem(context.Background(), productRequest())
	require.NoError(t, err)

	after := uc.Summary()
	assert.True(t, after.TotalStockValue.Sub(before.TotalStockValue).Equal(decimal.NewFromInt(1600)), "el valor de inventario sube exactamente 80×20")
	assert.True(t, after.EstimatedSales.Sub(before.EstimatedSales).Equal(decimal.NewFromInt(2000)), "la venta estimada sube exactamente 100×20")
	assert.Equal(t, 1, after.TotalItems)
	assert.NotEmpty(t, after.TotalStockValueDisplay)
}

// ──────────────────────────────────────────────────────────────────────────────
// Hidratación
// ──────────────────────────────────────────────────────────────────────────────

func TestHydrate_RecargaDesdeElColaboradorDurable(t *testing.T) {
	kv := storage.NewMemoryStore()
	ctx := context.Background()

	first := newCatalog(kv)
	item, err := first.AddItem(ctx, productRequest())
	require.NoError(t, err)
	_, err = first.AddCategory(ctx, "Granos")
	require.NoError(t, err)

	// proceso nuevo, mismo almacenamiento
	second := newCatalog(kv)
	require.NoError(t, second.Hydrate(ctx))

	got, err := second.GetItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Arroz", got.Name)
	assert.True(t, got.StockValue.Equal(decimal.NewFromInt(1600)), "el valor derivado se recalcula al cargar")
	assert.Len(t, second.ListCategories(), 1)
}
