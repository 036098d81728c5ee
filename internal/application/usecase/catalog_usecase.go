package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/inventory"
	"github.com/jhoicas/negocio-api/internal/domain/query"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
	"github.com/jhoicas/negocio-api/internal/domain/store"
	"github.com/jhoicas/negocio-api/pkg/money"
)

// Claves del colaborador durable. Cada colección persiste su lista completa
// serializada en JSON bajo una sola clave.
const (
	itemsKey      = "negocio:items"
	categoriesKey = "negocio:categories"
)

// CatalogUseCase casos de uso del catálogo: artículos (producto | servicio) y
// categorías. Toda mutación sigue la misma disciplina: validar → persistir →
// recién entonces actualizar memoria. Un fallo en cualquier paso deja ambos
// lados sin cambios.
type CatalogUseCase struct {
	mu         sync.Mutex
	items      *store.Store[entity.Item]
	categories *store.Store[entity.Category]
	kv         repository.KeyValueStore
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(items *store.Store[entity.Item], categories *store.Store[entity.Category], kv repository.KeyValueStore) *CatalogUseCase {
	return &CatalogUseCase{items: items, categories: categories, kv: kv}
}

// Hydrate carga artículos y categorías desde el colaborador durable al
// arrancar. StockValue se recalcula al cargar: es derivado y nunca se lee
// como entrada, ni siquiera de la copia durable.
func (uc *CatalogUseCase) Hydrate(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	var items []entity.Item
	if err := loadList(ctx, uc.kv, itemsKey, &items); err != nil {
		return err
	}
	for i := range items {
		items[i] = normalizeItem(items[i])
	}
	uc.items.Replace(items)

	var categories []entity.Category
	if err := loadList(ctx, uc.kv, categoriesKey, &categories); err != nil {
		return err
	}
	uc.categories.Replace(categories)
	return nil
}

// AddItem crea un artículo discriminando la variante por el campo type.
// Un producto con precio de venta menor al de compra se rechaza sin mutar nada.
func (uc *CatalogUseCase) AddItem(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	item, err := buildItem(in)
	if err != nil {
		return nil, err
	}
	item.ID = uuid.New().String()
	item.CreatedAt = time.Now()

	next := append(uc.items.List(), item)
	if err := persistList(ctx, uc.kv, itemsKey, next); err != nil {
		return nil, err
	}
	uc.items.Replace(next)
	return toItemResponse(item), nil
}

// UpdateItem aplica un parche por campo y revalida el resultado combinado: un
// producto que quedaría con venta < compra se rechaza. La variante no cambia.
func (uc *CatalogUseCase) UpdateItem(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	current, ok := uc.items.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	merged, err := mergeItem(current, in)
	if err != nil {
		return nil, err
	}

	next := uc.items.List()
	for i := range next {
		if next[i].ID == id {
			next[i] = merged
		}
	}
	if err := persistList(ctx, uc.kv, itemsKey, next); err != nil {
		return nil, err
	}
	uc.items.Replace(next)
	return toItemResponse(merged), nil
}

// RemoveItem elimina un artículo por ID.
func (uc *CatalogUseCase) RemoveItem(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if _, ok := uc.items.Get(id); !ok {
		return domain.ErrNotFound
	}
	current := uc.items.List()
	next := make([]entity.Item, 0, len(current)-1)
	for _, it := range current {
		if it.ID != id {
			next = append(next, it)
		}
	}
	if err := persistList(ctx, uc.kv, itemsKey, next); err != nil {
		return err
	}
	uc.items.Replace(next)
	return nil
}

// GetItem obtiene un artículo por ID.
func (uc *CatalogUseCase) GetItem(id string) (*dto.ItemResponse, error) {
	item, ok := uc.items.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// ListItems corre el pipeline de consulta sobre el snapshot de artículos.
func (uc *CatalogUseCase) ListItems(req query.Request) *dto.ItemListResponse {
	items := uc.items.List()
	rows := make([]itemRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, itemRow{it})
	}
	page := query.Run(rows, req)
	out := &dto.ItemListResponse{
		Items: make([]dto.ItemResponse, 0, len(page.Items)),
		Page:  toPageResponse(page.Page, page.PageSize, page.TotalItems, page.NumberOfPages, page.PageSizeOptions),
	}
	for _, r := range page.Items {
		out.Items = append(out.Items, *toItemResponse(r.Item))
	}
	return out
}

// Summary agregados derivados del catálogo completo.
func (uc *CatalogUseCase) Summary() dto.SummaryResponse {
	s := inventory.Summarize(uc.items.List())
	return dto.SummaryResponse{
		TotalItems:             s.TotalItems,
		TotalStockCount:        s.TotalStockCount,
		EstimatedSales:         s.EstimatedSales,
		TotalStockValue:        s.TotalStockValue,
		EstimatedSalesDisplay:  money.Format(s.EstimatedSales),
		TotalStockValueDisplay: money.Format(s.TotalStockValue),
	}
}

// AddCategory crea una categoría. El nombre es único sin distinguir mayúsculas.
func (uc *CatalogUseCase) AddCategory(ctx context.Context, name string) (*dto.CategoryResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if uc.categoryNameTaken(name, "") {
		return nil, domain.ErrDuplicateCategory
	}
	cat := entity.Category{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	next := append(uc.categories.List(), cat)
	if err := persistList(ctx, uc.kv, categoriesKey, next); err != nil {
		return nil, err
	}
	uc.categories.Replace(next)
	return toCategoryResponse(cat), nil
}

// EditCategory renombra una categoría, excluyéndose a sí misma del chequeo de
// duplicados. No re-etiqueta artículos que ya llevan el nombre anterior: la
// asociación artículo→categoría es por nombre, sin integridad referencial.
func (uc *CatalogUseCase) EditCategory(ctx context.Context, id, name string) (*dto.CategoryResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	current, ok := uc.categories.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if uc.categoryNameTaken(name, id) {
		return nil, domain.ErrDuplicateCategory
	}
	current.Name = name

	next := uc.categories.List()
	for i := range next {
		if next[i].ID == id {
			next[i] = current
		}
	}
	if err := persistList(ctx, uc.kv, categoriesKey, next); err != nil {
		return nil, err
	}
	uc.categories.Replace(next)
	return toCategoryResponse(current), nil
}

// ListCategories devuelve todas las categorías en orden de inserción.
func (uc *CatalogUseCase) ListCategories() []dto.CategoryResponse {
	list := uc.categories.List()
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out
}

// GetCategory obtiene una categoría por ID.
func (uc *CatalogUseCase) GetCategory(id string) (*dto.CategoryResponse, error) {
	cat, ok := uc.categories.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(cat), nil
}

// categoryNameTaken chequeo de duplicado sin distinguir mayúsculas, excluyendo
// el registro en edición. Llamar con el mutex tomado: la validación y el
// commit quedan bajo la misma sección crítica.
func (uc *CatalogUseCase) categoryNameTaken(name, excludeID string) bool {
	for _, c := range uc.categories.List() {
		if c.ID != excludeID && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

// persistList serializa la lista y la escribe bajo su clave. Cualquier fallo
// del colaborador durable se reporta como ErrPersistence y el caller no toca
// memoria: la operación lógica queda reintentable tal cual.
func persistList(ctx context.Context, kv repository.KeyValueStore, key string, list any) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if err := kv.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

// buildItem construye la entidad desde la petición de alta, aplicando las
// reglas de cada variante.
func buildItem(in dto.CreateItemRequest) (entity.Item, error) {
	var zero entity.Item
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return zero, domain.ErrInvalidInput
	}
	switch entity.ItemType(in.Type) {
	case entity.ItemTypeProduct:
		if in.Quantity < 0 || in.BuyingPrice.IsNegative() || in.SellingPrice.IsNegative() {
			return zero, domain.ErrInvalidInput
		}
		if in.SellingPrice.LessThan(in.BuyingPrice) {
			return zero, domain.ErrPriceOrdering
		}
		return entity.Item{
			Type:          entity.ItemTypeProduct,
			Name:          name,
			Category:      strings.TrimSpace(in.Category),
			Quantity:      in.Quantity,
			BuyingPrice:   in.BuyingPrice,
			SellingPrice:  in.SellingPrice,
			MeasuringUnit: in.MeasuringUnit,
			StockValue:    inventory.StockValue(in.BuyingPrice, in.Quantity),
		}, nil
	case entity.ItemTypeService:
		if in.Charges.IsNegative() {
			return zero, domain.ErrInvalidInput
		}
		// un servicio no lleva stock: cantidad, costo y valor de inventario en 0
		return normalizeItem(entity.Item{
			Type:         entity.ItemTypeService,
			Name:         name,
			Category:     strings.TrimSpace(in.Category),
			SellingPrice: in.Charges,
		}), nil
	default:
		return zero, domain.ErrInvalidInput
	}
}

// mergeItem aplica el parche sobre el registro vigente y revalida el resultado.
func mergeItem(current entity.Item, in dto.UpdateItemRequest) (entity.Item, error) {
	var zero entity.Item
	merged := current
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return zero, domain.ErrInvalidInput
		}
		merged.Name = name
	}
	if in.Category != nil {
		merged.Category = strings.TrimSpace(*in.Category)
	}
	if in.MeasuringUnit != nil {
		merged.MeasuringUnit = *in.MeasuringUnit
	}
	switch merged.Type {
	case entity.ItemTypeProduct:
		if in.Quantity != nil {
			if *in.Quantity < 0 {
				return zero, domain.ErrInvalidInput
			}
			merged.Quantity = *in.Quantity
		}
		if in.BuyingPrice != nil {
			merged.BuyingPrice = *in.BuyingPrice
		}
		if in.SellingPrice != nil {
			merged.SellingPrice = *in.SellingPrice
		}
		if merged.BuyingPrice.IsNegative() || merged.SellingPrice.IsNegative() {
			return zero, domain.ErrInvalidInput
		}
		if merged.SellingPrice.LessThan(merged.BuyingPrice) {
			return zero, domain.ErrPriceOrdering
		}
		merged.StockValue = inventory.StockValue(merged.BuyingPrice, merged.Quantity)
	case entity.ItemTypeService:
		if in.Charges != nil {
			if in.Charges.IsNegative() {
				return zero, domain.ErrInvalidInput
			}
			merged.SellingPrice = *in.Charges
		}
		merged = normalizeItem(merged)
	}
	return merged, nil
}

// normalizeItem fuerza los invariantes derivados de cada variante.
func normalizeItem(it entity.Item) entity.Item {
	switch it.Type {
	case entity.ItemTypeService:
		it.Quantity = 0
		it.BuyingPrice = decimal.Zero
		it.StockValue = decimal.Zero
	case entity.ItemTypeProduct:
		it.StockValue = inventory.StockValue(it.BuyingPrice, it.Quantity)
	}
	return it
}

// itemRow adapta un artículo al pipeline de consulta. Un servicio solo hace
// match por nombre y categoría (su cantidad no es significativa) y sus claves
// de stock son valores ausentes, que ordenan antes que cualquier valor presente.
type itemRow struct {
	entity.Item
}

func (r itemRow) FilterTerms() []string {
	terms := []string{r.Name, r.Category}
	if r.Type == entity.ItemTypeProduct {
		terms = append(terms,
			strconv.FormatInt(r.Quantity, 10),
			r.SellingPrice.String(),
		)
	}
	return terms
}

func (r itemRow) SortValue(k query.SortKey) query.Value {
	switch k {
	case query.KeyCategory:
		return query.String(r.Category)
	case query.KeyQuantity:
		if r.IsService() {
			return query.Absent(query.KindNumber)
		}
		return query.Number(decimal.NewFromInt(r.Quantity))
	case query.KeyBuyingPrice:
		if r.IsService() {
			return query.Absent(query.KindNumber)
		}
		return query.Number(r.BuyingPrice)
	case query.KeyStockValue:
		if r.IsService() {
			return query.Absent(query.KindNumber)
		}
		return query.Number(r.StockValue)
	case query.KeySellingPrice:
		// ambas variantes tienen precio de venta significativo (tarifa del servicio)
		return query.Number(r.SellingPrice)
	case query.KeyCreatedAt:
		return query.Time(r.CreatedAt)
	default:
		return query.String(r.Name)
	}
}

func toItemResponse(it entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:            it.ID,
		Type:          string(it.Type),
		Name:          it.Name,
		Category:      it.Category,
		Quantity:      it.Quantity,
		BuyingPrice:   it.BuyingPrice,
		SellingPrice:  it.SellingPrice,
		MeasuringUnit: it.MeasuringUnit,
		StockValue:    it.StockValue,
		CreatedAt:     it.CreatedAt,
	}
}

func toCategoryResponse(c entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}

func toPageResponse(page, size, total, pages int, options []int) dto.PageResponse {
	return dto.PageResponse{
		Page:            page,
		PageSize:        size,
		TotalItems:      total,
		NumberOfPages:   pages,
		PageSizeOptions: options,
	}
}

// loadList lee y deserializa la lista guardada bajo una clave; clave ausente
// deja la lista vacía.
func loadList[T any](ctx context.Context, kv repository.KeyValueStore, key string, out *[]T) error {
	raw, found, err := kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if !found || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}
