package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/domain"
	"github.com/jhoicas/negocio-api/internal/domain/entity"
	"github.com/jhoicas/negocio-api/internal/domain/query"
	"github.com/jhoicas/negocio-api/internal/domain/repository"
	"github.com/jhoicas/negocio-api/internal/domain/store"
)

const customersKey = "negocio:customers"

// CustomerUseCase registro de clientes: identidad canónica por teléfono y
// correo, unicidad de teléfono e historial de órdenes. Save es la única ruta
// de escritura; toda mutación valida, persiste la lista completa y recién
// entonces actualiza memoria y reconstruye los índices, de modo que ninguna
// búsqueda ve un índice viejo contra una lista nueva.
type CustomerUseCase struct {
	mu        sync.RWMutex
	customers *store.Store[entity.Customer]
	kv        repository.KeyValueStore

	// índices canónicos: clave normalizada -> ID del cliente.
	// Se reconstruyen completos en cada commit (escala chica, ver DESIGN.md).
	byPhone map[string]string
	byEmail map[string]string
}

// NewCustomerUseCase construye el caso de uso con índices vacíos.
func NewCustomerUseCase(customers *store.Store[entity.Customer], kv repository.KeyValueStore) *CustomerUseCase {
	return &CustomerUseCase{
		customers: customers,
		kv:        kv,
		byPhone:   make(map[string]string),
		byEmail:   make(map[string]string),
	}
}

// Hydrate carga los clientes guardados y deja los índices listos antes de
// servir la primera búsqueda.
func (uc *CustomerUseCase) Hydrate(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	var customers []entity.Customer
	if err := loadList(ctx, uc.kv, customersKey, &customers); err != nil {
		return err
	}
	uc.customers.Replace(customers)
	uc.rebuildIndices()
	return nil
}

// Create crea un cliente con historial vacío. Un teléfono cuya clave canónica
// ya existe se rechaza antes de tocar el almacenamiento.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if in.Name == "" || in.Phone == "" {
		return nil, domain.ErrInvalidInput
	}
	customer := entity.Customer{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Phone:        in.Phone,
		Email:        in.Email,
		Address:      in.Address,
		TotalOrders:  0,
		RecentOrders: []entity.Order{},
		CreatedAt:    time.Now(),
	}
	next := append(uc.customers.List(), customer)
	if err := uc.save(ctx, next); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Save es la ruta única de escritura para alta, edición y baja en bloque:
// valida la unicidad canónica de teléfonos sobre la lista completa, persiste
// y recién entonces reemplaza memoria e índices.
func (uc *CustomerUseCase) Save(ctx context.Context, updated []entity.Customer) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.save(ctx, updated)
}

// Update aplica un parche por campo sobre un cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	current, ok := uc.customers.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		current.Name = *in.Name
	}
	if in.Phone != nil {
		if *in.Phone == "" {
			return nil, domain.ErrInvalidInput
		}
		current.Phone = *in.Phone
	}
	if in.Email != nil {
		current.Email = *in.Email
	}
	if in.Address != nil {
		current.Address = *in.Address
	}

	next := uc.customers.List()
	for i := range next {
		if next[i].ID == id {
			next[i] = current
		}
	}
	if err := uc.save(ctx, next); err != nil {
		return nil, err
	}
	return toCustomerResponse(current), nil
}

// Delete elimina un cliente por ID a través de la ruta única de escritura.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	current := uc.customers.List()
	next := make([]entity.Customer, 0, len(current))
	found := false
	for _, c := range current {
		if c.ID == id {
			found = true
			continue
		}
		next = append(next, c)
	}
	if !found {
		return domain.ErrNotFound
	}
	return uc.save(ctx, next)
}

// AddOrder antepone la venta al historial reciente (tope entity.MaxRecentOrders,
// más reciente primero) e incrementa el contador total.
func (uc *CustomerUseCase) AddOrder(ctx context.Context, customerID string, in dto.AddOrderRequest) (*dto.CustomerResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	current, ok := uc.customers.Get(customerID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if in.Total.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	order := entity.Order{
		ID:     uuid.New().String(),
		Total:  in.Total,
		Detail: in.Detail,
		Date:   time.Now(),
	}
	recent := append([]entity.Order{order}, current.RecentOrders...)
	if len(recent) > entity.MaxRecentOrders {
		recent = recent[:entity.MaxRecentOrders]
	}
	current.RecentOrders = recent
	current.TotalOrders++

	next := uc.customers.List()
	for i := range next {
		if next[i].ID == customerID {
			next[i] = current
		}
	}
	if err := uc.save(ctx, next); err != nil {
		return nil, err
	}
	return toCustomerResponse(current), nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(id string) (*dto.CustomerResponse, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	c, ok := uc.customers.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(c), nil
}

// GetByPhone búsqueda O(1) por clave canónica: los no-dígitos se descartan
// igual en el índice y en la consulta, así "0712-345-678" encuentra al
// cliente guardado como "0712345678".
func (uc *CustomerUseCase) GetByPhone(phone string) (*dto.CustomerResponse, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	id, ok := uc.byPhone[entity.CanonicalPhone(phone)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c, ok := uc.customers.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(c), nil
}

// GetByEmail búsqueda O(1) por correo canónico (minúsculas).
func (uc *CustomerUseCase) GetByEmail(email string) (*dto.CustomerResponse, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	id, ok := uc.byEmail[entity.CanonicalEmail(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c, ok := uc.customers.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(c), nil
}

// List corre el pipeline de consulta sobre el snapshot de clientes.
func (uc *CustomerUseCase) List(req query.Request) *dto.CustomerListResponse {
	customers := uc.customers.List()
	rows := make([]customerRow, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, customerRow{c})
	}
	page := query.Run(rows, req)
	out := &dto.CustomerListResponse{
		Items: make([]dto.CustomerResponse, 0, len(page.Items)),
		Page:  toPageResponse(page.Page, page.PageSize, page.TotalItems, page.NumberOfPages, page.PageSizeOptions),
	}
	for _, r := range page.Items {
		out.Items = append(out.Items, *toCustomerResponse(r.Customer))
	}
	return out
}

// save valida → persiste → reemplaza memoria → reconstruye índices.
// Llamar con el mutex de escritura tomado: la validación de unicidad corre en
// la misma sección crítica que el commit, así dos altas duplicadas
// concurrentes no pueden validarse ambas contra el estado viejo.
func (uc *CustomerUseCase) save(ctx context.Context, updated []entity.Customer) error {
	for i := range updated {
		if updated[i].ID == "" {
			updated[i].ID = uuid.New().String()
		}
	}
	seen := make(map[string]struct{}, len(updated))
	for _, c := range updated {
		key := entity.CanonicalPhone(c.Phone)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			return domain.ErrDuplicatePhone
		}
		seen[key] = struct{}{}
	}
	if err := persistList(ctx, uc.kv, customersKey, updated); err != nil {
		return err
	}
	uc.customers.Replace(updated)
	uc.rebuildIndices()
	return nil
}

// rebuildIndices reconstruye los índices canónicos completos desde la lista
// vigente; llamar con el mutex de escritura tomado.
func (uc *CustomerUseCase) rebuildIndices() {
	byPhone := make(map[string]string)
	byEmail := make(map[string]string)
	for _, c := range uc.customers.List() {
		if key := entity.CanonicalPhone(c.Phone); key != "" {
			byPhone[key] = c.ID
		}
		if key := entity.CanonicalEmail(c.Email); key != "" {
			byEmail[key] = c.ID
		}
	}
	uc.byPhone = byPhone
	uc.byEmail = byEmail
}

// customerRow adapta un cliente al pipeline de consulta.
type customerRow struct {
	entity.Customer
}

func (r customerRow) FilterTerms() []string {
	return []string{r.Name, r.Phone, entity.CanonicalPhone(r.Phone), r.Email, r.Address}
}

func (r customerRow) SortValue(k query.SortKey) query.Value {
	switch k {
	case query.KeyPhone:
		return query.String(r.Phone)
	case query.KeyTotalOrders:
		return query.Number(decimal.NewFromInt(int64(r.TotalOrders)))
	case query.KeyCreatedAt:
		return query.Time(r.CreatedAt)
	default:
		return query.String(r.Name)
	}
}

func toCustomerResponse(c entity.Customer) *dto.CustomerResponse {
	orders := make([]dto.OrderResponse, 0, len(c.RecentOrders))
	for _, o := range c.RecentOrders {
		orders = append(orders, dto.OrderResponse{ID: o.ID, Total: o.Total, Detail: o.Detail, Date: o.Date})
	}
	return &dto.CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		Phone:        c.Phone,
		Email:        c.Email,
		Address:      c.Address,
		TotalOrders:  c.TotalOrders,
		RecentOrders: orders,
		CreatedAt:    c.CreatedAt,
	}
}
