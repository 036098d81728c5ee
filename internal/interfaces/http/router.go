package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/negocio-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC  *usecase.CatalogUseCase
	CustomerUC *usecase.CustomerUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Artículos del catálogo (productos y servicios)
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.CatalogUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/summary", itemHandler.Summary)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	// Categorías
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CatalogUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)

	// Clientes
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/by-phone/:phone", customerHandler.GetByPhone)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
	customers.Post("/:id/orders", customerHandler.AddOrder)
}
