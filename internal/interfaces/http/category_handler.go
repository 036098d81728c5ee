package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/application/usecase"
)

// CategoryHandler maneja las peticiones HTTP de categorías del catálogo.
type CategoryHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CatalogUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// Create POST /api/categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cat, err := h.uc.AddCategory(c.Context(), in.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// List GET /api/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.ListCategories())
}

// GetByID GET /api/categories/:id
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	cat, err := h.uc.GetCategory(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(cat)
}

// Update PUT /api/categories/:id
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cat, err := h.uc.EditCategory(c.Context(), c.Params("id"), in.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(cat)
}
