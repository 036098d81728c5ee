package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/application/usecase"
)

// ItemHandler maneja las peticiones HTTP del catálogo de artículos.
type ItemHandler struct {
	uc *usecase.CatalogUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.CatalogUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create POST /api/items
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.AddItem(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// List GET /api/items?q=&sort=&dir=&page=&page_size=
func (h *ItemHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.ListItems(parseListRequest(c)))
}

// GetByID GET /api/items/:id
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.uc.GetItem(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

// Update PUT /api/items/:id
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.UpdateItem(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

// Delete DELETE /api/items/:id
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.RemoveItem(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Summary GET /api/items/summary
func (h *ItemHandler) Summary(c *fiber.Ctx) error {
	return c.JSON(h.uc.Summary())
}
