package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Los casos de uso fallan cerrado: ninguna de estas condiciones deja el
// estado en memoria a medio mutar.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrPersistence  = errors.New("fallo de escritura en el almacenamiento durable")
)

// Variantes específicas, envuelven los sentinelas de arriba para que
// errors.Is siga funcionando sobre la familia completa.
var (
	// ErrPriceOrdering el precio de venta de un producto no puede ser menor al de compra.
	ErrPriceOrdering = fmt.Errorf("%w: el precio de venta es menor al precio de compra", ErrInvalidInput)
	// ErrDuplicateCategory ya existe una categoría con ese nombre (sin distinguir mayúsculas).
	ErrDuplicateCategory = fmt.Errorf("%w: ya existe una categoría con ese nombre", ErrDuplicate)
	// ErrDuplicatePhone ya existe un cliente con ese teléfono (clave canónica, solo dígitos).
	ErrDuplicatePhone = fmt.Errorf("%w: ya existe un cliente con ese teléfono", ErrDuplicate)
)

// IsValidation agrupa los errores que se rechazan antes de cualquier mutación.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrDuplicate)
}
