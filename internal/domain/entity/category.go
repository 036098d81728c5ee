package entity

import "time"

// Category representa una categoría del catálogo. El nombre es único sin
// distinguir mayúsculas; los artículos la referencian por nombre, no por ID,
// así que renombrarla no re-etiqueta artículos ya guardados.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
