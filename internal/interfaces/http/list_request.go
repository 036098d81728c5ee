package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/domain/query"
)

// parseListRequest arma los parámetros del pipeline desde la query string:
// ?q=...&sort=name&dir=desc&page=0&page_size=10. Sin dir explícito se usa la
// dirección por defecto de la clave (createdAt arranca descendente).
func parseListRequest(c *fiber.Ctx) query.Request {
	var in dto.ListRequest
	_ = c.QueryParser(&in) // parámetros ilegibles caen en los defaults

	key := query.SortKey(in.Sort)
	st := query.State{Key: key, Dir: query.DefaultDirection(key)}
	switch in.Dir {
	case "asc":
		st.Dir = query.Ascending
	case "desc":
		st.Dir = query.Descending
	}
	return query.Request{
		Query:    in.Query,
		Sort:     st,
		Page:     in.Page,
		PageSize: in.PageSize,
	}
}
