package query

// pageSizeCandidates tamaños de página que puede ofrecer un listado.
var pageSizeCandidates = []int{5, 10, 15, 20}

// PageSizeOptions candidatos válidos para un total dado: los que no superan el
// total. El 5 se incluye siempre, aunque haya menos de 5 filas.
func PageSizeOptions(total int) []int {
	out := make([]int, 0, len(pageSizeCandidates))
	for _, c := range pageSizeCandidates {
		if c <= total || c == pageSizeCandidates[0] {
			out = append(out, c)
		}
	}
	return out
}

// NormalizePageSize conserva el tamaño vigente si sigue siendo un candidato
// válido para el total; si dejó de serlo, vuelve al primer candidato.
func NormalizePageSize(current, total int) int {
	options := PageSizeOptions(total)
	for _, o := range options {
		if o == current {
			return current
		}
	}
	return options[0]
}

// Page resultado de paginación de un listado.
type Page[T any] struct {
	Items           []T
	Page            int
	PageSize        int
	TotalItems      int
	NumberOfPages   int
	PageSizeOptions []int
}

// Paginate corta el segmento [page×size, min((page+1)×size, total)).
// Una página fuera de rango devuelve el segmento vacío, no un error.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = pageSizeCandidates[0]
	}
	total := len(items)
	start := page * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return Page[T]{
		Items:           items[start:end],
		Page:            page,
		PageSize:        size,
		TotalItems:      total,
		NumberOfPages:   pages,
		PageSizeOptions: PageSizeOptions(total),
	}
}

// Request parámetros de un listado.
type Request struct {
	Query    string
	Sort     State
	Page     int
	PageSize int
}

// Run aplica filtro → orden → paginación sobre un snapshot. El tamaño de
// página se normaliza contra el total ya filtrado.
func Run[T Row](items []T, req Request) Page[T] {
	filtered := Filter(items, req.Query)
	if req.Sort.Key != "" {
		filtered = Sort(filtered, req.Sort.Key, req.Sort.Dir)
	}
	if req.Page < 0 {
		req.Page = 0
	}
	size := NormalizePageSize(req.PageSize, len(filtered))
	return Paginate(filtered, req.Page, size)
}
