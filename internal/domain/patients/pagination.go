package patients

// DefaultPerPage es la cantidad de tarjetas por página.
const DefaultPerPage = 9

// Window es la porción visible de una lista.
type Window[T any] struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
	Items      []T
}

// TotalPages = ceil(total / perPage).
func TotalPages(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// Paginate corta [(page-1)*perPage, page*perPage) recortado al largo de la lista.
// Una página fuera de rango da una ventana vacía.
func Paginate[T any](list []T, page, perPage int) Window[T] {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	w := Window[T]{
		Page:       page,
		PerPage:    perPage,
		Total:      len(list),
		TotalPages: TotalPages(len(list), perPage),
		Items:      []T{},
	}
	if page < 1 {
		return w
	}
	start := (page - 1) * perPage
	if start >= len(list) {
		return w
	}
	end := start + perPage
	if end > len(list) {
		end = len(list)
	}
	w.Items = list[start:end]
	return w
}
