package pagination

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page описывает одну страницу элементов.
type Page[T any] struct {
	Items    []T // элементы на текущей странице
	Page     int // номер страницы (с 1)
	PageSize int // количество элементов на странице
	HasNext  bool
	HasPrev  bool
	Total    int64 // общее количество элементов
}

// Request — запрошенная страница. Нулевые значения заменяются дефолтами.
type Request struct {
	Page     int
	PageSize int
}

// Normalize подставляет дефолты и ограничивает размер страницы.
func (r Request) Normalize() Request {
	if r.PageSize <= 0 {
		r.PageSize = DefaultPageSize
	}
	if r.PageSize > MaxPageSize {
		r.PageSize = MaxPageSize
	}
	if r.Page <= 0 {
		r.Page = 1
	}
	return r
}

// Bounds возвращает LIMIT/OFFSET для запроса к хранилищу.
func (r Request) Bounds() (limit, offset int) {
	n := r.Normalize()
	return n.PageSize, (n.Page - 1) * n.PageSize
}

// New собирает страницу из уже выбранных элементов и общего количества.
func New[T any](items []T, req Request, total int64) Page[T] {
	n := req.Normalize()
	_, offset := n.Bounds()

	if items == nil {
		items = []T{}
	}

	return Page[T]{
		Items:    items,
		Page:     n.Page,
		PageSize: n.PageSize,
		HasPrev:  n.Page > 1,
		HasNext:  int64(offset+len(items)) < total,
		Total:    total,
	}
}

// Map преобразует элементы страницы, сохраняя метаданные.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Items))
	for i, it := range p.Items {
		out[i] = fn(it)
	}
	return Page[U]{
		Items:    out,
		Page:     p.Page,
		PageSize: p.PageSize,
		HasNext:  p.HasNext,
		HasPrev:  p.HasPrev,
		Total:    p.Total,
	}
}
