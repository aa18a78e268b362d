package repository

// List endpoints paginate with page/limit query parameters; the default
// page size matches the back-office grid tables.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type PageRequest struct {
	Page     int
	PageSize int
}

type PageResult[T any] struct {
	Items    []T   `json:"data"`
	Page     int   `json:"page"`
	PageSize int   `json:"limit"`
	Total    int64 `json:"total"`
	HasMore  bool  `json:"has_more"`
}

// Normalize clamps a request to sane bounds.
func (r PageRequest) Normalize() PageRequest {
	page := r.Page
	if page < 1 {
		page = DefaultPage
	}
	size := r.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return PageRequest{Page: page, PageSize: size}
}

func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// NewPageResult assembles the envelope handed back to list handlers.
func NewPageResult[T any](items []T, req PageRequest, total int64) PageResult[T] {
	if items == nil {
		items = []T{}
	}
	return PageResult[T]{
		Items:    items,
		Page:     req.Page,
		PageSize: req.PageSize,
		Total:    total,
		HasMore:  int64(req.Offset()+req.PageSize) < total,
	}
}
