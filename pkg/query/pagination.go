package query

// PageRef points at an adjacent page.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// Paginate computes the adjacent-page hints for a window over total records.
func Paginate(page, limit int, total int64) Pagination {
	var p Pagination
	if int64(page)*int64(limit) < total {
		p.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		p.Prev = &PageRef{Page: page - 1, Limit: limit}
	}
	return p
}

// Result is one page of records plus the filtered total.
type Result struct {
	Total   int64
	Records []map[string]any
}

// Pagination returns the hints for r under spec.
func (r Result) Pagination(spec Spec) Pagination {
	return Paginate(spec.Page, spec.Limit, r.Total)
}
