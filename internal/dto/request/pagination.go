package request

// PaginatedRequest is optional; a zero PerPage means "no paging"
type PaginatedRequest struct {
	Page    int `json:"page" validate:"omitempty,min=1"`
	PerPage int `json:"per_page" validate:"omitempty,min=1,max=100"`
}

func (p PaginatedRequest) Enabled() bool {
	return p.PerPage > 0
}

func (p PaginatedRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return 0
	}
	if p.PerPage > 100 {
		return 100
	}
	return p.PerPage
}
