package pagination

// Meta describes the page that was returned.
type Meta struct {
	CurrentPage int  `json:"currentPage"`
	PageSize    int  `json:"pageSize"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
}

// NewMeta builds page metadata for total items under p.
func NewMeta(p Params, total int) Meta {
	offset, size := p.Window()
	if size == 0 {
		size = total - offset
	}
	if size <= 0 {
		return Meta{CurrentPage: 1, TotalItems: total, HasPrevious: offset > 0}
	}

	current := offset/size + 1
	pages := (total + size - 1) / size
	return Meta{
		CurrentPage: current,
		PageSize:    size,
		TotalPages:  pages,
		TotalItems:  total,
		HasPrevious: offset > 0,
		HasNext:     offset+size < total,
	}
}
