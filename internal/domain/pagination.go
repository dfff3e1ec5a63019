package domain

type PaginationParams struct {
	Page     int `json:"page" query:"page"`
	PageSize int `json:"page_size" query:"page_size"`
}

type SortParams struct {
	SortBy    string `json:"sort_by" query:"sort_by"`
	Direction string `json:"direction" query:"direction"`
}

type PaginatedResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

func NewPaginatedResponse[T any](data []T, page, pageSize int, totalItems int64) PaginatedResponse[T] {
	totalPages := int((totalItems + int64(pageSize) - 1) / int64(pageSize))

	return PaginatedResponse[T]{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

func DefaultPagination() PaginationParams {
	return PaginationParams{
		Page:     1,
		PageSize: 20,
	}
}

func (p *PaginationParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// complaintSortColumns is the allow-list for user-supplied sort fields;
// anything else falls back to created_at.
var complaintSortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"due_date":   "due_date",
	"status":     "status",
	"category":   "category",
	"title":      "title",
	"rating":     "rating",
}

func (s *SortParams) Validate() {
	if _, ok := complaintSortColumns[s.SortBy]; !ok {
		s.SortBy = "created_at"
	}
	if s.Direction != "asc" {
		s.Direction = "desc"
	}
}

// OrderClause returns a SQL-safe ORDER BY fragment from the validated params.
func (s SortParams) OrderClause() string {
	col := complaintSortColumns[s.SortBy]
	if col == "" {
		col = "created_at"
	}
	dir := "DESC"
	if s.Direction == "asc" {
		dir = "ASC"
	}
	return col + " " + dir
}
