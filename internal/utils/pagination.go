package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/bujo-tasks/internal/constants"
)

// PaginationParams selects one page of a listing. A zero Limit selects every row.
type PaginationParams struct {
	Page  int
	Limit int
}

// Offset is the number of rows that precede the page.
func (p PaginationParams) Offset() int {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Response describes the page that was served; returned is the number of
// rows on it.
func (p PaginationParams) Response(total int64, returned int) PaginationResponse {
	return PaginationResponse{
		Page:    p.Page,
		Limit:   p.Limit,
		Total:   total,
		HasMore: int64(p.Offset()+returned) < total,
	}
}

// PaginationResponse represents the pagination metadata in API responses
type PaginationResponse struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"has_more"`
}

// GetPaginationParams reads ?page and ?limit. Values that are missing, not
// numbers or out of range fall back to the first page and the default size.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}
	return PaginationParams{Page: page, Limit: limit}
}
