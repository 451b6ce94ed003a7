// internal/utils/pagination.go
package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// PaginationParams with Limit 0 means "everything".
type PaginationParams struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Sort  string `json:"sort"`
}

type PaginationResult struct {
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int64       `json:"total"`
	TotalPages int         `json:"total_pages"`
	Data       interface{} `json:"data"`
}

// GetPaginationParams reads page, limit and sort. Pagination is only applied
// when the caller asks for a page or a limit.
func GetPaginationParams(c *gin.Context) PaginationParams {
	params := PaginationParams{Sort: c.Query("sort")}

	_, hasPage := c.GetQuery("page")
	_, hasLimit := c.GetQuery("limit")
	if !hasPage && !hasLimit {
		return params
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}

	params.Page = page
	params.Limit = limit
	return params
}

func (p PaginationParams) Paginated() bool {
	return p.Limit > 0
}

func ApplyPagination(db *gorm.DB, params PaginationParams) *gorm.DB {
	if !params.Paginated() {
		return db
	}
	offset := (params.Page - 1) * params.Limit
	return db.Offset(offset).Limit(params.Limit)
}

// SortColumn maps a "field" or "-field" sort key onto an ORDER BY clause
// using allowed (key -> column). Unknown keys fall back to fallback.
func SortColumn(sort string, allowed map[string]string, fallback string) string {
	desc := strings.HasPrefix(sort, "-")
	column, ok := allowed[strings.TrimPrefix(sort, "-")]
	if !ok {
		return fallback
	}
	if desc {
		return column + " desc"
	}
	return column + " asc"
}

func CreatePaginationResult(data interface{}, total int64, params PaginationParams) PaginationResult {
	totalPages := 1
	if params.Paginated() {
		totalPages = int(math.Ceil(float64(total) / float64(params.Limit)))
	}

	return PaginationResult{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
		Data:       data,
	}
}

func SetPaginationHeaders(c *gin.Context, result PaginationResult) {
	c.Header("X-Total-Count", strconv.FormatInt(result.Total, 10))
	c.Header("X-Page", strconv.Itoa(result.Page))
	c.Header("X-Per-Page", strconv.Itoa(result.Limit))
	c.Header("X-Total-Pages", strconv.Itoa(result.TotalPages))
}
