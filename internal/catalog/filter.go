// Package catalog filters, orders and searches product lists that have
// already been fetched. Nothing here touches storage.
package catalog

import (
	"sort"
	"strings"

	"github.com/javajoker/storefront-backend/internal/models"
)

type StockFilter string

const (
	StockAll        StockFilter = ""
	StockInStock    StockFilter = "in"
	StockOutOfStock StockFilter = "out"
)

func (s StockFilter) IsValid() bool {
	return s == StockAll || s == StockInStock || s == StockOutOfStock
}

type SortOrder string

const (
	SortNone      SortOrder = ""
	SortLatest    SortOrder = "latest"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

func (s SortOrder) IsValid() bool {
	switch s {
	case SortNone, SortLatest, SortPriceAsc, SortPriceDesc:
		return true
	}
	return false
}

type Filter struct {
	CategoryID string
	Stock      StockFilter
	Query      string
	Sort       SortOrder
}

// Apply returns the products matching f, ordered by f.Sort. The input slice is
// not modified and equal elements keep their relative order.
func Apply(products []models.Product, f Filter) []models.Product {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	result := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.CategoryID != "" && (p.CategoryID == nil || p.CategoryID.String() != f.CategoryID) {
			continue
		}
		switch f.Stock {
		case StockInStock:
			if !p.InStock() {
				continue
			}
		case StockOutOfStock:
			if p.InStock() {
				continue
			}
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		result = append(result, p)
	}

	switch f.Sort {
	case SortLatest:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	case SortPriceAsc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price.LessThan(result[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price.GreaterThan(result[j].Price)
		})
	}

	return result
}
