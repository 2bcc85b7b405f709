package apitest

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type listParams struct {
	Search    string
	Status    string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

func parseListParams(c *gin.Context) listParams {
	p := listParams{
		Search:    strings.TrimSpace(c.Query("search")),
		Status:    strings.TrimSpace(c.Query("status")),
		SortBy:    strings.TrimSpace(c.Query("sort_by")),
		SortOrder: strings.TrimSpace(c.Query("sort_order")),
		Page:      1,
		PageSize:  20,
	}
	if n, err := strconv.Atoi(c.Query("page")); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(c.Query("page_size")); err == nil && n > 0 {
		p.PageSize = n
	}
	return p
}

// window slices items down to the requested page and reports totals.
func window[T any](items []T, p listParams) ([]T, int, int) {
	total := len(items)
	totalPages := (total + p.PageSize - 1) / p.PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	start := (p.Page - 1) * p.PageSize
	if start >= total {
		return []T{}, total, totalPages
	}
	end := start + p.PageSize
	if end > total {
		end = total
	}
	return items[start:end], total, totalPages
}

func envelope[T any](c *gin.Context, items []T, p listParams) {
	pageItems, total, totalPages := window(items, p)
	c.JSON(200, gin.H{
		"items":       pageItems,
		"total":       total,
		"page":        p.Page,
		"page_size":   p.PageSize,
		"total_pages": totalPages,
	})
}

func sortBy[T any](items []T, key func(T) string, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return key(items[i]) > key(items[j])
		}
		return key(items[i]) < key(items[j])
	})
}

func matches(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
