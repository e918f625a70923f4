// Package pagination turns a page number and a match count into a bounded
// offset/limit window over the order list.
package pagination

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// DefaultPageSize is the number of orders shown per page.
const DefaultPageSize = 10

// Page describes one window over the matching orders.
type Page struct {
	Page       int
	PageSize   int
	Offset     int
	Limit      int
	TotalItems int
	TotalPages int
}

// ParsePage reads a 1-based page number. Absent or malformed values give 1;
// numbers too large for int saturate instead.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) && page > 0 {
		return page
	}
	if err != nil {
		return 1
	}
	return ClampPage(page)
}

// ClampPage raises page numbers below 1 to 1.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Plan computes the window for page given totalItems matches.
// Pages past the last one are not clamped; they simply select no rows.
// A non-positive pageSize falls back to DefaultPageSize.
func Plan(totalItems, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if totalItems < 0 {
		totalItems = 0
	}
	page = ClampPage(page)

	// Offsets that would overflow saturate; they lie past any real total.
	offset := math.MaxInt
	if page-1 <= math.MaxInt/pageSize {
		offset = (page - 1) * pageSize
	}

	return Page{
		Page:       page,
		PageSize:   pageSize,
		Offset:     offset,
		Limit:      pageSize,
		TotalItems: totalItems,
		TotalPages: (totalItems + pageSize - 1) / pageSize,
	}
}
