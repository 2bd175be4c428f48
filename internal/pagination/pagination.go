// Package pagination holds the list-page helpers shared by the product
// and category list pages.
package pagination

import "strconv"

// ValidateInput normalizes the free-text page input: empty or
// non-numeric input falls back to the current page, numbers are
// clamped to [1, totalPages].
func ValidateInput(value string, currentPage, totalPages int) int {
	if value == "" {
		return currentPage
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return currentPage
	}
	if n < 1 {
		return 1
	}
	if n > totalPages {
		return totalPages
	}
	return n
}

// PagesFromTotal derives a page count from a total item count.
func PagesFromTotal(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	return pages
}
