// Package query normalizes raw list-endpoint parameters into typed filter
// values and a validated pagination window. A filter is active only when the
// raw value is present and non-empty; empty string and a missing parameter
// are equivalent. Numeric filters that fail parsing are treated as absent
// rather than matching zero rows.
package query

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Page is a validated pagination window.
type Page struct {
	Page  int
	Limit int
}

// Offset returns the row offset for the window.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pages returns the total page count for the given row total,
// ceil(total/limit).
func (p Page) Pages(total int64) int {
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}

// ParsePage coerces raw page and limit strings into a Page. Missing,
// unparsable, or non-positive values fall back to the defaults.
func ParsePage(rawPage, rawLimit string) Page {
	page := positiveInt(rawPage, DefaultPage)
	limit := positiveInt(rawLimit, DefaultLimit)
	return Page{Page: page, Limit: limit}
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// String returns the raw value as an active filter, or nil when empty.
func String(raw string) *string {
	if raw == "" {
		return nil
	}
	return &raw
}

// ID parses a foreign-key filter. Empty or non-integer input deactivates
// the filter.
func ID(raw string) *uint {
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	id := uint(n)
	return &id
}
