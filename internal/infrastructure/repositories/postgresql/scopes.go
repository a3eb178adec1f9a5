package postgresql

import (
	"strings"

	"gorm.io/gorm"
)

// searchScope builds a case-insensitive contains predicate over a fixed set
// of columns, OR-combined. Column names come from the repository, never from
// the caller; the term is always a bound parameter.
func searchScope(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	pattern := "%" + strings.ToLower(term) + "%"
	var b strings.Builder
	args := make([]interface{}, 0, len(columns))
	for i, col := range columns {
		if i > 0 {
			b.WriteString(" OR ")
		}
		b.WriteString("LOWER(" + col + ") LIKE ?")
		args = append(args, pattern)
	}
	cond := b.String()

	return func(db *gorm.DB) *gorm.DB {
		return db.Where(cond, args...)
	}
}
