package persistence

import (
	"fmt"

	"gorm.io/gorm"
)

func paginate(q *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	return q
}

func sortBy(q *gorm.DB, column, order, fallback string) *gorm.DB {
	if column == "" {
		return q.Order(fallback)
	}
	if order == "" {
		order = "asc"
	}
	return q.Order(fmt.Sprintf("%s %s", column, order))
}
