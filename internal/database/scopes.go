package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/bujo-tasks/internal/utils"
)

// Paginate restricts a query to one page. Params without a limit leave the
// query unbounded.
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params.Limit < 1 {
			return db
		}
		return db.Offset(params.Offset()).Limit(params.Limit)
	}
}

// NewestFirst orders rows by last update, ties broken by descending ID so
// that pages are stable.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("updated_at DESC").Order("id DESC")
}
