package option

import "gorm.io/gorm"

// QueryOption decorates a gorm statement built by a repository.
type QueryOption interface {
	Apply(db *gorm.DB) *gorm.DB
}

type QueryOptionFunc func(db *gorm.DB) *gorm.DB

func (f QueryOptionFunc) Apply(db *gorm.DB) *gorm.DB {
	return f(db)
}

// ApplyOrder orders results, e.g. ApplyOrder("name ASC").
func ApplyOrder(order string) QueryOption {
	return QueryOptionFunc(func(db *gorm.DB) *gorm.DB {
		return db.Order(order)
	})
}

// ApplySelect restricts the selected columns.
func ApplySelect(columns ...string) QueryOption {
	return QueryOptionFunc(func(db *gorm.DB) *gorm.DB {
		return db.Select(columns)
	})
}
