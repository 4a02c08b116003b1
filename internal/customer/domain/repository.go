package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// ListFiltered matches query against name or email, case-insensitively.
	ListFiltered(ctx context.Context, db *gorm.DB, query string) ([]CustomerTableRow, error)
}
