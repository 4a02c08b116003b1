package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// InvoiceRow is the joined invoice/customer row scanned by the listing queries.
type InvoiceRow struct {
	ID         string
	CustomerID string
	Name       string
	Email      string
	ImageURL   string
	Date       time.Time
	Amount     int64
	Status     InvoiceStatus
}

// Repository covers the search queries the typed store cannot express.
type Repository interface {
	Search(ctx context.Context, db *gorm.DB, query string, limit, offset int) ([]InvoiceRow, error)
	CountSearch(ctx context.Context, db *gorm.DB, query string) (int64, error)
	Latest(ctx context.Context, db *gorm.DB, limit int) ([]InvoiceRow, error)
}
