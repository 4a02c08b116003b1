package repository

import (
	"context"

	"github.com/smallbiznis/invoicedesk/pkg/db/option"
)

// Repository maps a gorm model to its table.
type Repository[T any] interface {
	Find(ctx context.Context, query *T, opts ...option.QueryOption) ([]*T, error)
	// FindOne returns (nil, nil) when no row matches.
	FindOne(ctx context.Context, query *T, opts ...option.QueryOption) (*T, error)
	Create(ctx context.Context, resource *T) error
	// Update applies resource to the row with the given id and reports how
	// many rows matched.
	Update(ctx context.Context, resourceID string, resource any) (int64, error)
	Delete(ctx context.Context, resourceID string) (int64, error)
	Count(ctx context.Context, query *T) (int64, error)
}
