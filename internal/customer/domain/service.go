package domain

import (
	"context"
	"errors"
)

type Service interface {
	FetchCustomers(ctx context.Context) ([]CustomerField, error)
	FetchFilteredCustomers(ctx context.Context, query string) ([]FormattedCustomersTable, error)
}

var (
	ErrFetchCustomers     = errors.New("Failed to fetch all customers.")
	ErrFetchCustomerTable = errors.New("Failed to fetch customer table.")
)
