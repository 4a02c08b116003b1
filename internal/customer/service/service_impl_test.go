package service

import (
	"context"
	"testing"

	"github.com/smallbiznis/invoicedesk/internal/customer/domain"
	"github.com/smallbiznis/invoicedesk/internal/customer/repository"
	"github.com/smallbiznis/invoicedesk/internal/seed"
	"github.com/smallbiznis/invoicedesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()
	db := testutil.OpenDB(t)
	_, err := seed.Run(context.Background(), db, zap.NewNop())
	require.NoError(t, err)

	return New(Params{DB: db, Log: zap.NewNop(), Repo: repository.Provide()}), db
}

func TestFetchCustomersOrderedByName(t *testing.T) {
	svc, _ := newTestService(t)

	customers, err := svc.FetchCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 6)

	names := make([]string, 0, len(customers))
	for _, c := range customers {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		"Amy Burns",
		"Balazs Orban",
		"Delba de Oliveira",
		"Evil Rabbit",
		"Lee Robinson",
		"Michael Novotny",
	}, names)
}

func TestFetchFilteredCustomersTotals(t *testing.T) {
	svc, _ := newTestService(t)

	rows, err := svc.FetchFilteredCustomers(context.Background(), "EVIL")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Evil Rabbit", rows[0].Name)
	assert.Equal(t, int64(2), rows[0].TotalInvoices)
	assert.Equal(t, "$164.61", rows[0].TotalPending)
	assert.Equal(t, "$0.00", rows[0].TotalPaid)
}

func TestFetchFilteredCustomersMatchesEmail(t *testing.T) {
	svc, _ := newTestService(t)

	rows, err := svc.FetchFilteredCustomers(context.Background(), "orban.com")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Balazs Orban", rows[0].Name)
	assert.Equal(t, int64(3), rows[0].TotalInvoices)
	assert.Equal(t, "$345.77", rows[0].TotalPending)
	assert.Equal(t, "$174.91", rows[0].TotalPaid)
}

func TestFetchFilteredCustomersWithoutInvoices(t *testing.T) {
	svc, db := newTestService(t)

	require.NoError(t, db.Create(&domain.Customer{
		ID:       "9a1b2c3d-0000-4000-8000-000000000001",
		Name:     "Zero Invoices",
		Email:    "zero@example.com",
		ImageURL: "/customers/zero.png",
	}).Error)

	rows, err := svc.FetchFilteredCustomers(context.Background(), "zero")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(0), rows[0].TotalInvoices)
	assert.Equal(t, "$0.00", rows[0].TotalPending)
	assert.Equal(t, "$0.00", rows[0].TotalPaid)
}

func TestFetchFilteredCustomersNoMatch(t *testing.T) {
	svc, _ := newTestService(t)

	rows, err := svc.FetchFilteredCustomers(context.Background(), "nobody-here")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFetchCustomersStoreFailure(t *testing.T) {
	svc, db := newTestService(t)
	require.NoError(t, db.Exec("DROP TABLE invoices").Error)
	require.NoError(t, db.Exec("DROP TABLE customers").Error)

	_, err := svc.FetchCustomers(context.Background())
	assert.ErrorIs(t, err, domain.ErrFetchCustomers)

	_, err = svc.FetchFilteredCustomers(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrFetchCustomerTable)
}
