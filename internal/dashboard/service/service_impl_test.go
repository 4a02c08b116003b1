package service

import (
	"context"
	"testing"
	"time"

	"github.com/smallbiznis/invoicedesk/internal/cache"
	"github.com/smallbiznis/invoicedesk/internal/clock"
	dashboarddomain "github.com/smallbiznis/invoicedesk/internal/dashboard/domain"
	invoicerepository "github.com/smallbiznis/invoicedesk/internal/invoice/repository"
	invoiceservice "github.com/smallbiznis/invoicedesk/internal/invoice/service"
	"github.com/smallbiznis/invoicedesk/internal/seed"
	"github.com/smallbiznis/invoicedesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T, seeded bool) (dashboarddomain.Service, *gorm.DB) {
	t.Helper()
	db := testutil.OpenDB(t)
	if seeded {
		_, err := seed.Run(context.Background(), db, zap.NewNop())
		require.NoError(t, err)
	}

	invoices := invoiceservice.NewService(invoiceservice.ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: clock.NewFakeClock(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
		Cache: cache.NewMemoryViewCache(time.Minute),
		Repo:  invoicerepository.Provide(),
	})
	return NewService(Params{DB: db, Log: zap.NewNop(), InvoiceSvc: invoices}), db
}

func TestFetchCardData(t *testing.T) {
	svc, _ := newTestService(t, true)

	cards, err := svc.FetchCardData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dashboarddomain.CardData{
		NumberOfInvoices:     13,
		NumberOfCustomers:    6,
		TotalPaidInvoices:    8,
		TotalPendingInvoices: 5,
	}, cards)
	assert.Equal(t, cards.NumberOfInvoices, cards.TotalPaidInvoices+cards.TotalPendingInvoices)
}

func TestFetchCardDataEmptyStore(t *testing.T) {
	svc, _ := newTestService(t, false)

	cards, err := svc.FetchCardData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), cards.NumberOfInvoices)
	assert.Equal(t, int64(0), cards.NumberOfCustomers)
	assert.Equal(t, int64(0), cards.TotalPaidInvoices)
	assert.Equal(t, int64(0), cards.TotalPendingInvoices)
}

func TestFetchRevenueCalendarOrder(t *testing.T) {
	svc, _ := newTestService(t, true)

	revenue, err := svc.FetchRevenue(context.Background())
	require.NoError(t, err)
	require.Len(t, revenue, 12)

	months := make([]string, 0, len(revenue))
	for _, r := range revenue {
		months = append(months, r.Month)
	}
	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}, months)
	assert.Equal(t, int64(4800), revenue[11].Revenue)
}

func TestFetchRevenueEmpty(t *testing.T) {
	svc, _ := newTestService(t, false)

	revenue, err := svc.FetchRevenue(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, revenue)
	assert.Empty(t, revenue)
}

func TestFetchOverview(t *testing.T) {
	svc, _ := newTestService(t, true)

	overview, err := svc.FetchOverview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(13), overview.Cards.NumberOfInvoices)
	assert.Len(t, overview.Revenue, 12)
	require.Len(t, overview.LatestInvoices, 5)
	assert.Equal(t, "$448.00", overview.LatestInvoices[0].Amount)
}

func TestDashboardQueriesHideStoreErrors(t *testing.T) {
	svc, db := newTestService(t, true)
	require.NoError(t, db.Exec("DROP TABLE revenue").Error)
	require.NoError(t, db.Exec("DROP TABLE invoices").Error)
	ctx := context.Background()

	_, err := svc.FetchRevenue(ctx)
	assert.Equal(t, dashboarddomain.ErrFetchRevenue, err)

	_, err = svc.FetchCardData(ctx)
	assert.Equal(t, dashboarddomain.ErrFetchCardData, err)

	_, err = svc.FetchOverview(ctx)
	assert.Error(t, err)
}

func TestMonthIndex(t *testing.T) {
	assert.Equal(t, 1, monthIndex("Jan"))
	assert.Equal(t, 12, monthIndex(" dec "))
	assert.Equal(t, 13, monthIndex("Q1"))
}
