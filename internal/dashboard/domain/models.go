package domain

import (
	"context"
	"errors"

	invoicedomain "github.com/smallbiznis/invoicedesk/internal/invoice/domain"
)

// Revenue is one bar of the monthly revenue chart.
type Revenue struct {
	Month   string `gorm:"type:varchar(4);primaryKey" json:"month" yaml:"month"`
	Revenue int64  `gorm:"not null" json:"revenue" yaml:"revenue"`
}

func (Revenue) TableName() string {
	return "revenue"
}

type CardData struct {
	NumberOfInvoices     int64 `json:"number_of_invoices"`
	NumberOfCustomers    int64 `json:"number_of_customers"`
	TotalPaidInvoices    int64 `json:"total_paid_invoices"`
	TotalPendingInvoices int64 `json:"total_pending_invoices"`
}

type Overview struct {
	Cards          CardData                      `json:"cards"`
	Revenue        []Revenue                     `json:"revenue"`
	LatestInvoices []invoicedomain.LatestInvoice `json:"latest_invoices"`
}

type Service interface {
	FetchRevenue(ctx context.Context) ([]Revenue, error)
	FetchCardData(ctx context.Context) (CardData, error)
	FetchOverview(ctx context.Context) (Overview, error)
}

var (
	ErrFetchRevenue  = errors.New("Failed to fetch revenue data.")
	ErrFetchCardData = errors.New("Failed to fetch card data.")
)
