package service

import (
	"context"
	"sort"
	"strings"
	"time"

	customerdomain "github.com/smallbiznis/invoicedesk/internal/customer/domain"
	dashboarddomain "github.com/smallbiznis/invoicedesk/internal/dashboard/domain"
	invoicedomain "github.com/smallbiznis/invoicedesk/internal/invoice/domain"
	"github.com/smallbiznis/invoicedesk/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	InvoiceSvc invoicedomain.Service
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	invoiceSvc invoicedomain.Service

	invoicerepo  repository.Repository[invoicedomain.Invoice]
	customerrepo repository.Repository[customerdomain.Customer]
}

func NewService(p Params) dashboarddomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("dashboard.service"),
		invoiceSvc: p.InvoiceSvc,

		invoicerepo:  repository.ProvideStore[invoicedomain.Invoice](p.DB),
		customerrepo: repository.ProvideStore[customerdomain.Customer](p.DB),
	}
}

func (s *Service) FetchRevenue(ctx context.Context) ([]dashboarddomain.Revenue, error) {
	var revenue []dashboarddomain.Revenue
	if err := s.db.WithContext(ctx).Raw(`SELECT month, revenue FROM revenue`).Scan(&revenue).Error; err != nil {
		s.log.Error("fetch revenue", zap.Error(err))
		return nil, dashboarddomain.ErrFetchRevenue
	}
	if revenue == nil {
		revenue = []dashboarddomain.Revenue{}
	}
	// storage order depends on insert order, the chart wants calendar order
	sort.SliceStable(revenue, func(i, j int) bool {
		return monthIndex(revenue[i].Month) < monthIndex(revenue[j].Month)
	})
	return revenue, nil
}

// FetchCardData runs its four aggregates concurrently; the first failure
// cancels the rest.
func (s *Service) FetchCardData(ctx context.Context) (dashboarddomain.CardData, error) {
	var (
		invoices, customers int64
		paid, pending       int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		invoices, err = s.invoicerepo.Count(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		customers, err = s.customerrepo.Count(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		paid, err = s.invoicerepo.Count(gctx, &invoicedomain.Invoice{Status: invoicedomain.StatusPaid})
		return err
	})
	g.Go(func() (err error) {
		pending, err = s.invoicerepo.Count(gctx, &invoicedomain.Invoice{Status: invoicedomain.StatusPending})
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.Error("fetch card data", zap.Error(err))
		return dashboarddomain.CardData{}, dashboarddomain.ErrFetchCardData
	}

	return dashboarddomain.CardData{
		NumberOfInvoices:     invoices,
		NumberOfCustomers:    customers,
		TotalPaidInvoices:    paid,
		TotalPendingInvoices: pending,
	}, nil
}

func (s *Service) FetchOverview(ctx context.Context) (dashboarddomain.Overview, error) {
	var out dashboarddomain.Overview

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Cards, err = s.FetchCardData(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Revenue, err = s.FetchRevenue(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.LatestInvoices, err = s.invoiceSvc.FetchLatestInvoices(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboarddomain.Overview{}, err
	}
	return out, nil
}

// monthIndex orders "Jan".."Dec"; unknown labels sort last.
func monthIndex(label string) int {
	label = strings.TrimSpace(label)
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(label, m.String()[:3]) {
			return int(m)
		}
	}
	return 13
}
