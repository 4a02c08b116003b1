package service

import (
	"context"

	"github.com/smallbiznis/invoicedesk/internal/customer/domain"
	"github.com/smallbiznis/invoicedesk/internal/invoice/format"
	"github.com/smallbiznis/invoicedesk/pkg/db/option"
	"github.com/smallbiznis/invoicedesk/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository

	customerrepo repository.Repository[domain.Customer]
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("customer.service"),
		repo: p.Repo,

		customerrepo: repository.ProvideStore[domain.Customer](p.DB),
	}
}

func (s *Service) FetchCustomers(ctx context.Context) ([]domain.CustomerField, error) {
	customers, err := s.customerrepo.Find(ctx, nil,
		option.ApplySelect("id", "name"),
		option.ApplyOrder("name ASC"),
	)
	if err != nil {
		s.log.Error("fetch customers", zap.Error(err))
		return nil, domain.ErrFetchCustomers
	}

	fields := make([]domain.CustomerField, 0, len(customers))
	for _, c := range customers {
		fields = append(fields, domain.CustomerField{ID: c.ID, Name: c.Name})
	}
	return fields, nil
}

func (s *Service) FetchFilteredCustomers(ctx context.Context, query string) ([]domain.FormattedCustomersTable, error) {
	rows, err := s.repo.ListFiltered(ctx, s.db, query)
	if err != nil {
		s.log.Error("fetch customer table", zap.String("query", query), zap.Error(err))
		return nil, domain.ErrFetchCustomerTable
	}

	out := make([]domain.FormattedCustomersTable, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.FormattedCustomersTable{
			ID:            row.ID,
			Name:          row.Name,
			Email:         row.Email,
			ImageURL:      row.ImageURL,
			TotalInvoices: row.TotalInvoices,
			TotalPending:  format.Currency(row.TotalPending),
			TotalPaid:     format.Currency(row.TotalPaid),
		})
	}
	return out, nil
}
