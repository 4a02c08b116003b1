package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/smallbiznis/invoicedesk/internal/cache"
	"github.com/smallbiznis/invoicedesk/internal/clock"
	invoicedomain "github.com/smallbiznis/invoicedesk/internal/invoice/domain"
	"github.com/smallbiznis/invoicedesk/internal/invoice/format"
	"github.com/smallbiznis/invoicedesk/pkg/db"
	"github.com/smallbiznis/invoicedesk/pkg/db/pagination"
	"github.com/smallbiznis/invoicedesk/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const latestInvoicesLimit = 5

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Cache cache.ViewCache
	Repo  invoicedomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	views cache.ViewCache

	repo        invoicedomain.Repository
	invoicerepo repository.Repository[invoicedomain.Invoice]
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("invoice.service"),
		clock: p.Clock,
		views: p.Cache,

		repo:        p.Repo,
		invoicerepo: repository.ProvideStore[invoicedomain.Invoice](p.DB),
	}
}

func (s *Service) FetchFilteredInvoices(ctx context.Context, query string, page int) ([]invoicedomain.InvoicesTable, error) {
	// "1,234" matches the rendered amount "$1234.00"
	query = strings.ReplaceAll(query, ",", "")
	p := pagination.New(page, invoicedomain.ItemsPerPage)

	rows, err := s.repo.Search(ctx, s.db, query, p.Limit(), p.Offset())
	if err != nil {
		s.log.Error("fetch filtered invoices", zap.String("query", query), zap.Int("page", p.Number), zap.Error(err))
		return nil, invoicedomain.ErrFetchInvoices
	}

	out := make([]invoicedomain.InvoicesTable, 0, len(rows))
	for _, row := range rows {
		out = append(out, invoicedomain.InvoicesTable{
			ID:         row.ID,
			CustomerID: row.CustomerID,
			Name:       row.Name,
			Email:      row.Email,
			ImageURL:   row.ImageURL,
			Date:       row.Date.UTC().Format("2006-01-02"),
			Amount:     row.Amount,
			Status:     row.Status,
		})
	}
	return out, nil
}

func (s *Service) FetchInvoicesPages(ctx context.Context, query string) (int, error) {
	count, err := s.repo.CountSearch(ctx, s.db, query)
	if err != nil {
		s.log.Error("fetch invoice pages", zap.String("query", query), zap.Error(err))
		return 0, invoicedomain.ErrFetchInvoicesPages
	}
	return pagination.TotalPages(count, invoicedomain.ItemsPerPage), nil
}

func (s *Service) FetchInvoiceByID(ctx context.Context, id string) (*invoicedomain.InvoiceEdit, error) {
	id = strings.TrimSpace(id)
	if !isInvoiceID(id) {
		return nil, nil
	}

	invoice, err := s.invoicerepo.FindOne(ctx, &invoicedomain.Invoice{ID: id})
	if err != nil {
		s.log.Error("fetch invoice", zap.String("invoice_id", id), zap.Error(err))
		return nil, invoicedomain.ErrFetchInvoice
	}
	if invoice == nil {
		return nil, nil
	}

	return &invoicedomain.InvoiceEdit{
		ID:         invoice.ID,
		CustomerID: invoice.CustomerID,
		Amount:     format.CentsToDecimal(invoice.Amount),
		Status:     invoice.Status,
	}, nil
}

func (s *Service) FetchLatestInvoices(ctx context.Context) ([]invoicedomain.LatestInvoice, error) {
	rows, err := s.repo.Latest(ctx, s.db, latestInvoicesLimit)
	if err != nil {
		s.log.Error("fetch latest invoices", zap.Error(err))
		return nil, invoicedomain.ErrFetchLatest
	}

	out := make([]invoicedomain.LatestInvoice, 0, len(rows))
	for _, row := range rows {
		out = append(out, invoicedomain.LatestInvoice{
			ID:       row.ID,
			Name:     row.Name,
			Email:    row.Email,
			ImageURL: row.ImageURL,
			Amount:   format.Currency(row.Amount),
		})
	}
	return out, nil
}

func (s *Service) CreateInvoice(ctx context.Context, form invoicedomain.InvoiceForm) (invoicedomain.ActionResult, error) {
	valid, errs := form.Validate()
	if errs != nil {
		return invoicedomain.ActionResult{State: &invoicedomain.ActionState{
			Errors:  errs,
			Message: invoicedomain.MsgCreateMissingFields,
		}}, nil
	}

	invoice := invoicedomain.Invoice{
		ID:         uuid.NewString(),
		CustomerID: valid.CustomerID,
		Amount:     valid.AmountCents,
		Status:     valid.Status,
		Date:       datatypes.Date(clock.Today(s.clock)),
	}
	if err := s.invoicerepo.Create(ctx, &invoice); err != nil {
		s.log.Error("create invoice",
			zap.String("customer_id", valid.CustomerID),
			zap.Bool("duplicate_key", db.IsDuplicateKeyErr(err)),
			zap.Error(err),
		)
		return invoicedomain.ActionResult{State: &invoicedomain.ActionState{
			Message: invoicedomain.ErrCreateInvoice.Error(),
		}}, invoicedomain.ErrCreateInvoice
	}

	s.log.Info("invoice created", zap.String("invoice_id", invoice.ID))
	s.revalidate(ctx)
	return invoicedomain.ActionResult{RedirectTo: invoicedomain.InvoicesPath}, nil
}

func (s *Service) UpdateInvoice(ctx context.Context, id string, form invoicedomain.InvoiceForm) (invoicedomain.ActionResult, error) {
	valid, errs := form.Validate()
	if errs != nil {
		return invoicedomain.ActionResult{State: &invoicedomain.ActionState{
			Errors:  errs,
			Message: invoicedomain.MsgUpdateMissingFields,
		}}, nil
	}

	id = strings.TrimSpace(id)
	if !isInvoiceID(id) {
		s.log.Warn("update matched no invoice", zap.String("invoice_id", id))
		s.revalidate(ctx)
		return invoicedomain.ActionResult{RedirectTo: invoicedomain.InvoicesPath}, nil
	}

	// date is never part of an update
	affected, err := s.invoicerepo.Update(ctx, id, map[string]any{
		"customer_id": valid.CustomerID,
		"amount":      valid.AmountCents,
		"status":      string(valid.Status),
	})
	if err != nil {
		s.log.Error("update invoice", zap.String("invoice_id", id), zap.Error(err))
		return invoicedomain.ActionResult{State: &invoicedomain.ActionState{
			Message: invoicedomain.ErrUpdateInvoice.Error(),
		}}, invoicedomain.ErrUpdateInvoice
	}
	if affected == 0 {
		s.log.Warn("update matched no invoice", zap.String("invoice_id", id))
	}

	s.revalidate(ctx)
	return invoicedomain.ActionResult{RedirectTo: invoicedomain.InvoicesPath}, nil
}

// DeleteInvoice is best effort: store failures are logged, never surfaced.
func (s *Service) DeleteInvoice(ctx context.Context, id string) (invoicedomain.DeleteResult, error) {
	id = strings.TrimSpace(id)
	result := invoicedomain.DeleteResult{RedirectTo: invoicedomain.InvoicesPath}

	if isInvoiceID(id) {
		affected, err := s.invoicerepo.Delete(ctx, id)
		if err != nil {
			s.log.Error("delete invoice", zap.String("invoice_id", id), zap.Error(err))
		} else {
			result.Deleted = affected > 0
		}
	}

	s.revalidate(ctx)
	return result, nil
}

func (s *Service) revalidate(ctx context.Context) {
	if s.views == nil {
		return
	}
	if err := s.views.Revalidate(ctx, invoicedomain.InvoicesPath); err != nil {
		s.log.Warn("revalidate invoices view", zap.Error(err))
	}
}

// isInvoiceID rejects ids that could never match, which postgres would
// otherwise report as a uuid syntax error.
func isInvoiceID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
