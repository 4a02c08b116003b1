package seed

import (
	"context"
	"errors"
	"sync/atomic"

	authdomain "github.com/smallbiznis/invoicedesk/internal/auth/domain"
	"github.com/smallbiznis/invoicedesk/internal/auth/password"
	invoicedomain "github.com/smallbiznis/invoicedesk/internal/invoice/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// insertConcurrency bounds in-flight inserts within one pass.
const insertConcurrency = 4

// Summary counts rows actually inserted; rows that already existed are skipped.
type Summary struct {
	Users     int64 `json:"users"`
	Customers int64 `json:"customers"`
	Invoices  int64 `json:"invoices"`
	Revenue   int64 `json:"revenue"`
}

// Run loads the embedded fixtures into db. It is safe to run repeatedly.
func Run(ctx context.Context, db *gorm.DB, log *zap.Logger) (Summary, error) {
	fixtures, err := LoadFixtures()
	if err != nil {
		return Summary{}, err
	}
	return Load(ctx, db, log, fixtures)
}

// Load inserts fixtures in one transaction: users, customers, invoices,
// then revenue. Any failure rolls the whole load back.
func Load(ctx context.Context, db *gorm.DB, log *zap.Logger, fixtures Fixtures) (Summary, error) {
	if db == nil {
		return Summary{}, errors.New("seed database handle is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("seed")

	users, err := hashPasswords(ctx, fixtures.Users)
	if err != nil {
		return Summary{}, err
	}

	invoices := make([]invoicedomain.Invoice, 0, len(fixtures.Invoices))
	for _, f := range fixtures.Invoices {
		invoice, err := f.toModel()
		if err != nil {
			return Summary{}, err
		}
		invoices = append(invoices, invoice)
	}

	var summary Summary
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if summary.Users, err = insertAll(ctx, tx, users, "id"); err != nil {
			return err
		}
		if summary.Customers, err = insertAll(ctx, tx, fixtures.Customers, "id"); err != nil {
			return err
		}
		if summary.Invoices, err = insertAll(ctx, tx, invoices, "id"); err != nil {
			return err
		}
		summary.Revenue, err = insertAll(ctx, tx, fixtures.Revenue, "month")
		return err
	})
	if err != nil {
		log.Error("seed failed", zap.Error(err))
		return Summary{}, err
	}

	log.Info("seed complete",
		zap.Int64("users", summary.Users),
		zap.Int64("customers", summary.Customers),
		zap.Int64("invoices", summary.Invoices),
		zap.Int64("revenue", summary.Revenue),
	)
	return summary, nil
}

func hashPasswords(ctx context.Context, users []authdomain.User) ([]authdomain.User, error) {
	out := make([]authdomain.User, len(users))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(insertConcurrency)
	for i, u := range users {
		i, u := i, u
		g.Go(func() error {
			hashed, err := password.Hash(u.Password)
			if err != nil {
				return err
			}
			u.Password = hashed
			out[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// insertAll inserts rows concurrently, skipping those whose conflict column
// already holds the value.
func insertAll[T any](ctx context.Context, tx *gorm.DB, rows []T, conflictColumn string) (int64, error) {
	var inserted atomic.Int64
	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: conflictColumn}},
		DoNothing: true,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(insertConcurrency)
	for i := range rows {
		row := &rows[i]
		g.Go(func() error {
			res := tx.WithContext(gctx).Clauses(onConflict).Create(row)
			if res.Error != nil {
				return res.Error
			}
			inserted.Add(res.RowsAffected)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return inserted.Load(), nil
}
