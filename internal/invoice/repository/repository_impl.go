package repository

import (
	"context"
	"fmt"

	"github.com/smallbiznis/invoicedesk/internal/invoice/domain"
	"github.com/smallbiznis/invoicedesk/pkg/db"
	"gorm.io/gorm"
)

const invoiceColumns = `invoices.id,
			invoices.customer_id,
			invoices.amount,
			invoices.date,
			invoices.status,
			customers.name,
			customers.email,
			customers.image_url`

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

// Search pages through invoices matching query on customer name or email,
// the amount rendered as dollars, the date as text, or the status.
func (r *repo) Search(ctx context.Context, tx *gorm.DB, query string, limit, offset int) ([]domain.InvoiceRow, error) {
	search := db.SearchFor(tx)
	stmt := fmt.Sprintf(
		`SELECT %s
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		WHERE %s
		ORDER BY invoices.date DESC, invoices.id ASC
		LIMIT ? OFFSET ?`,
		invoiceColumns,
		matchPredicate(search, search.Dollars("invoices.amount")),
	)

	term := db.Contains(query)
	var rows []domain.InvoiceRow
	err := tx.WithContext(ctx).Raw(stmt, term, term, term, term, term, limit, offset).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountSearch matches the amount as its raw integer text, unlike Search.
func (r *repo) CountSearch(ctx context.Context, tx *gorm.DB, query string) (int64, error) {
	search := db.SearchFor(tx)
	stmt := fmt.Sprintf(
		`SELECT COUNT(*)
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		WHERE %s`,
		matchPredicate(search, search.Text("invoices.amount")),
	)

	term := db.Contains(query)
	var count int64
	err := tx.WithContext(ctx).Raw(stmt, term, term, term, term, term).Scan(&count).Error
	return count, err
}

func (r *repo) Latest(ctx context.Context, tx *gorm.DB, limit int) ([]domain.InvoiceRow, error) {
	stmt := fmt.Sprintf(
		`SELECT %s
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		ORDER BY invoices.date DESC, invoices.id ASC
		LIMIT ?`,
		invoiceColumns,
	)

	var rows []domain.InvoiceRow
	if err := tx.WithContext(ctx).Raw(stmt, limit).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func matchPredicate(search db.Search, amountExpr string) string {
	like := search.Like()
	return fmt.Sprintf(
		`customers.name %[1]s ?
			OR customers.email %[1]s ?
			OR %[2]s %[1]s ?
			OR %[3]s %[1]s ?
			OR %[4]s %[1]s ?`,
		like,
		amountExpr,
		search.Text("invoices.date"),
		search.Text("invoices.status"),
	)
}
