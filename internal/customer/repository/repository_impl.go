package repository

import (
	"context"
	"fmt"

	"github.com/smallbiznis/invoicedesk/internal/customer/domain"
	"github.com/smallbiznis/invoicedesk/pkg/db"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListFiltered(ctx context.Context, tx *gorm.DB, query string) ([]domain.CustomerTableRow, error) {
	search := db.SearchFor(tx)
	like := search.Like()
	term := db.Contains(query)

	stmt := fmt.Sprintf(
		`SELECT
			customers.id,
			customers.name,
			customers.email,
			customers.image_url,
			COUNT(invoices.id) AS total_invoices,
			COALESCE(SUM(CASE WHEN invoices.status = 'pending' THEN invoices.amount ELSE 0 END), 0) AS total_pending,
			COALESCE(SUM(CASE WHEN invoices.status = 'paid' THEN invoices.amount ELSE 0 END), 0) AS total_paid
		FROM customers
		LEFT JOIN invoices ON customers.id = invoices.customer_id
		WHERE customers.name %[1]s ? OR customers.email %[1]s ?
		GROUP BY customers.id, customers.name, customers.email, customers.image_url
		ORDER BY customers.name ASC`,
		like,
	)

	var rows []domain.CustomerTableRow
	if err := tx.WithContext(ctx).Raw(stmt, term, term).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
