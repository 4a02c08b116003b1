package server

import (
	"strconv"
	"strings"

	invoicedomain "github.com/smallbiznis/invoicedesk/internal/invoice/domain"
	"github.com/smallbiznis/invoicedesk/pkg/db/pagination"
)

type listQuery struct {
	Query string `form:"query"`
	Page  string `form:"page"`
}

func (q listQuery) term() string {
	return strings.TrimSpace(q.Query)
}

// page treats a missing or malformed page as the first one.
func (q listQuery) page() int {
	return pagination.Parse(strings.TrimSpace(q.Page), invoicedomain.ItemsPerPage).Number
}

// cacheKey identifies one rendering of the invoice list.
func (q listQuery) cacheKey() string {
	return q.term() + "|" + strconv.Itoa(q.page())
}
