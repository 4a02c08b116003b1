package domain

import (
	"context"
	"errors"
)

// InvoicesPath is the listing view revalidated after every mutation.
const InvoicesPath = "/dashboard/invoices"

const ItemsPerPage = 6

// ActionState is what a failed form action hands back to the form.
type ActionState struct {
	Errors  FieldErrors `json:"errors,omitempty"`
	Message string      `json:"message"`
}

// ActionResult carries either a failure State or, on success, where the
// caller should navigate next.
type ActionResult struct {
	State      *ActionState
	RedirectTo string
}

func (r ActionResult) OK() bool {
	return r.State == nil
}

// DeleteResult reports whether a row actually existed.
type DeleteResult struct {
	Deleted    bool   `json:"deleted"`
	RedirectTo string `json:"-"`
}

// InvoicesTable is one row of the invoice listing.
type InvoicesTable struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	ImageURL   string        `json:"image_url"`
	Date       string        `json:"date"`
	Amount     int64         `json:"amount"`
	Status     InvoiceStatus `json:"status"`
}

// LatestInvoice is a dashboard card row with the amount already formatted.
type LatestInvoice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
	Amount   string `json:"amount"`
}

// InvoiceEdit pre-fills the edit form; Amount is in dollars.
type InvoiceEdit struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Amount     float64       `json:"amount"`
	Status     InvoiceStatus `json:"status"`
}

type Service interface {
	FetchFilteredInvoices(ctx context.Context, query string, page int) ([]InvoicesTable, error)
	FetchInvoicesPages(ctx context.Context, query string) (int, error)
	// FetchInvoiceByID returns (nil, nil) when the id does not exist.
	FetchInvoiceByID(ctx context.Context, id string) (*InvoiceEdit, error)
	FetchLatestInvoices(ctx context.Context) ([]LatestInvoice, error)

	CreateInvoice(ctx context.Context, form InvoiceForm) (ActionResult, error)
	UpdateInvoice(ctx context.Context, id string, form InvoiceForm) (ActionResult, error)
	DeleteInvoice(ctx context.Context, id string) (DeleteResult, error)
}

var (
	ErrFetchInvoices      = errors.New("Failed to fetch invoices.")
	ErrFetchInvoicesPages = errors.New("Failed to fetch total number of invoices.")
	ErrFetchInvoice       = errors.New("Failed to fetch invoice.")
	ErrFetchLatest        = errors.New("Failed to fetch the latest invoices.")

	ErrCreateInvoice = errors.New("Database Error: Failed to Create Invoice.")
	ErrUpdateInvoice = errors.New("Database Error: Failed to Update Invoice.")
	ErrDeleteInvoice = errors.New("Database Error: Failed to Delete Invoice.")
)

const (
	MsgCreateMissingFields = "Missing Fields. Failed to Create Invoice."
	MsgUpdateMissingFields = "Missing Fields. Failed to Update Invoice."
)
