package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/smallbiznis/invoicedesk/internal/invoice/format"
)

// Form field names, shared by the HTTP form and the error map.
const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

const (
	msgCustomerRequired = "Please select a customer."
	msgAmountPositive   = "Please enter an amount greater than $0."
	msgAmountTooLarge   = "Please enter an amount no greater than $1,000,000,000,000."
	msgStatusRequired   = "Please select an invoice status."
)

// InvoiceForm is the raw, unvalidated form submission.
type InvoiceForm struct {
	CustomerID string `form:"customerId"`
	Amount     string `form:"amount"`
	Status     string `form:"status"`
}

// ValidInvoice is a form that passed validation, with the amount in cents.
type ValidInvoice struct {
	CustomerID  string
	AmountCents int64
	Status      InvoiceStatus
}

// FieldErrors maps a form field to its validation messages.
type FieldErrors map[string][]string

func (e FieldErrors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Validate checks every field and reports all failures together.
func (f InvoiceForm) Validate() (ValidInvoice, FieldErrors) {
	errs := FieldErrors{}
	out := ValidInvoice{}

	out.CustomerID = strings.TrimSpace(f.CustomerID)
	if out.CustomerID == "" {
		errs.add(FieldCustomerID, msgCustomerRequired)
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(f.Amount), 64)
	switch {
	case err != nil && !errors.Is(err, strconv.ErrRange), math.IsNaN(amount), amount <= 0:
		errs.add(FieldAmount, msgAmountPositive)
	default:
		cents, ok := format.DecimalToCents(amount)
		switch {
		case !ok:
			errs.add(FieldAmount, msgAmountTooLarge)
		case cents <= 0:
			// sub-cent amounts round to zero
			errs.add(FieldAmount, msgAmountPositive)
		default:
			out.AmountCents = cents
		}
	}

	out.Status = InvoiceStatus(strings.TrimSpace(f.Status))
	if !out.Status.Valid() {
		errs.add(FieldStatus, msgStatusRequired)
	}

	if len(errs) > 0 {
		return ValidInvoice{}, errs
	}
	return out, nil
}
