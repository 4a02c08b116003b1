package seed

import (
	_ "embed"
	"fmt"
	"time"

	authdomain "github.com/smallbiznis/invoicedesk/internal/auth/domain"
	customerdomain "github.com/smallbiznis/invoicedesk/internal/customer/domain"
	dashboarddomain "github.com/smallbiznis/invoicedesk/internal/dashboard/domain"
	invoicedomain "github.com/smallbiznis/invoicedesk/internal/invoice/domain"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

// Fixtures is the placeholder data set. User passwords are plaintext here
// and hashed before insertion.
type Fixtures struct {
	Users     []authdomain.User         `yaml:"users"`
	Customers []customerdomain.Customer `yaml:"customers"`
	Invoices  []InvoiceFixture          `yaml:"invoices"`
	Revenue   []dashboarddomain.Revenue `yaml:"revenue"`
}

type InvoiceFixture struct {
	ID         string `yaml:"id"`
	CustomerID string `yaml:"customer_id"`
	Amount     int64  `yaml:"amount"`
	Status     string `yaml:"status"`
	Date       string `yaml:"date"`
}

func (f InvoiceFixture) toModel() (invoicedomain.Invoice, error) {
	date, err := time.Parse(time.DateOnly, f.Date)
	if err != nil {
		return invoicedomain.Invoice{}, fmt.Errorf("invoice %s: %w", f.ID, err)
	}
	status := invoicedomain.InvoiceStatus(f.Status)
	if !status.Valid() {
		return invoicedomain.Invoice{}, fmt.Errorf("invoice %s: unknown status %q", f.ID, f.Status)
	}
	return invoicedomain.Invoice{
		ID:         f.ID,
		CustomerID: f.CustomerID,
		Amount:     f.Amount,
		Status:     status,
		Date:       datatypes.Date(date),
	}, nil
}

// LoadFixtures parses the embedded data set.
func LoadFixtures() (Fixtures, error) {
	return parseFixtures(fixturesYAML)
}

func parseFixtures(raw []byte) (Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Fixtures{}, fmt.Errorf("parse fixtures: %w", err)
	}
	return f, nil
}
