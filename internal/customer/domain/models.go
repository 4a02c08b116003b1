package domain

// Customer is written by the seed loader only; the dashboard reads it.
type Customer struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id" yaml:"id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name" yaml:"name"`
	Email    string `gorm:"type:varchar(255);not null" json:"email" yaml:"email"`
	ImageURL string `gorm:"type:varchar(255);not null" json:"image_url" yaml:"image_url"`
}

func (Customer) TableName() string {
	return "customers"
}

// CustomerField feeds the customer picker on invoice forms.
type CustomerField struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CustomerTableRow is the aggregate row scanned from the store.
type CustomerTableRow struct {
	ID            string
	Name          string
	Email         string
	ImageURL      string
	TotalInvoices int64
	TotalPending  int64
	TotalPaid     int64
}

// FormattedCustomersTable is a CustomerTableRow with money rendered for display.
type FormattedCustomersTable struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ImageURL      string `json:"image_url"`
	TotalInvoices int64  `json:"total_invoices"`
	TotalPending  string `json:"total_pending"`
	TotalPaid     string `json:"total_paid"`
}
