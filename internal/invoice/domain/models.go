package domain

import (
	customerdomain "github.com/smallbiznis/invoicedesk/internal/customer/domain"
	"gorm.io/datatypes"
)

type InvoiceStatus string

const (
	StatusPending InvoiceStatus = "pending"
	StatusPaid    InvoiceStatus = "paid"
)

func (s InvoiceStatus) Valid() bool {
	return s == StatusPending || s == StatusPaid
}

// Invoice amounts are stored in integer cents. Date is stamped on creation
// and never rewritten.
type Invoice struct {
	ID         string                   `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID string                   `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer   *customerdomain.Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
	Amount     int64                    `gorm:"not null" json:"amount"`
	Status     InvoiceStatus            `gorm:"type:varchar(16);not null" json:"status"`
	Date       datatypes.Date           `gorm:"not null;index" json:"date"`
}

func (Invoice) TableName() string {
	return "invoices"
}
