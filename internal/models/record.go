package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordType tags the direction of a ledger entry.
type RecordType string

const (
	RecordExpense  RecordType = "expense"
	RecordIncome   RecordType = "income"
	RecordTransfer RecordType = "transfer"
)

func (t RecordType) Valid() bool {
	return t == RecordExpense || t == RecordIncome || t == RecordTransfer
}

// MinAmount is the smallest amount a record may carry.
var MinAmount = decimal.NewFromFloat(0.01)

// Record is a single ledger entry. All entity references besides the owner
// are optional: cascade rules clear account/category/customer references on
// delete, so a record must stay consistent with any of them missing.
type Record struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	OwnerID           uint             `gorm:"index;not null" json:"-"`
	Owner             User             `gorm:"foreignKey:OwnerID" json:"-"`
	RecordType        RecordType       `gorm:"size:16;not null;default:expense" json:"record_type"`
	Amount            decimal.Decimal  `gorm:"type:numeric(15,2);not null" json:"amount"`
	Note              string           `gorm:"size:100" json:"note"`
	PaymentDate       time.Time        `gorm:"type:date;index" json:"payment_date"`
	CategoryID        *uint            `gorm:"index" json:"category"`
	Category          *Category        `gorm:"foreignKey:CategoryID" json:"-"`
	AccountID         *uint            `gorm:"index" json:"account"`
	Account           *Account         `gorm:"foreignKey:AccountID" json:"-"`
	MethodOfPaymentID *uint            `gorm:"index" json:"method_of_payment"`
	MethodOfPayment   *MethodOfPayment `gorm:"foreignKey:MethodOfPaymentID" json:"-"`
	CustomerID        *uint            `gorm:"index" json:"customer"`
	Customer          *Customer        `gorm:"foreignKey:CustomerID" json:"-"`
	Voucher           string           `gorm:"size:255" json:"voucher"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}
