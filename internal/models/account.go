package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies what kind of money container an account is.
type AccountType string

const (
	AccountGeneral    AccountType = "general"
	AccountCash       AccountType = "cash"
	AccountBank       AccountType = "bank"
	AccountCreditCard AccountType = "credit_card"
	AccountSavings    AccountType = "savings"
	AccountExtra      AccountType = "extra"
	AccountInsurance  AccountType = "insurance"
	AccountInvestment AccountType = "investment"
	AccountLoan       AccountType = "loan"
	AccountMortgage   AccountType = "mortgage"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountGeneral, AccountCash, AccountBank, AccountCreditCard,
		AccountSavings, AccountExtra, AccountInsurance, AccountInvestment,
		AccountLoan, AccountMortgage:
		return true
	}
	return false
}

// Account is a named balance-holding container owned by a user. Its balance
// is only ever mutated as a side effect of record create/update/delete.
type Account struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OwnerID     uint            `gorm:"index;not null" json:"-"`
	Owner       User            `gorm:"foreignKey:OwnerID" json:"-"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	AccountType AccountType     `gorm:"size:16;not null;default:general" json:"account_type"`
	Balance     decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
