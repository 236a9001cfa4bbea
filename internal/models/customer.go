package models

import (
	"time"
)

// TaxRegime is the fiscal classification of a customer, following the SAT
// regime catalog codes.
type TaxRegime string

const (
	RegimeGeneralLegalEntity   TaxRegime = "601"
	RegimeNonProfit            TaxRegime = "603"
	RegimeWagesAndSalaries     TaxRegime = "605"
	RegimeLease                TaxRegime = "606"
	RegimeDisposalOfGoods      TaxRegime = "607"
	RegimeOtherIncome          TaxRegime = "608"
	RegimeForeignResident      TaxRegime = "610"
	RegimeDividendIncome       TaxRegime = "611"
	RegimeBusinessProfessional TaxRegime = "612"
	RegimeInterestIncome       TaxRegime = "614"
	RegimePrizeIncome          TaxRegime = "615"
	RegimeNoTaxObligations     TaxRegime = "616"
	RegimeCooperativeSociety   TaxRegime = "620"
	RegimeFiscalIncorporation  TaxRegime = "621"
	RegimeDigitalPlatforms     TaxRegime = "625"
	RegimeSimplifiedTrust      TaxRegime = "626"
)

func (r TaxRegime) Valid() bool {
	switch r {
	case RegimeGeneralLegalEntity, RegimeNonProfit, RegimeWagesAndSalaries,
		RegimeLease, RegimeDisposalOfGoods, RegimeOtherIncome,
		RegimeForeignResident, RegimeDividendIncome, RegimeBusinessProfessional,
		RegimeInterestIncome, RegimePrizeIncome, RegimeNoTaxObligations,
		RegimeCooperativeSociety, RegimeFiscalIncorporation,
		RegimeDigitalPlatforms, RegimeSimplifiedTrust:
		return true
	}
	return false
}

// CustomerTier ranks customers by commercial importance.
type CustomerTier string

const (
	TierA CustomerTier = "A"
	TierB CustomerTier = "B"
	TierC CustomerTier = "C"
)

func (t CustomerTier) Valid() bool {
	return t == TierA || t == TierB || t == TierC
}

// Customer is optional counterparty metadata attached to records.
type Customer struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	OwnerID     uint         `gorm:"index;not null" json:"-"`
	Owner       User         `gorm:"foreignKey:OwnerID" json:"-"`
	Name        string       `gorm:"size:255;not null" json:"name"`
	Email       string       `gorm:"size:255" json:"email"`
	Phone       string       `gorm:"size:32" json:"phone"`
	Address     string       `gorm:"size:255" json:"address"`
	Website     string       `gorm:"size:255" json:"website"`
	TaxID       string       `gorm:"size:32" json:"tax_id"`
	TaxRegime   TaxRegime    `gorm:"size:8;default:616" json:"tax_regime"`
	Tier        CustomerTier `gorm:"size:1;default:C" json:"tier"`
	Image       string       `gorm:"size:255" json:"image"`
	Description string       `gorm:"size:255" json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
