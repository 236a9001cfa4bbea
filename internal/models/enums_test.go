package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountTypeValid(t *testing.T) {
	valid := []AccountType{
		AccountGeneral, AccountCash, AccountBank, AccountCreditCard,
		AccountSavings, AccountExtra, AccountInsurance, AccountInvestment,
		AccountLoan, AccountMortgage,
	}
	for _, v := range valid {
		assert.True(t, v.Valid(), string(v))
	}
	assert.False(t, AccountType("checking").Valid())
	assert.False(t, AccountType("").Valid())
}

func TestCategoryTypeValid(t *testing.T) {
	valid := []CategoryType{
		CategoryFixedExpense, CategoryNecessaryExpense,
		CategoryDiscretionaryExpense, CategoryIncome, CategoryParent,
	}
	for _, v := range valid {
		assert.True(t, v.Valid(), string(v))
	}
	assert.False(t, CategoryType("misc").Valid())
}

func TestRecordTypeValid(t *testing.T) {
	assert.True(t, RecordExpense.Valid())
	assert.True(t, RecordIncome.Valid())
	assert.True(t, RecordTransfer.Valid())
	assert.False(t, RecordType("refund").Valid())
}

func TestTaxRegimeCatalogIsComplete(t *testing.T) {
	regimes := []TaxRegime{
		RegimeGeneralLegalEntity, RegimeNonProfit, RegimeWagesAndSalaries,
		RegimeLease, RegimeDisposalOfGoods, RegimeOtherIncome,
		RegimeForeignResident, RegimeDividendIncome, RegimeBusinessProfessional,
		RegimeInterestIncome, RegimePrizeIncome, RegimeNoTaxObligations,
		RegimeCooperativeSociety, RegimeFiscalIncorporation,
		RegimeDigitalPlatforms, RegimeSimplifiedTrust,
	}
	assert.Len(t, regimes, 16)
	for _, r := range regimes {
		assert.True(t, r.Valid(), string(r))
	}
	assert.False(t, TaxRegime("999").Valid())
}

func TestCustomerTierValid(t *testing.T) {
	assert.True(t, TierA.Valid())
	assert.True(t, TierB.Valid())
	assert.True(t, TierC.Valid())
	assert.False(t, CustomerTier("D").Valid())
}

func TestUserGroups(t *testing.T) {
	staff := User{IsStaff: true}
	plain := User{}
	assert.Equal(t, []string{"staff"}, staff.Groups())
	assert.Empty(t, plain.Groups())
}
