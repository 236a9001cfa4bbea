package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cashbook/internal/models"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrRecordNotFound  = errors.New("record not found")
	ErrAmountTooSmall  = errors.New("amount must be at least 0.01")
)

// RecordService owns the record lifecycle. Every mutation runs inside one
// transaction that locks the referenced account row, adjusts its balance and
// persists the record, so concurrent mutations against the same account
// cannot lose updates.
type RecordService struct {
	db *gorm.DB
}

func NewRecordService(db *gorm.DB) *RecordService {
	return &RecordService{db: db}
}

// lockForUpdate takes a row lock where the dialect supports one. sqlite has
// no FOR UPDATE and serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// adjustBalance applies a signed amount delta to the record's account.
// Expense records subtract the delta, income records add it, transfers move
// no money. A record without an account is balance-neutral; a record whose
// account has vanished is an error.
//
// TODO: debit source and credit destination once transfers carry a
// counterparty account.
func adjustBalance(tx *gorm.DB, rec *models.Record, delta decimal.Decimal) error {
	if rec.AccountID == nil {
		return nil
	}

	var account models.Account
	if err := lockForUpdate(tx).First(&account, *rec.AccountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	switch rec.RecordType {
	case models.RecordExpense:
		account.Balance = account.Balance.Sub(delta)
	case models.RecordIncome:
		account.Balance = account.Balance.Add(delta)
	case models.RecordTransfer:
		return nil
	default:
		return fmt.Errorf("unknown record type %q", rec.RecordType)
	}

	return tx.Save(&account).Error
}

// Create persists a new record and applies its full amount to the account.
func (s *RecordService) Create(rec *models.Record) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.CreateTx(tx, rec)
	})
}

// CreateTx is Create inside an existing transaction, for callers that
// persist several records atomically.
func (s *RecordService) CreateTx(tx *gorm.DB, rec *models.Record) error {
	if rec.Amount.LessThan(models.MinAmount) {
		return ErrAmountTooSmall
	}
	if err := adjustBalance(tx, rec, rec.Amount); err != nil {
		return err
	}
	return tx.Omit(clause.Associations).Create(rec).Error
}

// Update persists rec and applies the difference between its amount and the
// previously stored amount to the account. The stored amount is re-read
// inside the transaction. Only amount changes feed the balance: changing a
// record's type or account reference leaves every balance untouched.
func (s *RecordService) Update(rec *models.Record) error {
	if rec.Amount.LessThan(models.MinAmount) {
		return ErrAmountTooSmall
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var stored models.Record
		if err := tx.First(&stored, rec.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		delta := rec.Amount.Sub(stored.Amount)
		if !delta.IsZero() {
			if err := adjustBalance(tx, rec, delta); err != nil {
				return err
			}
		}
		return tx.Omit(clause.Associations).Save(rec).Error
	})
}

// Delete removes the record and reverses its effect on the account, so
// create-then-delete leaves the balance where it started.
func (s *RecordService) Delete(rec *models.Record) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := adjustBalance(tx, rec, rec.Amount.Neg()); err != nil {
			return err
		}
		return tx.Delete(&models.Record{}, rec.ID).Error
	})
}
