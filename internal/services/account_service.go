package services

import (
	"errors"

	"gorm.io/gorm"

	"cashbook/internal/models"
)

// AccountService handles the account cascade: deleting an account clears the
// account reference on its records instead of deleting them.
type AccountService struct {
	db *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

func (s *AccountService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var account models.Account
		if err := tx.First(&account, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return err
		}

		if err := tx.Model(&models.Record{}).
			Where("account_id = ?", id).
			Update("account_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Account{}, id).Error
	})
}
