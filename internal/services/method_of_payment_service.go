package services

import (
	"errors"

	"gorm.io/gorm"

	"cashbook/internal/models"
)

var ErrMethodNotFound = errors.New("method of payment not found")

// MethodOfPaymentService handles the payment-method cascade, which is the
// harsh one: deleting a method deletes every record tagged with it. The
// cascade is a bulk delete and does not route through RecordService, so the
// deleted records' effect stays on their account balances.
type MethodOfPaymentService struct {
	db *gorm.DB
}

func NewMethodOfPaymentService(db *gorm.DB) *MethodOfPaymentService {
	return &MethodOfPaymentService{db: db}
}

func (s *MethodOfPaymentService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var method models.MethodOfPayment
		if err := tx.First(&method, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMethodNotFound
			}
			return err
		}

		if err := tx.Where("method_of_payment_id = ?", id).
			Delete(&models.Record{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.MethodOfPayment{}, id).Error
	})
}
