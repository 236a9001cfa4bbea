package services

import (
	"errors"

	"gorm.io/gorm"

	"cashbook/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserService handles user deletion, which cascades to everything the user
// owns. Used by the operator console only.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		owned := []interface{}{
			&models.Record{},
			&models.Account{},
			&models.Category{},
			&models.MethodOfPayment{},
			&models.Customer{},
		}
		for _, model := range owned {
			if err := tx.Where("owner_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.User{}, id).Error
	})
}
