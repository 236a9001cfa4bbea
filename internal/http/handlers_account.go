package http

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"

	"cashbook/internal/models"
	"cashbook/internal/services"
)

type accountResp struct {
	ID          uint               `json:"id"`
	Name        string             `json:"name"`
	AccountType models.AccountType `json:"account_type"`
	Amount      decimal.Decimal    `json:"amount"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Owner       string             `json:"owner"`
}

func toAccountResp(a *models.Account) accountResp {
	return accountResp{
		ID:          a.ID,
		Name:        a.Name,
		AccountType: a.AccountType,
		Amount:      a.Balance,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		Owner:       a.Owner.Username,
	}
}

// GET /v1/accounts
func (s *Server) listAccounts(c *gin.Context) {
	var accounts []models.Account
	if err := s.db.Preload("Owner").Order("name").Find(&accounts).Error; err != nil {
		c.JSON(500, gin.H{"error": "db_error"})
		return
	}
	resp := make([]accountResp, 0, len(accounts))
	for i := range accounts {
		resp = append(resp, toAccountResp(&accounts[i]))
	}
	c.JSON(200, resp)
}

// GET /v1/accounts/:id
func (s *Server) getAccount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var account models.Account
	if err := s.db.Preload("Owner").First(&account, id).Error; err != nil {
		c.JSON(404, gin.H{"error": "account_not_found"})
		return
	}
	c.JSON(200, toAccountResp(&account))
}

// POST /v1/accounts
func (s *Server) createAccount(c *gin.Context) {
	user := currentUser(c)

	var input struct {
		Name        string             `json:"name" binding:"required,max=255"`
		AccountType models.AccountType `json:"account_type"`
		Amount      decimal.Decimal    `json:"amount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if input.AccountType == "" {
		input.AccountType = models.AccountGeneral
	}
	if !input.AccountType.Valid() {
		c.JSON(400, gin.H{"error": "invalid_account_type"})
		return
	}
	if input.Amount.IsNegative() {
		c.JSON(400, gin.H{"error": "balance_must_not_be_negative"})
		return
	}

	account := models.Account{
		OwnerID:     user.ID,
		Owner:       *user,
		Name:        input.Name,
		AccountType: input.AccountType,
		Balance:     input.Amount,
	}
	if err := s.db.Omit(clause.Associations).Create(&account).Error; err != nil {
		c.JSON(500, gin.H{"error": "db_error"})
		return
	}
	c.JSON(201, toAccountResp(&account))
}

// PUT /v1/accounts/:id
func (s *Server) updateAccount(c *gin.Context) {
	user := currentUser(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var account models.Account
	if err := s.db.Preload("Owner").First(&account, id).Error; err != nil {
		c.JSON(404, gin.H{"error": "account_not_found"})
		return
	}
	if !canEdit(user, &account.OwnerID) {
		c.JSON(403, gin.H{"error": "forbidden"})
		return
	}

	var input struct {
		Name        *string             `json:"name"`
		AccountType *models.AccountType `json:"account_type"`
		Amount      *decimal.Decimal    `json:"amount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		account.Name = *input.Name
	}
	if input.AccountType != nil {
		if !input.AccountType.Valid() {
			c.JSON(400, gin.H{"error": "invalid_account_type"})
			return
		}
		account.AccountType = *input.AccountType
	}
	if input.Amount != nil {
		if input.Amount.IsNegative() {
			c.JSON(400, gin.H{"error": "balance_must_not_be_negative"})
			return
		}
		account.Balance = *input.Amount
	}

	if err := s.db.Omit(clause.Associations).Save(&account).Error; err != nil {
		c.JSON(500, gin.H{"error": "db_error"})
		return
	}
	c.JSON(200, toAccountResp(&account))
}

// DELETE /v1/accounts/:id
func (s *Server) deleteAccount(c *gin.Context) {
	user := currentUser(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var account models.Account
	if err := s.db.First(&account, id).Error; err != nil {
		c.JSON(404, gin.H{"error": "account_not_found"})
		return
	}
	if !canEdit(user, &account.OwnerID) {
		c.JSON(403, gin.H{"error": "forbidden"})
		return
	}

	if err := s.accounts.Delete(id); err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			c.JSON(404, gin.H{"error": "account_not_found"})
			return
		}
		c.JSON(500, gin.H{"error": "db_error"})
		return
	}
	c.JSON(200, gin.H{"message": "account deleted"})
}
