package http

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"

	"cashbook/internal/models"
	"cashbook/internal/services"
)

type customerResp struct {
	ID          uint                `json:"id"`
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	Phone       string              `json:"phone"`
	Address     string              `json:"address"`
	Website     string              `json:"website"`
	TaxID       string              `json:"tax_id"`
	TaxRegime   models.TaxRegime    `json:"tax_regime"`
	Tier        models.CustomerTier `json:"tier"`
	Image       string              `json:"image"`
	Description string              `json:"description"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Owner       string              `json:"owner"`
}

func toCustomerResp(cu *models.Customer) customerResp {
	return customerResp{
		ID:          cu.ID,
		Name:        cu.Name,
		Email:       cu.Email,
		Phone:       cu.Phone,
		Address:     cu.Address,
		Website:     cu.Website,
		TaxID:       cu.TaxID,
		TaxRegime:   cu.TaxRegime,
		Tier:        cu.Tier,
		Image:       cu.Image,
		Description: cu.Description,
		CreatedAt:   cu.CreatedAt,
		UpdatedAt:   cu.UpdatedAt,
		Owner:       cu.Owner.Username,
	}
}

type customerInput struct {
	Name        string              `json:"name" binding:"required,max=255"`
	Email       string              `json:"email" binding:"omitempty,email"`
	Phone       string              `json:"phone" binding:"max=32"`
	Address     string              `json:"address" binding:"max=255"`
	Website     string              `json:"website" binding:"max=255"`
	TaxID       string              `json:"tax_id" binding:"max=32"`
	TaxRegime   models.TaxRegime    `json:"tax_regime"`
	Tier        models.CustomerTier `json:"tier"`
	Image       string              `json:"image" binding:"max=255"`
	Description string              `json:"description" binding:"max=255"`
}

func (in *customerInput) validate(c *gin.Context) bool {
	if in.TaxRegime == "" {
		in.TaxRegime = models.RegimeNoTaxObligations
	}
	if !in.TaxRegime.Valid() {
		c.JSON(400, gin.H{"error": "invalid_tax_regime"})
		return false
	}
	if in.Tier == "" {
		in.Tier = models.TierC
	}
	if !in.Tier.Valid() {
		c.JSON(400, gin.H{"error": "invalid_tier"})
		return false
	}
	return true
}

// GET /v1/customers
func (s *Server) listCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := s.db.Preload("Owner").Order("name").Find(&customers).Error; err != nil {
		c.JSON(500, gin.H{"error": "db_error"})
		return
	}
	resp := make([]customerResp, 0, len(customers))
	for i := range customers {
		resp = append(resp, toCustomerResp(&customers[i]))
	}
	c.JSON(200, resp)
}

// GET /v1/customers/:id
func (s *Server) getCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var customer models.Customer
	if err := s.db.Preload("Owner").First(&customer, id).Error; err != nil {
		c.JSON(404, gin.H{"error": "customer_not_found"})
		return
	}
	c.JSON(200, toCustomerResp(&customer))
}

// POST /v1/customers
func (s *Server) createCustomer(c *gin.Context) {
	user := currentUser(c)

	var input customerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if !input.validate(c) {
		return
	}

	customer := models.Customer{
		OwnerID:     user.ID,
		Owner:       *user,
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
		Website:     input.Website,
		TaxID:       input.TaxID,
		TaxRegime:   input.TaxRegime,
		Tier:        input.Tier,
		Image:       input.Image,
		Description: input.Description,
	}
	if err := s.db.Omit(clause.Associations).Create(&customer).Error; err != nil {
		c.JSON(500, gin.H{"error": "db_error"})
		return
	}
	c.JSON(201, toCustomerResp(&customer))
}

// PUT /v1/customers/:id
func (s *Server) updateCustomer(c *gin.Context) {
	user := currentUser(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var customer models.Customer
	if err := s.db.Preload("Owner").First(&customer, id).Error; err != nil {
		c.JSON(404, gin.H{"error": "customer_not_found"})
		return
	}
	if !canEdit(user, &customer.OwnerID) {
		c.JSON(403, gin.H{"error": "forbidden"})
		return
	}

	var input customerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if !input.validate(c) {
		return
	}

	customer.Name = input.Name
	customer.Email = input.Email
	customer.Phone = input.Phone
	customer.Address = input.Address
	customer.Website = input.Website
	customer.TaxID = input.TaxID
	customer.TaxRegime = input.TaxRegime
	customer.Tier = input.Tier
	customer.Image = input.Image
	customer.Description = input.Description

	if err := s.db.Omit(clause.Associations).Save(&customer).Error; err != nil {
		c.JSON(500, gin.H{"error": "db_error"})
		return
	}
	c.JSON(200, toCustomerResp(&customer))
}

// DELETE /v1/customers/:id
func (s *Server) deleteCustomer(c *gin.Context) {
	user := currentUser(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var customer models.Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		c.JSON(404, gin.H{"error": "customer_not_found"})
		return
	}
	if !canEdit(user, &customer.OwnerID) {
		c.JSON(403, gin.H{"error": "forbidden"})
		return
	}

	if err := s.customers.Delete(id); err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			c.JSON(404, gin.H{"error": "customer_not_found"})
			return
		}
		c.JSON(500, gin.H{"error": "db_error"})
		return
	}
	c.JSON(200, gin.H{"message": "customer deleted"})
}
