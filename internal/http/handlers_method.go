package http

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"

	"cashbook/internal/models"
	"cashbook/internal/services"
)

type methodResp struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Owner string `json:"owner"`
}

func toMethodResp(m *models.MethodOfPayment) methodResp {
	owner := ""
	if m.Owner != nil {
		owner = m.Owner.Username
	}
	return methodResp{ID: m.ID, Name: m.Name, Owner: owner}
}

// GET /v1/methods_of_payment
func (s *Server) listMethods(c *gin.Context) {
	var methods []models.MethodOfPayment
	if err := s.db.Preload("Owner").Order("name").Find(&methods).Error; err != nil {
		c.JSON(500, gin.H{"error": "db_error"})
		return
	}
	resp := make([]methodResp, 0, len(methods))
	for i := range methods {
		resp = append(resp, toMethodResp(&methods[i]))
	}
	c.JSON(200, resp)
}

// GET /v1/methods_of_payment/:id
func (s *Server) getMethod(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var method models.MethodOfPayment
	if err := s.db.Preload("Owner").First(&method, id).Error; err != nil {
		c.JSON(404, gin.H{"error": "method_not_found"})
		return
	}
	c.JSON(200, toMethodResp(&method))
}

// POST /v1/methods_of_payment
func (s *Server) createMethod(c *gin.Context) {
	user := currentUser(c)

	var input struct {
		Name string `json:"name" binding:"required,max=255"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	ownerID := user.ID
	method := models.MethodOfPayment{OwnerID: &ownerID, Owner: user, Name: input.Name}
	if err := s.db.Omit(clause.Associations).Create(&method).Error; err != nil {
		c.JSON(500, gin.H{"error": "db_error"})
		return
	}
	c.JSON(201, toMethodResp(&method))
}

// PUT /v1/methods_of_payment/:id
func (s *Server) updateMethod(c *gin.Context) {
	user := currentUser(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var method models.MethodOfPayment
	if err := s.db.Preload("Owner").First(&method, id).Error; err != nil {
		c.JSON(404, gin.H{"error": "method_not_found"})
		return
	}
	if !canEdit(user, method.OwnerID) {
		c.JSON(403, gin.H{"error": "forbidden"})
		return
	}

	var input struct {
		Name string `json:"name" binding:"required,max=255"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	method.Name = input.Name
	if err := s.db.Omit(clause.Associations).Save(&method).Error; err != nil {
		c.JSON(500, gin.H{"error": "db_error"})
		return
	}
	c.JSON(200, toMethodResp(&method))
}

// DELETE /v1/methods_of_payment/:id
// Deleting a method deletes every record tagged with it.
func (s *Server) deleteMethod(c *gin.Context) {
	user := currentUser(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var method models.MethodOfPayment
	if err := s.db.First(&method, id).Error; err != nil {
		c.JSON(404, gin.H{"error": "method_not_found"})
		return
	}
	if !canEdit(user, method.OwnerID) {
		c.JSON(403, gin.H{"error": "forbidden"})
		return
	}

	if err := s.methods.Delete(id); err != nil {
		if errors.Is(err, services.ErrMethodNotFound) {
			c.JSON(404, gin.H{"error": "method_not_found"})
			return
		}
		c.JSON(500, gin.H{"error": "db_error"})
		return
	}
	c.JSON(200, gin.H{"message": "method of payment deleted"})
}
