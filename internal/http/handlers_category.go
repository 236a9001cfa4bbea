package http

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cashbook/internal/models"
	"cashbook/internal/services"
)

type categoryResp struct {
	ID           uint                `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	CategoryType models.CategoryType `json:"category_type"`
	Parent       *uint               `json:"parent"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Owner        string              `json:"owner"`
}

func toCategoryResp(cat *models.Category) categoryResp {
	owner := ""
	if cat.Owner != nil {
		owner = cat.Owner.Username
	}
	return categoryResp{
		ID:           cat.ID,
		Name:         cat.Name,
		Description:  cat.Description,
		CategoryType: cat.CategoryType,
		Parent:       cat.ParentID,
		CreatedAt:    cat.CreatedAt,
		UpdatedAt:    cat.UpdatedAt,
		Owner:        owner,
	}
}

// GET /v1/categories (?tree=1 returns the forest nested)
func (s *Server) listCategories(c *gin.Context) {
	if c.Query("tree") == "1" {
		nodes, err := s.categories.Tree(nil)
		if err != nil {
			c.JSON(500, gin.H{"error": "db_error"})
			return
		}
		c.JSON(200, nodes)
		return
	}

	var cats []models.Category
	if err := s.db.Preload("Owner").Order("name").Find(&cats).Error; err != nil {
		c.JSON(500, gin.H{"error": "db_error"})
		return
	}
	resp := make([]categoryResp, 0, len(cats))
	for i := range cats {
		resp = append(resp, toCategoryResp(&cats[i]))
	}
	c.JSON(200, resp)
}

// GET /v1/categories/:id
func (s *Server) getCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var cat models.Category
	if err := s.db.Preload("Owner").First(&cat, id).Error; err != nil {
		c.JSON(404, gin.H{"error": "category_not_found"})
		return
	}
	c.JSON(200, toCategoryResp(&cat))
}

// POST /v1/categories
func (s *Server) createCategory(c *gin.Context) {
	user := currentUser(c)

	var input struct {
		Name         string              `json:"name" binding:"required,max=255"`
		Description  string              `json:"description" binding:"max=255"`
		CategoryType models.CategoryType `json:"category_type"`
		Parent       *uint               `json:"parent"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if input.CategoryType == "" {
		input.CategoryType = models.CategoryFixedExpense
	}
	if !input.CategoryType.Valid() {
		c.JSON(400, gin.H{"error": "invalid_category_type"})
		return
	}

	ownerID := user.ID
	cat := models.Category{
		OwnerID:      &ownerID,
		Owner:        user,
		Name:         input.Name,
		Description:  input.Description,
		CategoryType: input.CategoryType,
		ParentID:     input.Parent,
	}
	if err := s.categories.Create(&cat); err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			c.JSON(400, gin.H{"error": "parent_not_found"})
			return
		}
		c.JSON(500, gin.H{"error": "db_error"})
		return
	}
	c.JSON(201, toCategoryResp(&cat))
}

// PUT /v1/categories/:id
func (s *Server) updateCategory(c *gin.Context) {
	user := currentUser(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var cat models.Category
	if err := s.db.Preload("Owner").First(&cat, id).Error; err != nil {
		c.JSON(404, gin.H{"error": "category_not_found"})
		return
	}
	if !canEdit(user, cat.OwnerID) {
		c.JSON(403, gin.H{"error": "forbidden"})
		return
	}

	var input struct {
		Name         *string              `json:"name"`
		Description  *string              `json:"description"`
		CategoryType *models.CategoryType `json:"category_type"`
		Parent       *uint                `json:"parent"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		cat.Name = *input.Name
	}
	if input.Description != nil {
		cat.Description = *input.Description
	}
	if input.CategoryType != nil {
		if !input.CategoryType.Valid() {
			c.JSON(400, gin.H{"error": "invalid_category_type"})
			return
		}
		cat.CategoryType = *input.CategoryType
	}

	// field edits and the reparent land together or not at all
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&cat).Error; err != nil {
			return err
		}
		if input.Parent != nil {
			return s.categories.MoveTx(tx, cat.ID, input.Parent)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryNotFound):
			c.JSON(400, gin.H{"error": "parent_not_found"})
		case errors.Is(err, services.ErrCategoryCycle):
			c.JSON(400, gin.H{"error": "cannot_move_into_own_subtree"})
		default:
			c.JSON(500, gin.H{"error": "db_error"})
		}
		return
	}
	if input.Parent != nil {
		cat.ParentID = input.Parent
	}

	c.JSON(200, toCategoryResp(&cat))
}

// DELETE /v1/categories/:id
func (s *Server) deleteCategory(c *gin.Context) {
	user := currentUser(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var cat models.Category
	if err := s.db.First(&cat, id).Error; err != nil {
		c.JSON(404, gin.H{"error": "category_not_found"})
		return
	}
	if !canEdit(user, cat.OwnerID) {
		c.JSON(403, gin.H{"error": "forbidden"})
		return
	}

	if err := s.categories.Delete(id); err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			c.JSON(404, gin.H{"error": "category_not_found"})
			return
		}
		c.JSON(500, gin.H{"error": "db_error"})
		return
	}
	c.JSON(200, gin.H{"message": "category deleted"})
}
