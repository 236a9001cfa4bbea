package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"cashbook/internal/services"
)

// GET /admin/categories/tree
// Full nested forest across all owners, for the operator console.
func (s *Server) adminCategoryTree(c *gin.Context) {
	nodes, err := s.categories.Tree(nil)
	if err != nil {
		c.JSON(500, gin.H{"error": "db_error"})
		return
	}
	c.JSON(200, nodes)
}

// PUT /admin/categories/:id/move
func (s *Server) adminMoveCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input struct {
		Parent *uint `json:"parent"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if err := s.categories.Move(id, input.Parent); err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryNotFound):
			c.JSON(404, gin.H{"error": "category_not_found"})
		case errors.Is(err, services.ErrCategoryCycle):
			c.JSON(400, gin.H{"error": "cannot_move_into_own_subtree"})
		default:
			c.JSON(500, gin.H{"error": "db_error"})
		}
		return
	}
	c.JSON(200, gin.H{"message": "category moved"})
}

// DELETE /admin/users/:id
func (s *Server) adminDeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.users.Delete(id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(404, gin.H{"error": "user_not_found"})
			return
		}
		c.JSON(500, gin.H{"error": "db_error"})
		return
	}
	c.JSON(200, gin.H{"message": "user deleted"})
}
