package http

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cashbook/internal/models"
)

// requireAuth validates the bearer token and puts the current user in the
// context. Reads are public; every route that writes goes through this.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "authorization_header_missing"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(401, gin.H{"error": "authorization_header_invalid"})
			return
		}

		claims, err := parseToken(s.cfg.JWTSecret, parts[1])
		if err != nil || claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
			c.AbortWithStatusJSON(401, gin.H{"error": "token_invalid_or_expired"})
			return
		}

		var user models.User
		if err := s.db.First(&user, claims.UserID).Error; err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "user_not_found"})
			return
		}

		c.Set("currentUser", &user)
		c.Set("userID", user.ID)
		c.Next()
	}
}

// requireStaff gates the operator console. Must run after requireAuth.
func (s *Server) requireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil || !user.IsStaff {
			c.AbortWithStatusJSON(403, gin.H{"error": "staff_only"})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get("currentUser"); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
