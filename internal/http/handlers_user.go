package http

import (
	"github.com/gin-gonic/gin"

	"cashbook/internal/models"
)

type userResp struct {
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Groups   []string `json:"groups"`
	Records  []uint   `json:"records"`
}

func (s *Server) userResp(u *models.User) userResp {
	var recordIDs []uint
	s.db.Model(&models.Record{}).Where("owner_id = ?", u.ID).Pluck("id", &recordIDs)
	if recordIDs == nil {
		recordIDs = []uint{}
	}
	return userResp{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Groups:   u.Groups(),
		Records:  recordIDs,
	}
}

// GET /v1/users
func (s *Server) listUsers(c *gin.Context) {
	var users []models.User
	if err := s.db.Order("username").Find(&users).Error; err != nil {
		c.JSON(500, gin.H{"error": "db_error"})
		return
	}
	resp := make([]userResp, 0, len(users))
	for i := range users {
		resp = append(resp, s.userResp(&users[i]))
	}
	c.JSON(200, resp)
}

// GET /v1/users/:id
func (s *Server) getUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		c.JSON(404, gin.H{"error": "user_not_found"})
		return
	}
	c.JSON(200, s.userResp(&user))
}
