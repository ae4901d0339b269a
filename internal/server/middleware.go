package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"canteen/internal/models"
)

// currentUser resolves the acting user from the Authorization header.
func (s *Server) currentUser(c *gin.Context) (models.User, bool) {
	return s.auth.Authenticate(c.GetHeader("Authorization"))
}

// requireStaff resolves the actor and rejects with Forbidden unless it has
// staff or admin capability. It writes the response itself on failure.
func (s *Server) requireStaff(c *gin.Context) (models.User, bool) {
	u, ok := s.currentUser(c)
	if !ok || !u.Role.Privileged() {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return models.User{}, false
	}
	return u, true
}
