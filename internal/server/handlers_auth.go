package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"canteen/internal/auth"
)

// handleSignup registers an account and returns a session token.
func (s *Server) handleSignup(c *gin.Context) {
	var req auth.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_fields"})
		return
	}

	token, user, err := s.auth.Signup(req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// handleLogin verifies credentials and returns a session token.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_fields"})
		return
	}

	token, user, err := s.auth.Login(req.Email, req.Phone, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// handleMe returns the acting user.
func (s *Server) handleMe(c *gin.Context) {
	u, ok := s.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, u.Public())
}

// handleLogout revokes the presented session. Always succeeds.
func (s *Server) handleLogout(c *gin.Context) {
	s.auth.Logout(c.GetHeader("Authorization"))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
