package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"canteen/internal/recommend"
)

// handleRecommendations ranks available items for a user from order
// history, with an optional budget hint.
func (s *Server) handleRecommendations(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		userID = "guest"
	}
	var budget *int
	if b := cast.ToInt(c.Query("budget")); b > 0 {
		budget = &b
	}

	items := recommend.ForUser(s.store.MenuItems(""), s.store.OrdersSnapshot(), userID, budget, time.Now())
	c.JSON(http.StatusOK, items)
}

type assistantRequest struct {
	Query string `json:"query"`
}

// handleAssistant answers a free-text query against the menu.
func (s *Server) handleAssistant(c *gin.Context) {
	var req assistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Query = ""
	}
	c.JSON(http.StatusOK, recommend.Suggest(s.store.MenuItems(""), req.Query))
}
