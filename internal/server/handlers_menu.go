package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"canteen/internal/models"
	"canteen/internal/store"
)

// handleGetMenu returns the catalog, optionally filtered by category.
func (s *Server) handleGetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.MenuItems(c.Query("category")))
}

type createMenuItemRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int    `json:"price"`
	Veg      bool   `json:"veg"`
}

// handleCreateMenuItem adds a catalog item. Staff only; the new item is
// broadcast as inventory:update.
func (s *Server) handleCreateMenuItem(c *gin.Context) {
	if _, ok := s.requireStaff(c); !ok {
		return
	}

	var req createMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_fields"})
		return
	}

	item, err := s.store.CreateMenuItem(models.MenuItem{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Veg:      req.Veg,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// handlePatchMenuItem edits the staff-mutable fields of a catalog item and
// broadcasts the updated item.
func (s *Server) handlePatchMenuItem(c *gin.Context) {
	if _, ok := s.requireStaff(c); !ok {
		return
	}

	var patch store.MenuItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_fields"})
		return
	}

	item, err := s.store.PatchMenuItem(c.Param("id"), patch)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}
