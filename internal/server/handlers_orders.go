package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"canteen/internal/models"
	"canteen/internal/store"
)

// handleListOrders lists ledger entries scoped to the requester: staff see
// everything unless a specific userId is requested; authenticated users
// see their own; anonymous callers must name a user.
func (s *Server) handleListOrders(c *gin.Context) {
	userID := c.Query("userId")
	status := models.OrderStatus(c.Query("status"))

	u, authed := s.currentUser(c)
	switch {
	case authed && u.Role.Privileged() && userID == "":
		// staff/admin see all unless a specific userId is requested
	case userID != "":
	case authed:
		userID = u.ID
	default:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, s.store.Orders(userID, status))
}

type createOrderRequest struct {
	UserID              string            `json:"userId"`
	Items               []store.OrderLine `json:"items"`
	SpecialInstructions string            `json:"specialInstructions"`
	Budget              int               `json:"budget"`
	PaymentMethod       string            `json:"paymentMethod"`
}

// handleCreateOrder admits a new order. An authenticated actor overrides
// any userId in the body; with neither, the order is admitted as guest.
func (s *Server) handleCreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_items"})
		return
	}

	userID := req.UserID
	if u, ok := s.currentUser(c); ok {
		userID = u.ID
	}

	order, err := s.store.PlaceOrder(store.OrderRequest{
		UserID:              userID,
		Items:               req.Items,
		SpecialInstructions: req.SpecialInstructions,
		PaymentMethod:       req.PaymentMethod,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// handleUpdateOrderStatus moves an order to one of the five non-initial
// states. Target validity is checked before authorization, matching the
// established response ordering.
func (s *Server) handleUpdateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_status"})
		return
	}
	status := models.OrderStatus(req.Status)
	if !models.IsTransitionTarget(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_status"})
		return
	}
	if _, ok := s.requireStaff(c); !ok {
		return
	}

	order, err := s.store.UpdateOrderStatus(c.Param("id"), status)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type orderMessageRequest struct {
	Text string `json:"text"`
}

// handleOrderMessage appends a staff note to an order.
func (s *Server) handleOrderMessage(c *gin.Context) {
	var req orderMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_text"})
		return
	}
	u, ok := s.requireStaff(c)
	if !ok {
		return
	}

	order, err := s.store.AppendOrderMessage(c.Param("id"), u.Role, req.Text)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type capacityRequest struct {
	Max interface{} `json:"max"`
}

// handleSetCapacity reconfigures maxPreparing. Input is validated before
// the role check; non-numeric and non-positive values are rejected.
func (s *Server) handleSetCapacity(c *gin.Context) {
	var req capacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid"})
		return
	}
	n := cast.ToInt(req.Max)
	if n < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid"})
		return
	}
	if _, ok := s.requireStaff(c); !ok {
		return
	}

	if err := s.store.SetMaxPreparing(n); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"maxPreparing": n})
}
