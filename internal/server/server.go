// Package server exposes the HTTP and WebSocket surface over the canteen
// core.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"canteen/internal/analytics"
	"canteen/internal/auth"
	"canteen/internal/errs"
	"canteen/internal/notify"
	"canteen/internal/store"
)

// Server wires the store, auth manager and notification hub behind a gin
// router.
type Server struct {
	router    *gin.Engine
	store     *store.Store
	auth      *auth.Manager
	hub       *notify.Hub
	snapshots *analytics.SnapshotRing
	log       *zap.Logger
}

// New creates the API server and registers all routes.
func New(st *store.Store, am *auth.Manager, hub *notify.Hub, snapshots *analytics.SnapshotRing, log *zap.Logger) *Server {
	s := &Server{
		router:    gin.New(),
		store:     st,
		auth:      am,
		hub:       hub,
		snapshots: snapshots,
		log:       log,
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.setupRoutes()
	return s
}

// setupRoutes configures the API routes.
func (s *Server) setupRoutes() {
	s.router.GET("/ws", s.hub.HandleWS)

	api := s.router.Group("/api")
	{
		api.GET("/menu", s.handleGetMenu)
		api.POST("/menu", s.handleCreateMenuItem)
		api.PATCH("/menu/:id", s.handlePatchMenuItem)

		api.POST("/auth/signup", s.handleSignup)
		api.POST("/auth/login", s.handleLogin)
		api.GET("/auth/me", s.handleMe)
		api.POST("/auth/logout", s.handleLogout)

		api.GET("/orders", s.handleListOrders)
		api.POST("/orders", s.handleCreateOrder)
		api.PATCH("/orders/:id/status", s.handleUpdateOrderStatus)
		api.POST("/orders/:id/message", s.handleOrderMessage)

		api.GET("/analytics/summary", s.handleSummary)
		api.GET("/analytics/revenue", s.handleRevenue)
		api.GET("/analytics/top-items", s.handleTopItems)
		api.GET("/analytics/orders-per-hour", s.handleOrdersPerHour)
		api.GET("/analytics/reports", s.handleReports)
		api.GET("/analytics/snapshots", s.handleSnapshots)

		api.GET("/ai/recommendations", s.handleRecommendations)
		api.POST("/ai/assistant", s.handleAssistant)

		api.POST("/staff/capacity", s.handleSetCapacity)
	}
}

// Router returns the gin router, mainly for tests and the HTTP server.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// writeError maps a taxonomy error to its status and wire code.
func (s *Server) writeError(c *gin.Context, err error) {
	var e *errs.Error
	if errors.As(err, &e) {
		c.JSON(errs.HTTPStatus(e.Kind), gin.H{"error": e.Code})
		return
	}
	s.log.Error("unclassified error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}
