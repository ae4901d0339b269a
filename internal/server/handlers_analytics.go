package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"canteen/internal/analytics"
)

// handleSummary reports order count, revenue, average order value and
// distinct users over the requested range (today by default).
func (s *Server) handleSummary(c *gin.Context) {
	now := time.Now()
	from := analytics.RangeFrom(c.Query("range"), now)
	c.JSON(http.StatusOK, analytics.BuildSummary(s.store.OrdersSnapshot(), from, now))
}

// handleRevenue splits range revenue by cancellation.
func (s *Server) handleRevenue(c *gin.Context) {
	from := analytics.RangeFrom(c.Query("range"), time.Now())
	c.JSON(http.StatusOK, analytics.BuildRevenue(s.store.OrdersSnapshot(), from))
}

// handleTopItems returns the quantity leaderboard. It deliberately ignores
// any range: the leaderboard is all-time.
func (s *Server) handleTopItems(c *gin.Context) {
	limit := cast.ToInt(c.Query("limit"))
	c.JSON(http.StatusOK, analytics.TopItems(s.store.OrdersSnapshot(), s.store.MenuItems(""), limit))
}

// handleOrdersPerHour returns per-hour order counts, chronological.
func (s *Server) handleOrdersPerHour(c *gin.Context) {
	c.JSON(http.StatusOK, analytics.OrdersPerHour(s.store.OrdersSnapshot()))
}

// handleReports renders one of the three CSV reports over an explicit
// from/to window.
func (s *Server) handleReports(c *gin.Context) {
	from := parseTimeParam(c.Query("from"), time.Time{})
	to := parseTimeParam(c.Query("to"), time.Now())

	csv, err := analytics.Report(s.store.OrdersSnapshot(), s.store.MenuItems(""), c.Query("type"), from, to)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/csv", []byte(csv))
}

// handleSnapshots returns the periodically captured summaries.
func (s *Server) handleSnapshots(c *gin.Context) {
	c.JSON(http.StatusOK, s.snapshots.List())
}

// parseTimeParam accepts RFC3339 or a bare date; anything else keeps the
// fallback.
func parseTimeParam(v string, fallback time.Time) time.Time {
	if v == "" {
		return fallback
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t
	}
	return fallback
}
