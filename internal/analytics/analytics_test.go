package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canteen/internal/models"
)

func orderAt(userID string, total int, status models.OrderStatus, at time.Time) models.Order {
	return models.Order{
		UserID:         userID,
		TotalAmount:    total,
		Status:         status,
		CreatedAt:      at,
		CreatedHourKey: models.HourKey(at),
	}
}

func TestBuildSummary(t *testing.T) {
	now := time.Now()
	orders := []models.Order{
		orderAt("u1", 100, models.OrderStatusPlaced, now),
		orderAt("u2", 50, models.OrderStatusCancelled, now),
		orderAt("u1", 30, models.OrderStatusCompleted, now),
		orderAt("u3", 999, models.OrderStatusPlaced, now.Add(-48*time.Hour)), // outside range
	}

	s := BuildSummary(orders, now.Add(-time.Hour), now)
	assert.Equal(t, 3, s.TotalOrders)
	assert.Equal(t, 180, s.TotalRevenue, "summary revenue includes cancelled orders")
	assert.Equal(t, 60.0, s.AvgOrderValue)
	assert.Equal(t, 2, s.ActiveUsers)
	assert.Equal(t, now.Format("2006-01-02"), s.Date)
}

func TestBuildSummaryEmpty(t *testing.T) {
	s := BuildSummary(nil, time.Time{}, time.Now())
	assert.Equal(t, 0, s.TotalOrders)
	assert.Equal(t, 0.0, s.AvgOrderValue)
}

func TestBuildRevenueSplitsCancelled(t *testing.T) {
	now := time.Now()
	orders := []models.Order{
		orderAt("u1", 100, models.OrderStatusCompleted, now),
		orderAt("u2", 40, models.OrderStatusCancelled, now),
		orderAt("u3", 60, models.OrderStatusPreparing, now),
	}

	r := BuildRevenue(orders, now.Add(-time.Hour))
	assert.Equal(t, 160, r.TotalRevenue)
	assert.Equal(t, 40, r.CancelledRevenue)
	assert.Equal(t, 120, r.NetRevenue)
}

func TestTopItemsIsAllTime(t *testing.T) {
	now := time.Now()
	menu := []models.MenuItem{
		{ID: "dosa", Name: "Dosa"},
		{ID: "tea", Name: "Tea"},
	}
	old := orderAt("u1", 0, models.OrderStatusCompleted, now.Add(-40*24*time.Hour))
	old.Items = []models.OrderItem{{ItemID: "dosa", Qty: 7, Price: 40}}
	recent := orderAt("u2", 0, models.OrderStatusPlaced, now)
	recent.Items = []models.OrderItem{{ItemID: "tea", Qty: 2, Price: 12}}

	top := TopItems([]models.Order{old, recent}, menu, 5)
	require.Len(t, top, 2)
	assert.Equal(t, "Dosa", top[0].Name, "old volume still counts: the leaderboard is all-time")
	assert.Equal(t, 7, top[0].Count)
	assert.Equal(t, "Tea", top[1].Name)
}

func TestTopItemsLimitAndFallbackName(t *testing.T) {
	now := time.Now()
	var orders []models.Order
	for i, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		o := orderAt("u", 0, models.OrderStatusPlaced, now)
		o.Items = []models.OrderItem{{ItemID: id, Qty: 10 - i, Price: 1}}
		orders = append(orders, o)
	}

	top := TopItems(orders, nil, 0) // 0 falls back to the default of 5
	require.Len(t, top, 5)
	assert.Equal(t, "a", top[0].Name, "unknown ids keep the id as name")
	assert.Equal(t, 10, top[0].Count)
}

func TestOrdersPerHourSorted(t *testing.T) {
	base := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	orders := []models.Order{
		orderAt("u1", 0, models.OrderStatusPlaced, base.Add(2*time.Hour)),
		orderAt("u2", 0, models.OrderStatusPlaced, base),
		orderAt("u3", 0, models.OrderStatusPlaced, base),
	}

	buckets := OrdersPerHour(orders)
	require.Len(t, buckets, 2)
	assert.Equal(t, "2026-08-30T09", buckets[0].Hour)
	assert.Equal(t, 2, buckets[0].Orders)
	assert.Equal(t, "2026-08-30T11", buckets[1].Hour)
	assert.Equal(t, 1, buckets[1].Orders)
}

func TestRangeFrom(t *testing.T) {
	now := time.Date(2026, 8, 30, 13, 45, 0, 0, time.Local)

	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local), RangeFrom("", now))
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local), RangeFrom("today", now))
	assert.Equal(t, now.Add(-7*24*time.Hour), RangeFrom("7d", now))
	assert.Equal(t, now.Add(-30*24*time.Hour), RangeFrom("30d", now))
}

func TestSnapshotRing(t *testing.T) {
	r := NewSnapshotRing(2)
	r.Add(Summary{TotalOrders: 1})
	r.Add(Summary{TotalOrders: 2})
	r.Add(Summary{TotalOrders: 3})

	got := r.List()
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].TotalOrders)
	assert.Equal(t, 3, got[1].TotalOrders)
}
