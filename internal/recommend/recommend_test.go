package recommend

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canteen/internal/models"
)

func testMenu() []models.MenuItem {
	return []models.MenuItem{
		{ID: "idly", Name: "Idly", Category: "breakfast", Price: 25, Veg: true, Available: true},
		{ID: "dosa", Name: "Dosa", Category: "breakfast", Price: 40, Veg: true, Available: true},
		{ID: "samosa", Name: "Samosa", Category: "snacks", Price: 20, Veg: true, Available: true},
		{ID: "puff", Name: "Puff", Category: "snacks", Price: 30, Veg: true, Available: true},
		{ID: "tea", Name: "Tea", Category: "drinks", Price: 12, Veg: true, Available: true},
		{ID: "coffee", Name: "Coffee", Category: "drinks", Price: 18, Veg: true, Available: true},
		{ID: "eggpuff", Name: "Egg Puff", Category: "snacks", Price: 35, Veg: false, Available: true},
	}
}

func orderOf(userID, itemID string, qty int, at time.Time) models.Order {
	return models.Order{
		UserID:         userID,
		Items:          []models.OrderItem{{ItemID: itemID, Qty: qty, Price: 10}},
		CreatedAt:      at,
		CreatedHourKey: models.HourKey(at),
	}
}

func TestScoreForPerfectMatch(t *testing.T) {
	// Category match + trending + within budget scores exactly 1.0.
	item := models.MenuItem{ID: "samosa", Category: "snacks", Price: 20, Available: true}
	affinity := map[string]int{"snacks": 3}
	trending := map[string]int{"samosa": 2}
	budget := 30

	assert.Equal(t, 1.0, scoreFor(item, affinity, trending, &budget))
	assert.InDelta(t, 0.8, scoreFor(models.MenuItem{ID: "samosa", Category: "snacks", Price: 50}, affinity, trending, &budget), 1e-9)
	assert.InDelta(t, 0.9, scoreFor(item, affinity, trending, nil), 1e-9)
}

func TestForUserRanking(t *testing.T) {
	now := time.Now()
	menu := testMenu()
	orders := []models.Order{
		// u1 has only ever ordered snacks; samosa is trending this hour.
		orderOf("u1", "samosa", 2, now),
		orderOf("u2", "samosa", 1, now),
	}

	budget := 30
	got := ForUser(menu, orders, "u1", &budget, now)
	require.NotEmpty(t, got)
	assert.Equal(t, "Samosa", got[0].Name, "category+trend+budget match must rank first")
	assert.LessOrEqual(t, len(got), 6)
}

func TestForUserSkipsUnavailable(t *testing.T) {
	now := time.Now()
	menu := testMenu()
	menu[2].Available = false // Samosa off the menu

	got := ForUser(menu, []models.Order{orderOf("u1", "samosa", 5, now)}, "u1", nil, now)
	for _, mi := range got {
		assert.True(t, mi.Available)
		assert.NotEqual(t, "Samosa", mi.Name)
	}
}

func TestForUserCapsAtSix(t *testing.T) {
	var menu []models.MenuItem
	for i := 0; i < 10; i++ {
		menu = append(menu, models.MenuItem{
			ID:        fmt.Sprintf("it%d", i),
			Name:      fmt.Sprintf("Item %d", i),
			Category:  "snacks",
			Price:     10,
			Available: true,
		})
	}

	got := ForUser(menu, nil, "anyone", nil, time.Now())
	assert.Len(t, got, 6)
}

func TestForUserStableOnTies(t *testing.T) {
	// No history, no budget: every item ties, so catalog order is kept.
	menu := testMenu()
	got := ForUser(menu, nil, "fresh-user", nil, time.Now())
	require.Len(t, got, 6)
	for i := 0; i < 6; i++ {
		assert.Equal(t, menu[i].Name, got[i].Name)
	}
}

func TestTrendingIsHourScoped(t *testing.T) {
	now := time.Now()
	lastHour := now.Add(-2 * time.Hour)
	orders := []models.Order{
		orderOf("u2", "tea", 10, lastHour), // stale volume
		orderOf("u2", "coffee", 1, now),
	}

	trending := trendingSet(orders, models.HourKey(now))
	assert.Contains(t, trending, "coffee")
	assert.NotContains(t, trending, "tea")
}
