// Package analytics computes read-only aggregations over ledger snapshots.
// Nothing here mutates state; callers pass copies taken from the store.
package analytics

import (
	"sort"
	"time"

	"canteen/internal/models"
)

// Summary is the headline view over a time range. Revenue here includes
// every status, cancelled orders too.
type Summary struct {
	Date          string  `json:"date"`
	TotalOrders   int     `json:"totalOrders"`
	TotalRevenue  int     `json:"totalRevenue"`
	AvgOrderValue float64 `json:"avgOrderValue"`
	ActiveUsers   int     `json:"activeUsers"`
}

// Revenue splits range revenue by cancellation.
type Revenue struct {
	TotalRevenue     int `json:"totalRevenue"`
	CancelledRevenue int `json:"cancelledRevenue"`
	NetRevenue       int `json:"netRevenue"`
}

// TopItem is one row of the quantity leaderboard.
type TopItem struct {
	ItemID string `json:"itemId"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}

// HourBucket is the per-hour order count.
type HourBucket struct {
	Hour   string `json:"hour"`
	Orders int    `json:"orders"`
}

// RangeFrom resolves a named range to its start instant: "7d" and "30d"
// measure back from now, anything else means today (local midnight).
func RangeFrom(name string, now time.Time) time.Time {
	switch name {
	case "7d":
		return now.Add(-7 * 24 * time.Hour)
	case "30d":
		return now.Add(-30 * 24 * time.Hour)
	default:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
}

func filterFrom(orders []models.Order, from time.Time) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if !o.CreatedAt.Before(from) {
			out = append(out, o)
		}
	}
	return out
}

// BuildSummary aggregates orders created at or after from.
func BuildSummary(orders []models.Order, from, now time.Time) Summary {
	list := filterFrom(orders, from)

	revenue := 0
	users := make(map[string]struct{})
	for _, o := range list {
		revenue += o.TotalAmount
		users[o.UserID] = struct{}{}
	}
	avg := 0.0
	if len(list) > 0 {
		avg = float64(revenue) / float64(len(list))
	}
	return Summary{
		Date:          now.Format("2006-01-02"),
		TotalOrders:   len(list),
		TotalRevenue:  revenue,
		AvgOrderValue: avg,
		ActiveUsers:   len(users),
	}
}

// BuildRevenue splits range revenue into kept and cancelled portions.
func BuildRevenue(orders []models.Order, from time.Time) Revenue {
	var r Revenue
	for _, o := range filterFrom(orders, from) {
		if o.Status == models.OrderStatusCancelled {
			r.CancelledRevenue += o.TotalAmount
		} else {
			r.TotalRevenue += o.TotalAmount
		}
	}
	r.NetRevenue = r.TotalRevenue - r.CancelledRevenue
	return r
}

// TopItems tallies quantities over the entire ledger, not a range: the
// leaderboard is all-time by design. Unknown item ids keep the id as the
// display name.
func TopItems(orders []models.Order, menu []models.MenuItem, limit int) []TopItem {
	if limit <= 0 {
		limit = 5
	}
	byID := make(map[string]models.MenuItem, len(menu))
	for _, mi := range menu {
		byID[mi.ID] = mi
	}

	counts := make(map[string]int)
	var seen []string
	for _, o := range orders {
		for _, it := range o.Items {
			if _, ok := counts[it.ItemID]; !ok {
				seen = append(seen, it.ItemID)
			}
			counts[it.ItemID] += it.Qty
		}
	}

	sort.SliceStable(seen, func(i, j int) bool {
		return counts[seen[i]] > counts[seen[j]]
	})
	if len(seen) > limit {
		seen = seen[:limit]
	}

	out := make([]TopItem, 0, len(seen))
	for _, id := range seen {
		name := id
		if mi, ok := byID[id]; ok {
			name = mi.Name
		}
		out = append(out, TopItem{ItemID: id, Name: name, Count: counts[id]})
	}
	return out
}

// OrdersPerHour groups the whole ledger by creation hour key. Keys sort
// lexicographically, which is also chronological for this format.
func OrdersPerHour(orders []models.Order) []HourBucket {
	buckets := make(map[string]int)
	for _, o := range orders {
		buckets[o.CreatedHourKey]++
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]HourBucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, HourBucket{Hour: k, Orders: buckets[k]})
	}
	return out
}
