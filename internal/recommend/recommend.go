// Package recommend ranks menu items for a user from order history, and
// answers free-text assistant queries with a rule-based extractor. Both
// modes are pure functions over ledger/catalog snapshots.
package recommend

import (
	"sort"
	"time"

	"canteen/internal/models"
)

// maxResults caps every ranked response.
const maxResults = 6

// Scoring weights for personalized ranking. Category affinity dominates,
// then hourly trend membership, then budget fit.
const (
	weightCategory = 0.5
	weightTrending = 0.3
	weightBudget   = 0.2
)

// trendingSet returns the ids with nonzero quantity-weighted volume in the
// given hour bucket. Membership is the signal; magnitude is not used
// beyond it.
func trendingSet(orders []models.Order, hourKey string) map[string]int {
	counts := make(map[string]int)
	for _, o := range orders {
		if o.CreatedHourKey != hourKey {
			continue
		}
		for _, it := range o.Items {
			counts[it.ItemID] += it.Qty
		}
	}
	return counts
}

// categoryAffinity tallies quantity-weighted category counts across the
// user's past orders. Any category the user has ever ordered from counts
// as a match, regardless of rank.
func categoryAffinity(orders []models.Order, menu []models.MenuItem, userID string) map[string]int {
	byID := make(map[string]models.MenuItem, len(menu))
	for _, mi := range menu {
		byID[mi.ID] = mi
	}

	cats := make(map[string]int)
	for _, o := range orders {
		if o.UserID != userID {
			continue
		}
		for _, it := range o.Items {
			if mi, ok := byID[it.ItemID]; ok {
				cats[mi.Category] += it.Qty
			}
		}
	}
	return cats
}

// scoreFor rates one item. Category and trending matches are membership
// tests; a missing budget contributes a neutral half of the budget weight.
func scoreFor(mi models.MenuItem, affinity map[string]int, trending map[string]int, budget *int) float64 {
	s := 0.0
	if _, ok := affinity[mi.Category]; ok {
		s += weightCategory
	}
	if _, ok := trending[mi.ID]; ok {
		s += weightTrending
	}
	switch {
	case budget == nil:
		s += weightBudget * 0.5
	case mi.Price <= *budget:
		s += weightBudget
	}
	return s
}

// ForUser returns up to 6 available items ranked for userID. budget is
// optional; when absent, budget fit contributes a neutral half weight.
// Ties keep catalog order.
func ForUser(menu []models.MenuItem, orders []models.Order, userID string, budget *int, now time.Time) []models.MenuItem {
	trending := trendingSet(orders, models.HourKey(now))
	affinity := categoryAffinity(orders, menu, userID)

	type scored struct {
		item  models.MenuItem
		score float64
	}
	candidates := make([]scored, 0, len(menu))
	for _, mi := range menu {
		if !mi.Available {
			continue
		}
		candidates = append(candidates, scored{item: mi, score: scoreFor(mi, affinity, trending, budget)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	n := len(candidates)
	if n > maxResults {
		n = maxResults
	}
	out := make([]models.MenuItem, 0, n)
	for _, c := range candidates[:n] {
		out = append(out, c.item)
	}
	return out
}
