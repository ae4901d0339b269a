package recommend

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"canteen/internal/models"
)

// Constraints is the structured form of a free-text assistant query.
// Parsing and scoring are kept separate so each can be tested on its own.
type Constraints struct {
	MaxPrice *int
	Spicy    bool
	Filling  bool
	Veg      *bool
}

var maxPricePattern = regexp.MustCompile(`under\s*(\d+)`)

// ParseQuery extracts constraints from q, case-insensitively. "veg" sets a
// vegetarian preference unless "non-veg"/"nonveg" appears, which forces it
// off; with neither keyword the preference stays unset.
func ParseQuery(q string) Constraints {
	x := strings.ToLower(q)
	var c Constraints

	if m := maxPricePattern.FindStringSubmatch(x); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			c.MaxPrice = &n
		}
	}
	c.Spicy = strings.Contains(x, "spicy")
	c.Filling = strings.Contains(x, "filling")
	if strings.Contains(x, "veg") {
		veg := true
		c.Veg = &veg
	}
	if strings.Contains(x, "non-veg") || strings.Contains(x, "nonveg") {
		veg := false
		c.Veg = &veg
	}
	return c
}

// spicy queries boost these name fragments; the canteen has no heat
// ratings, so names stand in for them.
var spicyNames = []string{"masala", "puff", "samosa"}

// score rates one item against the parsed constraints. The flat bonus for
// any price-bounded query is intentional and independent of the item.
func score(c Constraints, mi models.MenuItem) int {
	s := 0
	name := strings.ToLower(mi.Name)
	if c.Spicy {
		for _, frag := range spicyNames {
			if strings.Contains(name, frag) {
				s++
				break
			}
		}
	}
	if c.Filling && (mi.Category == string(models.MenuCategoryBreakfast) || strings.Contains(name, "dosa")) {
		s++
	}
	if c.MaxPrice != nil {
		s++
	}
	return s
}

// Suggest answers a free-text query with up to 6 available items matching
// the parsed constraints, ranked by score with catalog order on ties.
func Suggest(menu []models.MenuItem, query string) []models.MenuItem {
	c := ParseQuery(query)

	type scored struct {
		item  models.MenuItem
		score int
	}
	candidates := make([]scored, 0, len(menu))
	for _, mi := range menu {
		if !mi.Available {
			continue
		}
		if c.MaxPrice != nil && mi.Price > *c.MaxPrice {
			continue
		}
		if c.Veg != nil && mi.Veg != *c.Veg {
			continue
		}
		candidates = append(candidates, scored{item: mi, score: score(c, mi)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	n := len(candidates)
	if n > maxResults {
		n = maxResults
	}
	out := make([]models.MenuItem, 0, n)
	for _, s := range candidates[:n] {
		out = append(out, s.item)
	}
	return out
}
