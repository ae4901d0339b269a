package models

// MenuItem represents a dish on the canteen menu. Price is a whole
// currency unit; items are never deleted, only marked unavailable.
type MenuItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Price     int    `json:"price"`
	Veg       bool   `json:"veg"`
	Available bool   `json:"available"`
}

// MenuCategory represents the category of a menu item. The set is open;
// these are the categories the canteen seeds with.
type MenuCategory string

const (
	MenuCategoryBreakfast MenuCategory = "breakfast"
	MenuCategorySnacks    MenuCategory = "snacks"
	MenuCategoryDrinks    MenuCategory = "drinks"
)

// IsInCategory checks if the item belongs to a specific category.
func (mi *MenuItem) IsInCategory(category string) bool {
	return mi.Category == category
}
