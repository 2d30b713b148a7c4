package catalog

import "strings"

// Category is one of the fixed shopping categories ingredients are filed under.
type Category string

const (
	CategoryProduce Category = "produce"
	CategoryFruit   Category = "fruit"
	CategoryMeat    Category = "meat"
	CategoryFish    Category = "fish"
	CategoryDairy   Category = "dairy"
	CategoryEggs    Category = "eggs"
	CategoryGrains  Category = "grains"
	CategoryLegumes Category = "legumes"
	CategoryBakery  Category = "bakery"
	CategorySpices  Category = "spices"
	CategoryOils    Category = "oils"
	CategoryCanned  Category = "canned"
	CategoryFrozen  Category = "frozen"
	CategoryOther   Category = "other"
)

// Categories lists every category in shopping order. Other is always last.
var Categories = []Category{
	CategoryProduce,
	CategoryFruit,
	CategoryMeat,
	CategoryFish,
	CategoryDairy,
	CategoryEggs,
	CategoryGrains,
	CategoryLegumes,
	CategoryBakery,
	CategorySpices,
	CategoryOils,
	CategoryCanned,
	CategoryFrozen,
	CategoryOther,
}

var categoryLabels = map[Category]string{
	CategoryProduce: "Vegetables",
	CategoryFruit:   "Fruit",
	CategoryMeat:    "Meat",
	CategoryFish:    "Fish & seafood",
	CategoryDairy:   "Dairy",
	CategoryEggs:    "Eggs",
	CategoryGrains:  "Pasta, rice & grains",
	CategoryLegumes: "Legumes",
	CategoryBakery:  "Bakery",
	CategorySpices:  "Herbs & spices",
	CategoryOils:    "Oils & condiments",
	CategoryCanned:  "Canned & jarred",
	CategoryFrozen:  "Frozen",
	CategoryOther:   "Other",
}

var categoryOrder = func() map[Category]int {
	m := make(map[Category]int, len(Categories))
	for i, c := range Categories {
		m[c] = i
	}
	return m
}()

// ParseCategory maps a stored category code to a Category. Unknown or empty codes map to
// CategoryOther.
func ParseCategory(code string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(code)))
	if _, ok := categoryOrder[c]; ok {
		return c
	}
	return CategoryOther
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	_, ok := categoryOrder[c]
	return ok
}

// Label returns the human readable name of the category.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return categoryLabels[CategoryOther]
}

// Order returns the position of the category in shopping order.
func (c Category) Order() int {
	if i, ok := categoryOrder[c]; ok {
		return i
	}
	return categoryOrder[CategoryOther]
}
