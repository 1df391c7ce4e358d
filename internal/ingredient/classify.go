package ingredient

import "strings"

// Category is the derived grouping of an ingredient, used for descriptions,
// product matching and dietary analysis.
type Category string

const (
	CategoryProtein   Category = "protein"
	CategoryVegetable Category = "vegetable"
	CategoryDairy     Category = "dairy"
	CategoryGrain     Category = "grain"
	CategorySpice     Category = "spice"
	CategoryFruit     Category = "fruit"
	CategoryOil       Category = "oil"
	CategoryOther     Category = "other"
)

// categoryKeywords is checked in order; the first category whose keyword
// list matches wins.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryProtein, []string{"chicken", "beef", "pork", "fish", "salmon", "tuna", "shrimp", "eggs", "tofu", "tempeh", "lentils", "beans"}},
	{CategoryVegetable, []string{"tomato", "onion", "garlic", "carrot", "celery", "bell pepper", "mushroom", "spinach", "kale", "lettuce", "cucumber", "zucchini"}},
	{CategoryDairy, []string{"milk", "cheese", "butter", "cream", "yogurt", "sour cream", "cream cheese"}},
	{CategoryGrain, []string{"rice", "pasta", "bread", "flour", "quinoa", "oats", "barley"}},
	{CategorySpice, []string{"salt", "pepper", "oregano", "basil", "thyme", "rosemary", "cumin", "paprika", "cinnamon"}},
	{CategoryFruit, []string{"apple", "banana", "orange", "lemon", "lime", "strawberry", "blueberry"}},
	{CategoryOil, []string{"olive oil", "vegetable oil", "coconut oil", "sesame oil"}},
}

// plantProteins are protein-category ingredients that do not make a recipe
// non-vegetarian.
var plantProteins = []string{"tofu", "tempeh", "lentils", "beans"}

// glutenFreeGrains are grain-category ingredients exempt from the gluten check.
var glutenFreeGrains = []string{"quinoa", "rice"}

// Categorize maps an ingredient name to its category by keyword lookup on the
// lower-cased name. Unmatched names are CategoryOther.
func Categorize(name string) Category {
	lower := strings.ToLower(name)
	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.category
			}
		}
	}
	return CategoryOther
}

// IsPlantProtein reports whether a protein-category name refers to a plant
// source such as tofu or lentils.
func IsPlantProtein(name string) bool {
	lower := strings.ToLower(name)
	for _, plant := range plantProteins {
		if strings.Contains(lower, plant) {
			return true
		}
	}
	return false
}

// IsGlutenFreeGrain reports whether a grain-category name is one of the
// gluten-free exemptions.
func IsGlutenFreeGrain(name string) bool {
	lower := strings.ToLower(name)
	for _, grain := range glutenFreeGrains {
		if strings.Contains(lower, grain) {
			return true
		}
	}
	return false
}
