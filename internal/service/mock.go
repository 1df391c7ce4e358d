package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/yumcart/backend/internal/ingredient"
	"github.com/yumcart/backend/internal/types"
)

var categoryDescriptions = map[ingredient.Category]string{
	ingredient.CategoryProtein:   "High-quality protein source",
	ingredient.CategoryVegetable: "Fresh and nutritious vegetable",
	ingredient.CategoryDairy:     "Rich dairy product",
	ingredient.CategoryGrain:     "Wholesome grain product",
	ingredient.CategorySpice:     "Aromatic spice for flavoring",
	ingredient.CategoryFruit:     "Sweet and fresh fruit",
	ingredient.CategoryOil:       "Healthy cooking oil",
	ingredient.CategoryOther:     "Essential cooking ingredient",
}

var productPrefixes = map[ingredient.Category]string{
	ingredient.CategoryProtein:   "NoName Premium",
	ingredient.CategoryVegetable: "NoName Fresh",
	ingredient.CategoryDairy:     "NoName Dairy",
	ingredient.CategoryGrain:     "NoName Whole Grain",
	ingredient.CategorySpice:     "NoName Spice",
	ingredient.CategoryFruit:     "NoName Fresh",
	ingredient.CategoryOil:       "NoName Pure",
	ingredient.CategoryOther:     "NoName",
}

var priceRanges = map[ingredient.Category][2]float64{
	ingredient.CategoryProtein:   {3, 8},
	ingredient.CategoryVegetable: {1, 4},
	ingredient.CategoryDairy:     {2, 6},
	ingredient.CategoryGrain:     {1, 5},
	ingredient.CategorySpice:     {1, 3},
	ingredient.CategoryFruit:     {2, 5},
	ingredient.CategoryOil:       {3, 7},
	ingredient.CategoryOther:     {1, 4},
}

// MockAnalyzer assembles a full recipe analysis from local heuristics. It is
// the designed fallback when the LLM is unavailable and never fails.
type MockAnalyzer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockAnalyzer creates a MockAnalyzer drawing match decisions, confidences
// and prices from the given source. Tests pin the seed for determinism.
func NewMockAnalyzer(rng *rand.Rand) *MockAnalyzer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &MockAnalyzer{rng: rng}
}

// Analyze builds a complete RecipeAnalysis from the comma-separated
// ingredient list and the recipe name. The error return exists only to
// satisfy the Analyzer interface; it is always nil.
func (m *MockAnalyzer) Analyze(_ context.Context, recipeName, briefIngredients string) (*types.RecipeAnalysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ingredients []types.Ingredient
	for _, line := range strings.Split(briefIngredients, ",") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parsed := ingredient.ParseLine(line)
		category := ingredient.Categorize(parsed.Name)
		ingredients = append(ingredients, types.Ingredient{
			Name:        parsed.Name,
			Quantity:    parsed.Quantity,
			Unit:        parsed.Unit,
			Category:    string(category),
			Description: categoryDescriptions[category],
		})
	}

	var matches []types.ProductMatch
	for i, ing := range ingredients {
		if m.rng.Float64() <= 0.2 { // 80% match rate
			continue
		}
		category := ingredient.Category(ing.Category)
		priceRange := priceRanges[category]
		matches = append(matches, types.ProductMatch{
			ID:         fmt.Sprintf("prod-%d-%d", i, time.Now().UnixMilli()),
			Name:       fmt.Sprintf("%s %s", productPrefixes[category], capitalize(ing.Name)),
			Price:      fmt.Sprintf("$%.2f", priceRange[0]+m.rng.Float64()*(priceRange[1]-priceRange[0])),
			ImageURL:   fmt.Sprintf("/placeholder.svg?width=50&height=50&text=%s", upperFirstRune(ing.Name)),
			Confidence: 0.7 + m.rng.Float64()*0.3,
			Category:   ing.Category,
		})
	}

	return &types.RecipeAnalysis{
		Ingredients:    ingredients,
		ProductMatches: matches,
		CookingTime:    estimateCookingTime(ingredients),
		Difficulty:     assessDifficulty(ingredients),
		Cuisine:        detectCuisine(recipeName, ingredients),
		DietaryInfo:    analyzeDietaryInfo(ingredients),
		Instructions: []string{
			"Preheat your oven to 180°C (350°F).",
			"Prepare all ingredients as listed above.",
			fmt.Sprintf("Follow standard cooking procedures for %s.", recipeName),
			"Cook for the recommended time.",
			"Serve hot and enjoy!",
		},
	}, nil
}

func estimateCookingTime(ingredients []types.Ingredient) string {
	hasProtein := hasCategory(ingredients, ingredient.CategoryProtein)
	hasGrain := hasCategory(ingredients, ingredient.CategoryGrain)
	count := len(ingredients)

	switch {
	case hasProtein && hasGrain && count > 5:
		return "45-60 minutes"
	case hasProtein && count > 3:
		return "30-45 minutes"
	case count > 4:
		return "20-30 minutes"
	default:
		return "15-20 minutes"
	}
}

func assessDifficulty(ingredients []types.Ingredient) string {
	categories := make(map[string]struct{})
	for _, ing := range ingredients {
		categories[ing.Category] = struct{}{}
	}

	switch {
	case len(ingredients) > 8 || len(categories) > 3:
		return "Hard"
	case len(ingredients) > 5:
		return "Medium"
	default:
		return "Easy"
	}
}

// detectCuisine applies an ordered keyword rule list against the recipe name
// and ingredient names.
func detectCuisine(recipeName string, ingredients []types.Ingredient) string {
	name := strings.ToLower(recipeName)
	var names []string
	for _, ing := range ingredients {
		names = append(names, strings.ToLower(ing.Name))
	}

	anyContains := func(substr string) bool {
		for _, n := range names {
			if strings.Contains(n, substr) {
				return true
			}
		}
		return false
	}

	switch {
	case strings.Contains(name, "pasta") || anyContains("pasta"):
		return "Italian"
	case strings.Contains(name, "curry") || anyContains("curry"):
		return "Indian"
	case strings.Contains(name, "taco") || strings.Contains(name, "burrito") || anyContains("tortilla"):
		return "Mexican"
	case strings.Contains(name, "sushi") || (anyContains("rice") && anyContains("fish")):
		return "Japanese"
	case strings.Contains(name, "stir fry") || anyContains("soy sauce"):
		return "Asian"
	default:
		return "International"
	}
}

func analyzeDietaryInfo(ingredients []types.Ingredient) []string {
	var info []string

	hasMeat := false
	hasDairy := false
	hasGluten := false
	for _, ing := range ingredients {
		switch ingredient.Category(ing.Category) {
		case ingredient.CategoryProtein:
			if !ingredient.IsPlantProtein(ing.Name) {
				hasMeat = true
			}
		case ingredient.CategoryDairy:
			hasDairy = true
		case ingredient.CategoryGrain:
			if !ingredient.IsGlutenFreeGrain(ing.Name) {
				hasGluten = true
			}
		}
	}

	if !hasMeat {
		info = append(info, "vegetarian")
	}
	if !hasMeat && !hasDairy {
		info = append(info, "vegan")
	}
	if !hasGluten {
		info = append(info, "gluten-free")
	}

	return info
}

func hasCategory(ingredients []types.Ingredient, category ingredient.Category) bool {
	for _, ing := range ingredients {
		if ing.Category == string(category) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func upperFirstRune(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1])
}
