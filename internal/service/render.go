package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/yumcart/backend/internal/types"
)

// FormatRecipeText renders the analysis as the markdown recipe text stored
// on the draft and shown to the user for editing.
func FormatRecipeText(recipeName string, analysis *types.RecipeAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", recipeName)

	b.WriteString("## Ingredients:\n")
	for _, ing := range analysis.Ingredients {
		fmt.Fprintf(&b, "- %s %s %s (%s)\n", ing.Quantity, ing.Unit, ing.Name, ing.Category)
	}

	b.WriteString("\n## Instructions:\n")
	for i, step := range analysis.Instructions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}

	dietary := strings.Join(analysis.DietaryInfo, ", ")
	if dietary == "" {
		dietary = "Standard"
	}

	b.WriteString("\n## Recipe Info:\n")
	fmt.Fprintf(&b, "- **Cuisine:** %s\n", analysis.Cuisine)
	fmt.Fprintf(&b, "- **Difficulty:** %s\n", analysis.Difficulty)
	fmt.Fprintf(&b, "- **Cooking Time:** %s\n", analysis.CookingTime)
	fmt.Fprintf(&b, "- **Dietary:** %s", dietary)

	return b.String()
}

// ExtractIngredients converts the analysis ingredients to the editable rows
// returned by the generate endpoint, attaching a store product per
// ingredient by matching category. Product association is best-effort: the
// same match may serve several ingredients of one category.
func ExtractIngredients(analysis *types.RecipeAnalysis) []types.ExtractedIngredient {
	now := time.Now().UnixMilli()

	extracted := make([]types.ExtractedIngredient, 0, len(analysis.Ingredients))
	for i, ing := range analysis.Ingredients {
		row := types.ExtractedIngredient{
			ID:       fmt.Sprintf("ing-%d-%d", i, now),
			Name:     ing.Name,
			Quantity: strings.TrimSpace(ing.Quantity + " " + ing.Unit),
		}

		if match := findProductMatch(analysis.ProductMatches, ing); match != nil {
			product := &types.StoreProduct{
				ID:       fmt.Sprintf("prod-%d-%d", i, now),
				Name:     match.Name,
				Price:    match.Price,
				ImageURL: match.ImageURL,
			}
			if product.Name == "" {
				product.Name = "NoName " + ing.Name
			}
			if product.Price == "" {
				product.Price = "$3.99"
			}
			if product.ImageURL == "" {
				product.ImageURL = fmt.Sprintf("/placeholder.svg?width=50&height=50&text=%s", upperFirstRune(ing.Name))
			}
			row.StoreProduct = product
		}

		extracted = append(extracted, row)
	}

	return extracted
}

// findProductMatch picks a product for an ingredient by category equality
// first, then case-insensitive name containment. No uniqueness is enforced.
func findProductMatch(matches []types.ProductMatch, ing types.Ingredient) *types.ProductMatch {
	for i := range matches {
		if matches[i].Category != "" && matches[i].Category == ing.Category {
			return &matches[i]
		}
	}
	lowerName := strings.ToLower(ing.Name)
	for i := range matches {
		if lowerName != "" && strings.Contains(strings.ToLower(matches[i].Name), lowerName) {
			return &matches[i]
		}
	}
	return nil
}
