package types

// Ingredient is one structured ingredient of a recipe analysis. Category is
// derived from the name, never user-supplied. ImageURL is attached later by
// the enrichment step and stays empty when no image was found.
type Ingredient struct {
	Name        string `json:"name"`
	Quantity    string `json:"quantity"`
	Unit        string `json:"unit"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// ProductMatch is a best-effort store product suggestion for an ingredient.
// Matches are not guaranteed unique per ingredient.
type ProductMatch struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Price      string  `json:"price"`
	ImageURL   string  `json:"imageUrl"`
	Confidence float64 `json:"confidence"`
	Category   string  `json:"category"`
}

// RecipeAnalysis is the structured result of analyzing a recipe name and its
// free-text ingredient list, whether produced by the LLM or the heuristic
// fallback.
type RecipeAnalysis struct {
	Ingredients    []Ingredient   `json:"ingredients"`
	ProductMatches []ProductMatch `json:"productMatches"`
	CookingTime    string         `json:"cookingTime"`
	Difficulty     string         `json:"difficulty"`
	Cuisine        string         `json:"cuisine"`
	DietaryInfo    []string       `json:"dietaryInfo"`
	Instructions   []string       `json:"instructions"`
}
