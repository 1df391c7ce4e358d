package service

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockAnalyzerAnalyze(t *testing.T) {
	analyzer := NewMockAnalyzer(rand.New(rand.NewSource(1)))

	analysis, err := analyzer.Analyze(context.Background(), "Tomato Soup", "2 cups tomato, 1 onion, salt")
	require.NoError(t, err)
	require.Len(t, analysis.Ingredients, 3)

	tomato := analysis.Ingredients[0]
	assert.Equal(t, "tomato", tomato.Name)
	assert.Equal(t, "2", tomato.Quantity)
	assert.Equal(t, "cup", tomato.Unit)
	assert.Equal(t, "vegetable", tomato.Category)
	assert.Equal(t, "Fresh and nutritious vegetable", tomato.Description)

	salt := analysis.Ingredients[2]
	assert.Equal(t, "salt", salt.Name)
	assert.Equal(t, "1", salt.Quantity)
	assert.Equal(t, "unit", salt.Unit)
	assert.Equal(t, "spice", salt.Category)

	assert.Equal(t, "Easy", analysis.Difficulty)
	assert.Equal(t, "15-20 minutes", analysis.CookingTime)
	assert.Equal(t, "International", analysis.Cuisine)
	assert.ElementsMatch(t, []string{"vegetarian", "vegan", "gluten-free"}, analysis.DietaryInfo)
	assert.Len(t, analysis.Instructions, 5)
	assert.Contains(t, analysis.Instructions[2], "Tomato Soup")
}

func TestMockAnalyzerProductMatches(t *testing.T) {
	analyzer := NewMockAnalyzer(rand.New(rand.NewSource(42)))

	analysis, err := analyzer.Analyze(context.Background(),
		"Big Dinner", "chicken, rice, cheese, tomato, onion, garlic, olive oil, salt, pepper")
	require.NoError(t, err)
	require.Len(t, analysis.Ingredients, 9)

	categories := make(map[string]bool)
	for _, ing := range analysis.Ingredients {
		categories[ing.Category] = true
	}

	for _, match := range analysis.ProductMatches {
		assert.NotEmpty(t, match.ID)
		assert.NotEmpty(t, match.Name)
		assert.Regexp(t, `^\$\d+\.\d{2}$`, match.Price)
		assert.GreaterOrEqual(t, match.Confidence, 0.7)
		assert.LessOrEqual(t, match.Confidence, 1.0)
		assert.True(t, categories[match.Category], "match category %q", match.Category)
	}
}

func TestMockAnalyzerSkipsBlankEntries(t *testing.T) {
	analyzer := NewMockAnalyzer(rand.New(rand.NewSource(1)))

	analysis, err := analyzer.Analyze(context.Background(), "Toast", "bread, , ")
	require.NoError(t, err)
	require.Len(t, analysis.Ingredients, 1)
	assert.Equal(t, "bread", analysis.Ingredients[0].Name)
}

func TestAssessDifficulty(t *testing.T) {
	analyzer := NewMockAnalyzer(rand.New(rand.NewSource(1)))

	// More than three distinct categories pushes the rating to Hard even
	// with few ingredients.
	analysis, err := analyzer.Analyze(context.Background(), "Bowl", "chicken, rice, cheese, apple")
	require.NoError(t, err)
	assert.Equal(t, "Hard", analysis.Difficulty)

	analysis, err = analyzer.Analyze(context.Background(), "Salad", "tomato, onion, carrot, celery, spinach, kale")
	require.NoError(t, err)
	assert.Equal(t, "Medium", analysis.Difficulty)
}

func TestDetectCuisine(t *testing.T) {
	analyzer := NewMockAnalyzer(rand.New(rand.NewSource(1)))

	tests := []struct {
		recipeName  string
		ingredients string
		expected    string
	}{
		{"Pasta Primavera", "tomato, garlic", "Italian"},
		{"Chicken Curry", "chicken, onion", "Indian"},
		{"Taco Night", "beef, cheese", "Mexican"},
		{"Dinner", "rice, fish", "Japanese"},
		{"Veggie Stir Fry", "carrot, mushroom", "Asian"},
		{"Sandwich", "bread, cheese", "International"},
	}

	for _, tt := range tests {
		t.Run(tt.recipeName, func(t *testing.T) {
			analysis, err := analyzer.Analyze(context.Background(), tt.recipeName, tt.ingredients)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, analysis.Cuisine)
		})
	}
}

func TestAnalyzeDietaryInfo(t *testing.T) {
	analyzer := NewMockAnalyzer(rand.New(rand.NewSource(1)))

	analysis, err := analyzer.Analyze(context.Background(), "Steak Dinner", "beef, butter, bread")
	require.NoError(t, err)
	assert.Empty(t, analysis.DietaryInfo)

	analysis, err = analyzer.Analyze(context.Background(), "Tofu Bowl", "tofu, rice, spinach")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"vegetarian", "vegan", "gluten-free"}, analysis.DietaryInfo)

	analysis, err = analyzer.Analyze(context.Background(), "Mac and Cheese", "pasta, cheese, milk")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"vegetarian"}, analysis.DietaryInfo)
}
