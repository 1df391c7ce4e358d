package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spoonacularServer answers ingredient searches with a single result whose
// image is derived from the query, except for names listed in noImage.
func spoonacularServer(t *testing.T, calls *atomic.Int64, noImage map[string]bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/food/ingredients/search", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))

		w.Header().Set("Content-Type", "application/json")

		query := r.URL.Query().Get("query")
		result := spoonacularSearchResult{TotalResults: 1}
		if !noImage[query] {
			result.Results = []SpoonacularIngredient{
				{ID: 1, Name: query, Image: query + ".jpg"},
			}
		}
		require.NoError(t, json.NewEncoder(w).Encode(result))
	}))
}

func TestSearchIngredients(t *testing.T) {
	var calls atomic.Int64
	server := spoonacularServer(t, &calls, nil)
	defer server.Close()

	svc := NewSpoonacularService("test-key", server.URL)
	results, err := svc.SearchIngredients(context.Background(), "tomato", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "tomato", results[0].Name)
	assert.Equal(t, "tomato.jpg", results[0].Image)
}

func TestSearchIngredientsNoAPIKey(t *testing.T) {
	svc := NewSpoonacularService("", "http://unused.invalid")

	_, err := svc.SearchIngredients(context.Background(), "tomato", 5)
	assert.ErrorIs(t, err, ErrNoAPIKey)

	_, err = svc.SearchRaw(context.Background(), "tomato", 5)
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestSearchRawUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer server.Close()

	svc := NewSpoonacularService("test-key", server.URL)
	_, err := svc.SearchRaw(context.Background(), "tomato", 5)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestIngredientImage(t *testing.T) {
	var calls atomic.Int64
	server := spoonacularServer(t, &calls, map[string]bool{"unknown": true})
	defer server.Close()

	svc := NewSpoonacularService("test-key", server.URL)

	url, err := svc.IngredientImage(context.Background(), "tomato")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf(ingredientCDNTemplate, "tomato.jpg"), url)

	url, err = svc.IngredientImage(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestIngredientImages(t *testing.T) {
	var calls atomic.Int64
	server := spoonacularServer(t, &calls, map[string]bool{"Mystery": true})
	defer server.Close()

	svc := NewSpoonacularService("test-key", server.URL)
	svc.batchDelay = 0

	names := []string{"Tomato", "Onion", "Garlic", "Mystery", "Basil"}
	images := svc.IngredientImages(context.Background(), names)

	// One upstream call per name, matched names keyed by lower-cased name,
	// the imageless one absent.
	assert.Equal(t, int64(5), calls.Load())
	assert.Len(t, images, 4)
	assert.Equal(t, fmt.Sprintf(ingredientCDNTemplate, "Tomato.jpg"), images["tomato"])
	assert.Equal(t, fmt.Sprintf(ingredientCDNTemplate, "Basil.jpg"), images["basil"])
	assert.NotContains(t, images, "mystery")
}

func TestIngredientImagesEmptyInput(t *testing.T) {
	svc := NewSpoonacularService("test-key", "http://unused.invalid")
	svc.batchDelay = 0

	images := svc.IngredientImages(context.Background(), nil)
	assert.Empty(t, images)
}
