package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// ingredientCDNTemplate resolves an upstream image file name to a
	// fixed-size CDN path.
	ingredientCDNTemplate = "https://spoonacular.com/cdn/ingredients_100x100/%s"

	// lookupBatchSize bounds how many image lookups run concurrently.
	lookupBatchSize = 3
)

// SpoonacularIngredient is one search result from the ingredient search API.
type SpoonacularIngredient struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
	Aisle string `json:"aisle"`
}

// spoonacularSearchResult is the ingredient search response envelope.
type spoonacularSearchResult struct {
	Results      []SpoonacularIngredient `json:"results"`
	Offset       int                     `json:"offset"`
	Number       int                     `json:"number"`
	TotalResults int                     `json:"totalResults"`
}

// SpoonacularService looks up ingredient images through the ingredient
// search API. Batched lookups are throttled to respect the upstream rate
// limit: groups of lookupBatchSize run concurrently, groups are sequential
// with a short delay between them.
type SpoonacularService struct {
	apiKey     string
	client     *resty.Client
	batchDelay time.Duration
}

// NewSpoonacularService creates a client against the given base URL. An
// empty apiKey degrades lookups to empty results rather than erroring the
// whole analysis.
func NewSpoonacularService(apiKey, baseURL string) *SpoonacularService {
	return &SpoonacularService{
		apiKey:     apiKey,
		client:     resty.New().SetBaseURL(baseURL).SetTimeout(15 * time.Second),
		batchDelay: 200 * time.Millisecond,
	}
}

// SearchRaw proxies an ingredient search and returns the upstream JSON
// verbatim, for the first-party proxy endpoint that keeps the credential
// away from untrusted callers.
func (s *SpoonacularService) SearchRaw(ctx context.Context, query string, number int) ([]byte, error) {
	if s.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"apiKey":          s.apiKey,
			"query":           query,
			"number":          strconv.Itoa(number),
			"addChildren":     "true",
			"fillIngredients": "true",
		}).
		Get("/food/ingredients/search")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode())
	}

	return resp.Body(), nil
}

// SearchIngredients searches for ingredients by name.
func (s *SpoonacularService) SearchIngredients(ctx context.Context, query string, number int) ([]SpoonacularIngredient, error) {
	if s.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	var result spoonacularSearchResult
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"apiKey": s.apiKey,
			"query":  query,
			"number": strconv.Itoa(number),
		}).
		SetResult(&result).
		Get("/food/ingredients/search")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode())
	}

	return result.Results, nil
}

// IngredientImage returns the best-match image URL for an ingredient name,
// or "" when nothing matched or the top match carries no image.
func (s *SpoonacularService) IngredientImage(ctx context.Context, name string) (string, error) {
	results, err := s.SearchIngredients(ctx, name, 1)
	if err != nil {
		return "", err
	}
	if len(results) == 0 || results[0].Image == "" {
		return "", nil
	}
	return fmt.Sprintf(ingredientCDNTemplate, results[0].Image), nil
}

// IngredientImages resolves image URLs for a list of ingredient names and
// returns a lower-cased name to URL mapping. Names with no image are absent
// from the result. One upstream call is made per name, in sequential groups
// of lookupBatchSize.
func (s *SpoonacularService) IngredientImages(ctx context.Context, names []string) map[string]string {
	images := make(map[string]string)

	for start := 0; start < len(names); start += lookupBatchSize {
		end := start + lookupBatchSize
		if end > len(names) {
			end = len(names)
		}
		batch := names[start:end]

		type lookup struct {
			name  string
			image string
		}
		results := make([]lookup, len(batch))

		var wg sync.WaitGroup
		for i, name := range batch {
			wg.Add(1)
			go func(i int, name string) {
				defer wg.Done()
				image, err := s.IngredientImage(ctx, name)
				if err != nil {
					log.Printf("[SpoonacularService] image lookup failed for %q: %v", name, err)
					return
				}
				results[i] = lookup{name: name, image: image}
			}(i, name)
		}
		wg.Wait()

		for _, r := range results {
			if r.image != "" {
				images[strings.ToLower(r.name)] = r.image
			}
		}

		// Small pause between groups to be respectful to the API.
		if end < len(names) {
			time.Sleep(s.batchDelay)
		}
	}

	return images
}
