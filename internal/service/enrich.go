package service

import (
	"context"
	"log"
	"strings"

	"github.com/yumcart/backend/internal/types"
)

// Analyzer produces a structured analysis for a recipe name and its
// free-text ingredient list.
type Analyzer interface {
	Analyze(ctx context.Context, recipeName, briefIngredients string) (*types.RecipeAnalysis, error)
}

// ImageLookup resolves ingredient names to image URLs, keyed by lower-cased
// name. Names it could not resolve are absent from the map.
type ImageLookup interface {
	IngredientImages(ctx context.Context, names []string) map[string]string
}

// EnrichmentService composes the analyzer with the ingredient image lookup.
// Image enrichment is strictly best-effort: a failed lookup never fails the
// analysis.
type EnrichmentService struct {
	analyzer Analyzer
	fallback Analyzer
	images   ImageLookup
}

// NewEnrichmentService wires the primary analyzer with the image lookup.
// fallback may be nil; when set, it replaces the primary's result on error
// instead of propagating the failure (the MOCK_ANALYSIS_FALLBACK deployment
// mode).
func NewEnrichmentService(analyzer Analyzer, fallback Analyzer, images ImageLookup) *EnrichmentService {
	return &EnrichmentService{
		analyzer: analyzer,
		fallback: fallback,
		images:   images,
	}
}

// Analyze runs the analyzer and attaches ingredient image URLs by
// case-insensitive exact name match. Ingredients without a match keep their
// image URL empty.
func (s *EnrichmentService) Analyze(ctx context.Context, recipeName, briefIngredients string) (*types.RecipeAnalysis, error) {
	analysis, err := s.analyzer.Analyze(ctx, recipeName, briefIngredients)
	if err != nil {
		if s.fallback == nil {
			return nil, err
		}
		log.Printf("[Enrichment] analysis failed, using heuristic fallback: %v", err)
		analysis, err = s.fallback.Analyze(ctx, recipeName, briefIngredients)
		if err != nil {
			return nil, err
		}
	}

	s.attachImages(ctx, analysis)
	return analysis, nil
}

func (s *EnrichmentService) attachImages(ctx context.Context, analysis *types.RecipeAnalysis) {
	if s.images == nil || len(analysis.Ingredients) == 0 {
		return
	}

	names := make([]string, 0, len(analysis.Ingredients))
	for _, ing := range analysis.Ingredients {
		names = append(names, ing.Name)
	}

	found := s.images.IngredientImages(ctx, names)
	for i := range analysis.Ingredients {
		if url, ok := found[strings.ToLower(analysis.Ingredients[i].Name)]; ok {
			analysis.Ingredients[i].ImageURL = url
		}
	}
}
