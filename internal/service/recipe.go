package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yumcart/backend/internal/model"
	"github.com/yumcart/backend/internal/types"
)

// RecipeService persists final recipe records.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// SubmittedRecipe carries the user-edited fields of a submit request.
type SubmittedRecipe struct {
	RecipeName       string
	BriefIngredients string
	FullRecipe       string
	Ingredients      []types.SubmittedIngredient
}

// CreateFromDraft writes the final record for a submitted draft. The draft's
// analysis difficulty is carried through, defaulting to "medium" when the
// draft has none.
func (s *RecipeService) CreateFromDraft(ctx context.Context, draft *types.RecipeDraft, submitted SubmittedRecipe, imageURL string) (*model.Recipe, error) {
	userID, err := uuid.Parse(draft.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid draft user id: %w", err)
	}

	difficulty := strings.ToLower(draft.Difficulty)
	if difficulty == "" {
		difficulty = "medium"
	}

	recipe := &model.Recipe{
		ID:               uuid.New(),
		UserID:           userID,
		UserName:         draft.UserName,
		RecipeName:       submitted.RecipeName,
		BriefIngredients: submitted.BriefIngredients,
		FullRecipe:       submitted.FullRecipe,
		Ingredients:      model.IngredientList(submitted.Ingredients),
		ImageURL:         imageURL,
		Likes:            0,
		Tags:             model.JSONBStringArray{},
		Difficulty:       difficulty,
		OriginalDraftID:  draft.DraftID,
	}

	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	return recipe, nil
}

// GetRecipe fetches one final record by id.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recipe: %w", err)
	}
	return &recipe, nil
}
