package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yumcart/backend/internal/service"
	"github.com/yumcart/backend/internal/types"
)

// SubmitRecipe converts a draft into the final recipe record: it validates
// the edited ingredient list, moves the image to permanent storage, writes
// the final record, and removes the draft.
func (h *RecipeHandler) SubmitRecipe(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication token missing or invalid.")
		return
	}

	draftID := c.PostForm("draftId")
	recipeName := c.PostForm("recipeName")
	briefIngredients := c.PostForm("briefIngredients")
	fullRecipe := c.PostForm("fullRecipe")
	ingredientsJSON := c.PostForm("ingredients")

	if draftID == "" || recipeName == "" || briefIngredients == "" || fullRecipe == "" || ingredientsJSON == "" {
		respondError(c, http.StatusBadRequest, "MISSING_FIELDS", "Missing required recipe information or draft ID.")
		return
	}

	draft, err := h.drafts.GetDraft(c.Request.Context(), draftID)
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			respondError(c, http.StatusNotFound, "DRAFT_NOT_FOUND", "Recipe draft not found or has expired.")
			return
		}
		log.Printf("[RecipeHandler] draft lookup failed: %v", err)
		respondError(c, http.StatusInternalServerError, "SERVER_ERROR", "An internal server error occurred during recipe submission.")
		return
	}

	if draft.UserID != userID.String() {
		respondError(c, http.StatusForbidden, "UNAUTHORIZED_DRAFT", "You are not authorized to submit this draft.")
		return
	}

	ingredients, err := parseSubmittedIngredients(ingredientsJSON)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INGREDIENTS_FORMAT",
			"Ingredients must be a valid JSON array with name and quantity for each item.")
		return
	}

	_, finalImageURL, err := h.images.PromoteImage(c.Request.Context(), draft.ImagePath, userID.String(), recipeName)
	if err != nil {
		log.Printf("[RecipeHandler] image promotion failed: %v", err)
		respondError(c, http.StatusInternalServerError, "SERVER_ERROR", "An internal server error occurred during recipe submission.")
		return
	}

	recipe, err := h.recipes.CreateFromDraft(c.Request.Context(), draft, service.SubmittedRecipe{
		RecipeName:       recipeName,
		BriefIngredients: briefIngredients,
		FullRecipe:       fullRecipe,
		Ingredients:      ingredients,
	}, finalImageURL)
	if err != nil {
		log.Printf("[RecipeHandler] failed to create recipe: %v", err)
		respondError(c, http.StatusInternalServerError, "SERVER_ERROR", "An internal server error occurred during recipe submission.")
		return
	}

	// Draft and temporary image removal is best-effort; a failure here must
	// not undo a successful submission.
	if err := h.drafts.DeleteDraft(c.Request.Context(), draft.DraftID); err != nil {
		log.Printf("[RecipeHandler] failed to delete draft %s: %v", draft.DraftID, err)
	}
	if err := h.images.DeleteImage(c.Request.Context(), draft.ImagePath); err != nil {
		log.Printf("[RecipeHandler] failed to delete draft image %s: %v", draft.ImagePath, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Recipe submitted successfully!",
		"recipeId": recipe.ID.String(),
		"imageUrl": finalImageURL,
	})
}

// parseSubmittedIngredients validates the JSON-encoded ingredient list: a
// non-empty array whose entries all carry a name and quantity.
func parseSubmittedIngredients(raw string) ([]types.SubmittedIngredient, error) {
	var ingredients []types.SubmittedIngredient
	if err := json.Unmarshal([]byte(raw), &ingredients); err != nil {
		return nil, err
	}
	if len(ingredients) == 0 {
		return nil, errors.New("ingredients must be a non-empty array")
	}
	for _, ing := range ingredients {
		if ing.Name == "" || ing.Quantity == "" {
			return nil, errors.New("each ingredient must have a name and quantity")
		}
	}
	return ingredients, nil
}
