package api

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yumcart/backend/internal/service"
	"github.com/yumcart/backend/internal/types"
)

const maxImageSize = 5 * 1024 * 1024 // 5MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// GenerateRecipe accepts a recipe name, brief ingredient text and a photo,
// runs the analysis, stores the image and a time-limited draft, and returns
// the draft for editing.
func (h *RecipeHandler) GenerateRecipe(c *gin.Context) {
	userID, userName, ok := currentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required.")
		return
	}
	if userName == "" {
		userName = "Anonymous Chef"
	}

	name := c.PostForm("name")
	briefDescription := c.PostForm("briefDescription")
	if name == "" || briefDescription == "" {
		respondError(c, http.StatusBadRequest, "MISSING_FIELDS", "Recipe name and brief description are required.")
		return
	}

	fileHeader, err := c.FormFile("recipeImage")
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_IMAGE", "Image file is required")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		respondError(c, http.StatusBadRequest, "INVALID_IMAGE", "Please upload a valid image file (JPG, PNG, GIF, WebP)")
		return
	}
	if fileHeader.Size > maxImageSize {
		respondError(c, http.StatusBadRequest, "INVALID_IMAGE", "Image file must be smaller than 5MB")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_IMAGE", "Image file is required")
		return
	}
	defer func() { _ = file.Close() }()

	imageData, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil || len(imageData) == 0 {
		respondError(c, http.StatusBadRequest, "INVALID_IMAGE", "Image file is required")
		return
	}
	if len(imageData) > maxImageSize {
		respondError(c, http.StatusBadRequest, "INVALID_IMAGE", "Image file must be smaller than 5MB")
		return
	}

	draftID := uuid.New().String()

	imagePath, imageURL, err := h.images.UploadDraftImage(
		c.Request.Context(), userID.String(), draftID, fileHeader.Filename, contentType, imageData, h.draftTTL)
	if err != nil {
		log.Printf("[RecipeHandler] draft image upload failed: %v", err)
		respondError(c, http.StatusInternalServerError, "SERVER_ERROR", "An internal server error occurred during recipe generation.")
		return
	}

	analysis, err := h.analyzer.Analyze(c.Request.Context(), name, briefDescription)
	if err != nil {
		log.Printf("[RecipeHandler] recipe analysis failed: %v", err)
		// The temp image has no draft pointing at it; remove it best-effort.
		if delErr := h.images.DeleteImage(c.Request.Context(), imagePath); delErr != nil {
			log.Printf("[RecipeHandler] orphan draft image cleanup failed: %v", delErr)
		}
		respondError(c, http.StatusInternalServerError, "SERVER_ERROR", "An internal server error occurred during recipe generation.")
		return
	}

	generatedRecipe := service.FormatRecipeText(name, analysis)
	extractedIngredients := service.ExtractIngredients(analysis)

	draft := &types.RecipeDraft{
		DraftID:              draftID,
		UserID:               userID.String(),
		UserName:             userName,
		RecipeName:           name,
		BriefDescription:     briefDescription,
		GeneratedRecipe:      generatedRecipe,
		ExtractedIngredients: extractedIngredients,
		ImageURL:             imageURL,
		ImagePath:            imagePath,
		Difficulty:           analysis.Difficulty,
	}

	if err := h.drafts.SaveDraft(c.Request.Context(), draft); err != nil {
		log.Printf("[RecipeHandler] failed to save draft: %v", err)
		respondError(c, http.StatusInternalServerError, "SERVER_ERROR", "An internal server error occurred during recipe generation.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"draftId":              draftID,
			"generatedRecipe":      generatedRecipe,
			"extractedIngredients": extractedIngredients,
			"imageUrl":             imageURL,
		},
		"message": "Recipe and ingredients generated and saved as draft!",
	})
}
