package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yumcart/backend/internal/middleware"
	"github.com/yumcart/backend/internal/model"
	"github.com/yumcart/backend/internal/service"
	"github.com/yumcart/backend/internal/types"
)

// RecipeAnalyzer produces the structured, image-enriched analysis for an
// uploaded recipe.
type RecipeAnalyzer interface {
	Analyze(ctx context.Context, recipeName, briefIngredients string) (*types.RecipeAnalysis, error)
}

// DraftStore is the draft document store used by the upload flow.
type DraftStore interface {
	SaveDraft(ctx context.Context, draft *types.RecipeDraft) error
	GetDraft(ctx context.Context, id string) (*types.RecipeDraft, error)
	DeleteDraft(ctx context.Context, id string) error
}

// ImageStore handles the temporary and permanent recipe image objects.
type ImageStore interface {
	UploadDraftImage(ctx context.Context, userID, draftID, fileName, contentType string, data []byte, urlTTL time.Duration) (string, string, error)
	PromoteImage(ctx context.Context, draftKey, userID, recipeName string) (string, string, error)
	DeleteImage(ctx context.Context, key string) error
}

// RecipeStore persists final recipe records.
type RecipeStore interface {
	CreateFromDraft(ctx context.Context, draft *types.RecipeDraft, submitted service.SubmittedRecipe, imageURL string) (*model.Recipe, error)
}

// IngredientSearcher proxies ingredient searches to the upstream API.
type IngredientSearcher interface {
	SearchRaw(ctx context.Context, query string, number int) ([]byte, error)
}

// RecipeHandler handles the recipe upload endpoints.
type RecipeHandler struct {
	analyzer RecipeAnalyzer
	drafts   DraftStore
	images   ImageStore
	recipes  RecipeStore
	search   IngredientSearcher
	auth     middleware.TokenValidator
	draftTTL time.Duration
}

func NewRecipeHandler(
	analyzer RecipeAnalyzer,
	drafts DraftStore,
	images ImageStore,
	recipes RecipeStore,
	search IngredientSearcher,
	auth middleware.TokenValidator,
	draftTTL time.Duration,
) *RecipeHandler {
	return &RecipeHandler{
		analyzer: analyzer,
		drafts:   drafts,
		images:   images,
		recipes:  recipes,
		search:   search,
		auth:     auth,
		draftTTL: draftTTL,
	}
}

// RegisterRoutes registers the upload flow and ingredient search routes.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ingredients/search", h.SearchIngredients)

	recipes := router.Group("/recipes")
	recipes.Use(middleware.AuthMiddleware(h.auth))
	{
		recipes.POST("/generate", h.GenerateRecipe)
		recipes.POST("/submit", h.SubmitRecipe)
	}
}

// respondError writes the structured error envelope shared by the upload
// endpoints.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   code,
		"message": message,
	})
}

// currentUser pulls the authenticated user out of the request context.
func currentUser(c *gin.Context) (uuid.UUID, string, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, "", false
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, "", false
	}
	username, _ := c.Get("username")
	name, _ := username.(string)
	return userID, name, true
}
