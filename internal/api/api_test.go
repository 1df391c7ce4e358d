package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yumcart/backend/internal/model"
	"github.com/yumcart/backend/internal/service"
	"github.com/yumcart/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAnalyzer struct {
	analysis *types.RecipeAnalysis
	err      error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _, _ string) (*types.RecipeAnalysis, error) {
	return f.analysis, f.err
}

type fakeDraftStore struct {
	drafts  map[string]*types.RecipeDraft
	saved   *types.RecipeDraft
	saveErr error
	deleted []string
}

func (f *fakeDraftStore) SaveDraft(_ context.Context, draft *types.RecipeDraft) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = draft
	return nil
}

func (f *fakeDraftStore) GetDraft(_ context.Context, id string) (*types.RecipeDraft, error) {
	if draft, ok := f.drafts[id]; ok {
		return draft, nil
	}
	return nil, service.ErrDraftNotFound
}

func (f *fakeDraftStore) DeleteDraft(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeImageStore struct {
	uploadErr  error
	promoteErr error
	uploaded   []string
	promoted   []string
	deleted    []string
}

func (f *fakeImageStore) UploadDraftImage(_ context.Context, userID, draftID, fileName, _ string, _ []byte, _ time.Duration) (string, string, error) {
	if f.uploadErr != nil {
		return "", "", f.uploadErr
	}
	path := "recipeDrafts/" + userID + "/" + draftID + "-" + fileName
	f.uploaded = append(f.uploaded, path)
	return path, "https://signed.example.com/" + draftID, nil
}

func (f *fakeImageStore) PromoteImage(_ context.Context, draftKey, userID, _ string) (string, string, error) {
	if f.promoteErr != nil {
		return "", "", f.promoteErr
	}
	f.promoted = append(f.promoted, draftKey)
	key := "recipeImages/" + userID + "/final.jpg"
	return key, "https://bucket.s3.amazonaws.com/" + key, nil
}

func (f *fakeImageStore) DeleteImage(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type fakeRecipeStore struct {
	created *model.Recipe
	err     error
}

func (f *fakeRecipeStore) CreateFromDraft(_ context.Context, draft *types.RecipeDraft, submitted service.SubmittedRecipe, imageURL string) (*model.Recipe, error) {
	if f.err != nil {
		return nil, f.err
	}
	userID, _ := uuid.Parse(draft.UserID)
	f.created = &model.Recipe{
		ID:          uuid.New(),
		UserID:      userID,
		RecipeName:  submitted.RecipeName,
		Ingredients: model.IngredientList(submitted.Ingredients),
		ImageURL:    imageURL,
	}
	return f.created, nil
}

type fakeSearcher struct {
	body []byte
	err  error
}

func (f *fakeSearcher) SearchRaw(_ context.Context, _ string, _ int) ([]byte, error) {
	return f.body, f.err
}

type testEnv struct {
	engine   *gin.Engine
	auth     *service.AuthService
	analyzer *fakeAnalyzer
	drafts   *fakeDraftStore
	images   *fakeImageStore
	recipes  *fakeRecipeStore
	search   *fakeSearcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		auth:     service.NewAuthService("test-secret"),
		analyzer: &fakeAnalyzer{analysis: testAnalysis()},
		drafts:   &fakeDraftStore{drafts: map[string]*types.RecipeDraft{}},
		images:   &fakeImageStore{},
		recipes:  &fakeRecipeStore{},
		search:   &fakeSearcher{body: []byte(`{"results":[]}`)},
	}

	handler := NewRecipeHandler(env.analyzer, env.drafts, env.images, env.recipes, env.search, env.auth, time.Hour)
	env.engine = gin.New()
	handler.RegisterRoutes(env.engine.Group("/api/v1"))
	return env
}

func (e *testEnv) token(t *testing.T, userID uuid.UUID, username string) string {
	t.Helper()
	token, err := e.auth.GenerateToken(userID, username)
	require.NoError(t, err)
	return token
}

func testAnalysis() *types.RecipeAnalysis {
	return &types.RecipeAnalysis{
		Ingredients: []types.Ingredient{
			{Name: "tomato", Quantity: "2", Unit: "cup", Category: "vegetable"},
			{Name: "salt", Quantity: "1", Unit: "unit", Category: "spice"},
		},
		ProductMatches: []types.ProductMatch{
			{ID: "p1", Name: "NoName Fresh Tomato", Price: "$2.49", ImageURL: "/img/tomato.jpg", Confidence: 0.9, Category: "vegetable"},
		},
		CookingTime:  "30 minutes",
		Difficulty:   "Easy",
		Cuisine:      "Italian",
		DietaryInfo:  []string{"vegetarian"},
		Instructions: []string{"Dice the tomatoes.", "Simmer and season."},
	}
}

// generateForm builds the multipart body for the generate endpoint. The image
// part is omitted when imageType is empty.
func generateForm(t *testing.T, name, briefDescription, imageType string, imageData []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if name != "" {
		require.NoError(t, writer.WriteField("name", name))
	}
	if briefDescription != "" {
		require.NoError(t, writer.WriteField("briefDescription", briefDescription))
	}
	if imageType != "" {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="recipeImage"; filename="photo.jpg"`)
		header.Set("Content-Type", imageType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(imageData)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}
