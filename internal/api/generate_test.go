package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postGenerate(t *testing.T, env *testEnv, token, name, brief, imageType string, imageData []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := generateForm(t, name, brief, imageType, imageData)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes/generate", body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	return w
}

func TestGenerateRecipe(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	token := env.token(t, userID, "chef")

	w := postGenerate(t, env, token, "Tomato Soup", "2 cups tomato, salt", "image/jpeg", []byte("fake-jpeg"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			DraftID              string `json:"draftId"`
			GeneratedRecipe      string `json:"generatedRecipe"`
			ExtractedIngredients []struct {
				Name     string `json:"name"`
				Quantity string `json:"quantity"`
			} `json:"extractedIngredients"`
			ImageURL string `json:"imageUrl"`
		} `json:"data"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.DraftID)
	assert.Contains(t, resp.Data.GeneratedRecipe, "# Tomato Soup")
	require.Len(t, resp.Data.ExtractedIngredients, 2)
	assert.Equal(t, "tomato", resp.Data.ExtractedIngredients[0].Name)
	assert.Equal(t, "2 cup", resp.Data.ExtractedIngredients[0].Quantity)
	assert.Equal(t, "https://signed.example.com/"+resp.Data.DraftID, resp.Data.ImageURL)

	require.NotNil(t, env.drafts.saved)
	assert.Equal(t, resp.Data.DraftID, env.drafts.saved.DraftID)
	assert.Equal(t, userID.String(), env.drafts.saved.UserID)
	assert.Equal(t, "chef", env.drafts.saved.UserName)
	assert.Equal(t, "Easy", env.drafts.saved.Difficulty)
	assert.NotEmpty(t, env.drafts.saved.ImagePath)
}

func TestGenerateRecipeRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	w := postGenerate(t, env, "", "Tomato Soup", "tomato", "image/jpeg", []byte("x"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestGenerateRecipeMissingFields(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, uuid.New(), "chef")

	w := postGenerate(t, env, token, "", "tomato", "image/jpeg", []byte("x"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_FIELDS")

	w = postGenerate(t, env, token, "Soup", "", "image/jpeg", []byte("x"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_FIELDS")
}

func TestGenerateRecipeInvalidImage(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, uuid.New(), "chef")

	// No image part at all.
	w := postGenerate(t, env, token, "Soup", "tomato", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_IMAGE")

	// Wrong content type.
	w = postGenerate(t, env, token, "Soup", "tomato", "application/pdf", []byte("x"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_IMAGE")
}

func TestGenerateRecipeAnalysisFailureCleansUpImage(t *testing.T) {
	env := newTestEnv(t)
	env.analyzer.err = errors.New("model unavailable")
	token := env.token(t, uuid.New(), "chef")

	w := postGenerate(t, env, token, "Soup", "tomato", "image/jpeg", []byte("x"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SERVER_ERROR")

	// The uploaded temp image no longer has a draft pointing at it.
	require.Len(t, env.images.uploaded, 1)
	assert.Equal(t, env.images.uploaded, env.images.deleted)
	assert.Nil(t, env.drafts.saved)
}

func TestGenerateRecipeUploadFailure(t *testing.T) {
	env := newTestEnv(t)
	env.images.uploadErr = errors.New("s3 down")
	token := env.token(t, uuid.New(), "chef")

	w := postGenerate(t, env, token, "Soup", "tomato", "image/jpeg", []byte("x"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SERVER_ERROR")
}

func TestGenerateRecipeAnonymousUserName(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, uuid.New(), "")

	w := postGenerate(t, env, token, "Soup", "tomato", "image/jpeg", []byte("x"))
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.drafts.saved)
	assert.Equal(t, "Anonymous Chef", env.drafts.saved.UserName)
}
