package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/yumcart/backend/internal/types"
)

const analysisSystemPrompt = `You are an expert culinary AI assistant. Analyze the given ingredients and recipe name to:
1. For each ingredient, strictly extract:
   - name (e.g. 'mushroom spaghetti sauce')
   - quantity (e.g. '3')
   - unit (e.g. '12 ounce jars')
   - category (e.g. 'sauce')
   - description (e.g. 'A tomato-based sauce that includes mushrooms.')
2. For productMatches, ensure each ingredient matches to a unique, relevant product (no duplicates, no generic matches). If no match, leave blank. Use a placeholder image URL (e.g. '/placeholder.svg') if no real image is available.
3. Provide cooking time, difficulty, cuisine type, and dietary information.
4. Generate detailed, step-by-step cooking instructions for the recipe. Each step should be specific, actionable, and tailored to the ingredients and cuisine. Do not use generic phrases like 'prepare all ingredients' or 'follow standard procedures'.
5. Return the response as valid JSON with the following structure:
{
  "ingredients": [
    {
      "name": "...",
      "quantity": "...",
      "unit": "...",
      "category": "...",
      "description": "..."
    }
  ],
  "productMatches": [
    {
      "id": "...",
      "name": "...",
      "price": "...",
      "imageUrl": "...",
      "confidence": 0.95,
      "category": "..."
    }
  ],
  "cookingTime": "...",
  "difficulty": "...",
  "cuisine": "...",
  "dietaryInfo": ["..."],
  "instructions": ["Step 1...", "Step 2...", ...]
}`

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// completionRequest represents a request to the chat completions API
type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// completionResponse is the subset of the completions API response we read.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// LLMService analyzes a recipe's free-text ingredients via the chat
// completions API. It is the primary analysis path.
type LLMService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewLLMService creates a new LLMService instance. An empty apiKey is
// allowed: Analyze then fails with ErrUpstream instead of the process
// refusing to start.
func NewLLMService(apiKey, apiURL string) *LLMService {
	return &LLMService{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  "gpt-4",
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Analyze sends one completion request and parses the model's text output
// into a RecipeAnalysis. Call failures map to ErrUpstream, malformed model
// output to ErrParse; the caller decides whether to fall back.
func (s *LLMService) Analyze(ctx context.Context, recipeName, briefIngredients string) (*types.RecipeAnalysis, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrUpstream)
	}

	reqBody := completionRequest{
		Model: s.model,
		Messages: []Message{
			{Role: "system", Content: analysisSystemPrompt},
			{
				Role: "user",
				Content: fmt.Sprintf("Recipe: %s\nIngredients: %s\n\nPlease analyze and provide structured data with detailed, concrete, step-by-step instructions for this specific recipe. Strictly parse ingredient fields and ensure unique, relevant product matches.",
					recipeName, briefIngredients),
			},
		},
		Temperature: 0.3,
		MaxTokens:   1200,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[LLMService] API request failed with status %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var result completionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrUpstream, err)
	}

	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in API response", ErrUpstream)
	}

	content := result.Choices[0].Message.Content
	var analysis types.RecipeAnalysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		log.Printf("[LLMService] Unparseable model output: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if len(analysis.Ingredients) == 0 {
		return nil, fmt.Errorf("%w: response has no ingredients", ErrParse)
	}

	return &analysis, nil
}
