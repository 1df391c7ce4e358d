package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yumcart/backend/internal/service"
)

// SearchIngredients proxies ingredient searches to the upstream API so the
// credential never reaches untrusted callers. The upstream JSON is returned
// verbatim.
func (h *RecipeHandler) SearchIngredients(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter is required"})
		return
	}

	number := 5
	if raw := c.Query("number"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			number = parsed
		}
	}

	body, err := h.search.SearchRaw(c.Request.Context(), query, number)
	if err != nil {
		if errors.Is(err, service.ErrNoAPIKey) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Spoonacular API key is not configured"})
			return
		}
		log.Printf("[RecipeHandler] ingredient search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ingredient data"})
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}
