package types

import "time"

// DraftStatus value for stored drafts.
const StatusDraft = "draft"

// StoreProduct is the store product attached to an extracted ingredient when
// a product match was found for it.
type StoreProduct struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	ImageURL string `json:"imageUrl"`
}

// ExtractedIngredient is the editable ingredient row returned to the client
// after generation. Quantity is the combined "quantity unit" display string.
type ExtractedIngredient struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Quantity     string        `json:"quantity"`
	StoreProduct *StoreProduct `json:"storeProduct,omitempty"`
}

// RecipeDraft is the time-limited document written by the generate step and
// consumed exactly once: by the submit step on success, or by the cleanup
// sweeper after expiry.
type RecipeDraft struct {
	DraftID              string                `json:"draftId"`
	UserID               string                `json:"userId"`
	UserName             string                `json:"userName"`
	RecipeName           string                `json:"recipeName"`
	BriefDescription     string                `json:"briefDescription"`
	GeneratedRecipe      string                `json:"generatedRecipe"`
	ExtractedIngredients []ExtractedIngredient `json:"extractedIngredients"`
	ImageURL             string                `json:"imageUrl"`
	ImagePath            string                `json:"imagePath"`
	Difficulty           string                `json:"difficulty,omitempty"`
	Status               string                `json:"status"`
	CreatedAt            time.Time             `json:"createdAt"`
	ExpiresAt            time.Time             `json:"expiresAt"`
}

// Expired reports whether the draft's expiry has passed at the given time.
func (d *RecipeDraft) Expired(now time.Time) bool {
	return !d.ExpiresAt.After(now)
}

// SubmittedIngredient is one entry of the user-edited ingredient list sent to
// the submit endpoint.
type SubmittedIngredient struct {
	Name                 string `json:"name"`
	Quantity             string `json:"quantity"`
	StoreProductID       string `json:"storeProductId,omitempty"`
	StoreProductName     string `json:"storeProductName,omitempty"`
	StoreProductPrice    string `json:"storeProductPrice,omitempty"`
	StoreProductImageURL string `json:"storeProductImageUrl,omitempty"`
}
