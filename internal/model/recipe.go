package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yumcart/backend/internal/types"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}
	return json.Unmarshal(asBytes(value), a)
}

// IngredientList stores the submitted ingredient rows as a JSONB document.
type IngredientList []types.SubmittedIngredient

// Value implements the driver.Valuer interface
func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *IngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientList{}
		return nil
	}
	return json.Unmarshal(asBytes(value), l)
}

func asBytes(value interface{}) []byte {
	switch v := value.(type) {
	case []byte:
		return v
	case string:
		return []byte(v)
	default:
		return nil
	}
}

// Recipe is the final record created exactly once per successful submit.
// This subsystem never mutates it afterward.
type Recipe struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	DeletedAt        gorm.DeletedAt   `gorm:"index" json:"-"`
	UserID           uuid.UUID        `gorm:"type:uuid;not null" json:"user_id"`
	UserName         string           `gorm:"size:255" json:"user_name"`
	RecipeName       string           `gorm:"size:255;not null" json:"recipe_name"`
	BriefIngredients string           `gorm:"type:text" json:"brief_ingredients"`
	FullRecipe       string           `gorm:"type:text" json:"full_recipe"`
	Ingredients      IngredientList   `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	ImageURL         string           `gorm:"size:512" json:"image_url"`
	Likes            int              `gorm:"not null;default:0" json:"likes"`
	Tags             JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	Difficulty       string           `gorm:"size:50" json:"difficulty"`
	OriginalDraftID  string           `gorm:"size:64" json:"original_draft_id"`
}
