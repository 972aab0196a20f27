package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/pantrypal/backend/internal/types"
)

// RecipeIngredient is one requirement of a catalog recipe, quantity as written
// for the recipe's base servings.
type RecipeIngredient struct {
	Name     string `json:"name" yaml:"name"`
	Quantity string `json:"quantity" yaml:"quantity"`
}

// NutritionFact is a nutrient amount for the recipe's base servings.
type NutritionFact struct {
	Label  string  `json:"label" yaml:"label"`
	Amount float64 `json:"amount" yaml:"amount"`
	Unit   string  `json:"unit,omitempty" yaml:"unit"`
}

// Recipe is an immutable catalog entry. Position preserves catalog insertion
// order, which is the final ranking tie-breaker.
type Recipe struct {
	ID          uuid.UUID                  `gorm:"type:varchar(36);primaryKey" json:"id"`
	Position    int                        `gorm:"not null;index" json:"position"`
	Title       string                     `gorm:"size:255;not null;uniqueIndex" json:"title"`
	ImageURL    string                     `gorm:"size:255" json:"image_url"`
	CookTime    int                        `gorm:"not null" json:"cook_time"`
	Servings    int                        `gorm:"not null;default:1" json:"servings"`
	Calories    int                        `gorm:"not null;default:0" json:"calories"`
	Tags        JSONBStringArray           `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	Ingredients JSONList[RecipeIngredient] `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Steps       JSONBStringArray           `gorm:"type:jsonb;not null;default:'[]'" json:"steps"`
	Nutrition   JSONList[NutritionFact]    `gorm:"type:jsonb;not null;default:'[]'" json:"nutrition"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// MoodTags returns the recipe tags that belong to the mood vocabulary.
func (r *Recipe) MoodTags() []types.MoodTag {
	var tags []types.MoodTag
	for _, t := range r.Tags {
		if tag, ok := types.ParseMoodTag(t); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Summary builds the card view with a precomputed match percentage.
func (r *Recipe) Summary(match int) types.RecipeSummary {
	return types.RecipeSummary{
		ID:              r.ID,
		Title:           r.Title,
		Image:           r.ImageURL,
		CookTime:        r.CookTime,
		Servings:        r.Servings,
		Calories:        r.Calories,
		Tags:            r.MoodTags(),
		MatchPercentage: match,
	}
}
