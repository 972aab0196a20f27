package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JournalEntry is a user's saved record of a cooked recipe. Recipe fields are
// snapshotted so the journal still renders if the catalog changes.
type JournalEntry struct {
	ID             uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_journal_user_recipe" json:"user_id"`
	RecipeID       uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_journal_user_recipe" json:"recipe_id"`
	RecipeTitle    string    `gorm:"size:255;not null" json:"recipe_title"`
	RecipeImage    string    `gorm:"size:255" json:"recipe_image"`
	RecipeCookTime int       `json:"recipe_cook_time"`
	RecipeServings int       `json:"recipe_servings"`
	Rating         int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Notes          string    `gorm:"type:text" json:"notes"`
	PhotoURL       string    `gorm:"size:512" json:"photo_url,omitempty"`
	CookedCount    int       `gorm:"not null;default:0" json:"cooked_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName returns the table name for the JournalEntry model
func (JournalEntry) TableName() string {
	return "journal_entries"
}

func (e *JournalEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// JournalFilters narrows a journal listing.
type JournalFilters struct {
	FavoritesOnly bool
	Limit         int
	Offset        int
}
