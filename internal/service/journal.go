package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrypal/backend/internal/models"
)

// FavoriteRating is the rating that marks a journal entry as a favorite.
const FavoriteRating = 5

const (
	defaultJournalLimit = 50
	maxJournalLimit     = 200
)

// JournalService keeps each user's cooking journal. A user has at most one
// entry per recipe.
type JournalService struct {
	db      *gorm.DB
	catalog RecipeCatalog
	log     *zap.Logger
}

var _ IJournalService = (*JournalService)(nil)

func NewJournalService(db *gorm.DB, catalog RecipeCatalog, log *zap.Logger) *JournalService {
	return &JournalService{db: db, catalog: catalog, log: log}
}

// Save records a rating for a recipe. Saving a recipe that is already in the
// journal updates the existing entry.
func (s *JournalService) Save(ctx context.Context, userID, recipeID uuid.UUID, rating int, notes string) (*models.JournalEntry, error) {
	if !validRating(rating) {
		return nil, ErrInvalidRating
	}
	recipe, err := s.catalog.Get(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	var entry models.JournalEntry
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&entry).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			entry = models.JournalEntry{
				UserID:         userID,
				RecipeID:       recipe.ID,
				RecipeTitle:    recipe.Title,
				RecipeImage:    recipe.ImageURL,
				RecipeCookTime: recipe.CookTime,
				RecipeServings: recipe.Servings,
				Rating:         rating,
				Notes:          strings.TrimSpace(notes),
			}
			return tx.Create(&entry).Error
		case err != nil:
			return err
		}

		entry.Rating = rating
		entry.Notes = strings.TrimSpace(notes)
		return tx.Model(&entry).Updates(map[string]interface{}{
			"rating": entry.Rating,
			"notes":  entry.Notes,
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.log.Info("Journal entry saved",
		zap.String("user_id", userID.String()),
		zap.String("recipe_id", recipeID.String()),
		zap.Int("rating", rating))
	return &entry, nil
}

// List returns the user's entries, most recently updated first.
func (s *JournalService) List(ctx context.Context, userID uuid.UUID, filters models.JournalFilters) ([]models.JournalEntry, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = defaultJournalLimit
	}
	if limit > maxJournalLimit {
		limit = maxJournalLimit
	}

	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if filters.FavoritesOnly {
		query = query.Where("rating = ?", FavoriteRating)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	entries := []models.JournalEntry{}
	if err := query.Order("updated_at DESC").Order("id").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}

// Get returns one entry. Entries of other users are reported as not found.
func (s *JournalService) Get(ctx context.Context, userID, id uuid.UUID) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJournalEntryNotFound
		}
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}
	return &entry, nil
}

// Update changes the rating or notes of an entry. Nil fields are left alone.
func (s *JournalService) Update(ctx context.Context, userID, id uuid.UUID, rating *int, notes *string) (*models.JournalEntry, error) {
	if rating != nil && !validRating(*rating) {
		return nil, ErrInvalidRating
	}
	entry, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if rating != nil {
		updates["rating"] = *rating
	}
	if notes != nil {
		updates["notes"] = strings.TrimSpace(*notes)
	}
	if len(updates) == 0 {
		return entry, nil
	}
	if err := s.db.WithContext(ctx).Model(entry).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}
	return s.Get(ctx, userID, id)
}

// RecordCooked bumps the cooked counter of an entry.
func (s *JournalService) RecordCooked(ctx context.Context, userID, id uuid.UUID) (*models.JournalEntry, error) {
	res := s.db.WithContext(ctx).Model(&models.JournalEntry{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("cooked_count", gorm.Expr("cooked_count + ?", 1))
	if res.Error != nil {
		return nil, fmt.Errorf("failed to record cooked recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrJournalEntryNotFound
	}
	return s.Get(ctx, userID, id)
}

func (s *JournalService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.JournalEntry{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete journal entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrJournalEntryNotFound
	}
	return nil
}

// AttachPhoto records the photo URL of an entry.
func (s *JournalService) AttachPhoto(ctx context.Context, userID, id uuid.UUID, url string) (*models.JournalEntry, error) {
	res := s.db.WithContext(ctx).Model(&models.JournalEntry{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("photo_url", url)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to attach photo: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrJournalEntryNotFound
	}
	return s.Get(ctx, userID, id)
}

func validRating(r int) bool {
	return r >= 1 && r <= 5
}
