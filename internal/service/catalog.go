package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrypal/backend/internal/models"
	"github.com/pageza/pantrypal/backend/internal/session"
)

// CatalogService serves the recipe catalog. Catalog entries are immutable
// between seeds, so the ordered list is kept in memory after the first read.
type CatalogService struct {
	db  *gorm.DB
	log *zap.Logger

	mu      sync.RWMutex
	recipes []models.Recipe
	byID    map[uuid.UUID]*models.Recipe
	onSeed  []func(ctx context.Context)
}

var _ RecipeCatalog = (*CatalogService)(nil)

// NewCatalogService creates a new CatalogService instance
func NewCatalogService(db *gorm.DB, log *zap.Logger) *CatalogService {
	return &CatalogService{db: db, log: log}
}

// OnSeed registers fn to run after every successful Seed. Register before
// serving; the list is not guarded against concurrent registration.
func (s *CatalogService) OnSeed(fn func(ctx context.Context)) {
	s.onSeed = append(s.onSeed, fn)
}

// List returns the catalog in insertion order.
func (s *CatalogService) List(ctx context.Context) ([]models.Recipe, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Recipe, len(s.recipes))
	copy(out, s.recipes)
	return out, nil
}

// Get retrieves a recipe by ID
func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byID[id]
	if !ok {
		return nil, ErrRecipeNotFound
	}
	c := *r
	return &c, nil
}

// Lookup adapts the catalog for shopping list export.
func (s *CatalogService) Lookup(ctx context.Context) (session.RecipeLookup, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	byID := s.byID
	s.mu.RUnlock()
	return func(id uuid.UUID) (*models.Recipe, bool) {
		r, ok := byID[id]
		return r, ok
	}, nil
}

// Count returns the number of stored recipes
func (s *CatalogService) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return n, nil
}

// Seed upserts recipes by title, keeping the ids of recipes already stored.
// It returns how many recipes were created.
func (s *CatalogService) Seed(ctx context.Context, recipes []models.Recipe) (int, error) {
	created := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range recipes {
			r := recipes[i]
			var existing models.Recipe
			err := tx.Where("title = ?", r.Title).First(&existing).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(&r).Error; err != nil {
					return fmt.Errorf("failed to create recipe %q: %w", r.Title, err)
				}
				created++
			case err != nil:
				return fmt.Errorf("failed to look up recipe %q: %w", r.Title, err)
			default:
				r.ID = existing.ID
				r.CreatedAt = existing.CreatedAt
				if err := tx.Save(&r).Error; err != nil {
					return fmt.Errorf("failed to update recipe %q: %w", r.Title, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.recipes = nil
	s.byID = nil
	s.mu.Unlock()

	for _, fn := range s.onSeed {
		fn(ctx)
	}

	s.log.Info("Catalog seeded", zap.Int("recipes", len(recipes)), zap.Int("created", created))
	return created, nil
}

func (s *CatalogService) ensureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.byID != nil
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Order("position ASC").Order("created_at ASC").Find(&recipes).Error; err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	byID := make(map[uuid.UUID]*models.Recipe, len(recipes))
	for i := range recipes {
		byID[recipes[i].ID] = &recipes[i]
	}

	s.mu.Lock()
	s.recipes = recipes
	s.byID = byID
	s.mu.Unlock()
	return nil
}
