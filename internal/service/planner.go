package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pageza/pantrypal/backend/internal/session"
	"github.com/pageza/pantrypal/backend/internal/shopping"
	"github.com/pageza/pantrypal/backend/internal/types"
)

// PlannerService edits session meal plans against the catalog.
type PlannerService struct {
	catalog *CatalogService
}

var _ IPlannerService = (*PlannerService)(nil)

func NewPlannerService(catalog *CatalogService) *PlannerService {
	return &PlannerService{catalog: catalog}
}

// Assign places a catalog recipe into a slot. The stored summary carries no
// match percentage since the pantry may change after planning.
func (s *PlannerService) Assign(ctx context.Context, sess *session.Session, day types.Day, meal types.MealType, recipeID uuid.UUID, servings int) error {
	recipe, err := s.catalog.Get(ctx, recipeID)
	if err != nil {
		return err
	}
	return sess.AssignMeal(day, meal, recipe.Summary(0), servings)
}

func (s *PlannerService) Clear(_ context.Context, sess *session.Session, day types.Day, meal types.MealType) error {
	return sess.ClearMeal(day, meal)
}

// ShoppingList aggregates the ingredients of every planned meal.
func (s *PlannerService) ShoppingList(ctx context.Context, sess *session.Session) ([]shopping.Item, error) {
	lookup, err := s.catalog.Lookup(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build shopping list: %w", err)
	}
	return sess.ExportShoppingList(lookup), nil
}
