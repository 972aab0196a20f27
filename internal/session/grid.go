package session

import (
	"errors"

	"github.com/google/uuid"

	"github.com/pageza/pantrypal/backend/internal/measure"
	"github.com/pageza/pantrypal/backend/internal/models"
	"github.com/pageza/pantrypal/backend/internal/shopping"
	"github.com/pageza/pantrypal/backend/internal/types"
)

// ErrInvalidSlot is returned for a day or meal type outside the grid.
var ErrInvalidSlot = errors.New("invalid meal slot")

// PlannedMeal is the occupant of a meal slot.
type PlannedMeal struct {
	Recipe   types.RecipeSummary `json:"recipe"`
	Servings int                 `json:"servings"`
}

// Slot is a read-only view of one grid cell. Planned is nil when empty.
type Slot struct {
	Day     types.Day      `json:"day"`
	Meal    types.MealType `json:"meal"`
	Planned *PlannedMeal   `json:"planned"`
}

// RecipeLookup resolves a planned recipe to its catalog entry.
type RecipeLookup func(id uuid.UUID) (*models.Recipe, bool)

// MealPlanGrid is the fixed 7x3 week table. All 21 slots always exist.
type MealPlanGrid struct {
	cells [types.DaysPerWeek][types.MealsPerDay]*PlannedMeal
}

// Assign puts a recipe in the slot, replacing any occupant. Non-positive
// servings fall back to the recipe's own servings; large ones are capped at
// types.MaxServings.
func (g *MealPlanGrid) Assign(day types.Day, meal types.MealType, recipe types.RecipeSummary, servings int) error {
	if !day.Valid() || !meal.Valid() {
		return ErrInvalidSlot
	}
	servings = types.ClampServings(servings, recipe.Servings)
	g.cells[day][meal] = &PlannedMeal{Recipe: recipe, Servings: servings}
	return nil
}

// Clear empties the slot and reports whether it was occupied.
func (g *MealPlanGrid) Clear(day types.Day, meal types.MealType) (bool, error) {
	if !day.Valid() || !meal.Valid() {
		return false, ErrInvalidSlot
	}
	had := g.cells[day][meal] != nil
	g.cells[day][meal] = nil
	return had, nil
}

// Get returns a copy of the slot occupant, nil when empty.
func (g *MealPlanGrid) Get(day types.Day, meal types.MealType) (*PlannedMeal, error) {
	if !day.Valid() || !meal.Valid() {
		return nil, ErrInvalidSlot
	}
	return copyMeal(g.cells[day][meal]), nil
}

// Slots lists every cell, Monday breakfast first.
func (g *MealPlanGrid) Slots() []Slot {
	slots := make([]Slot, 0, types.DaysPerWeek*types.MealsPerDay)
	for d := 0; d < types.DaysPerWeek; d++ {
		for m := 0; m < types.MealsPerDay; m++ {
			slots = append(slots, Slot{
				Day:     types.Day(d),
				Meal:    types.MealType(m),
				Planned: copyMeal(g.cells[d][m]),
			})
		}
	}
	return slots
}

// ExportShoppingList gathers the ingredients of every occupied slot, scaled
// from the recipe's base servings to the planned servings. Recipes the lookup
// cannot find are skipped.
func (g *MealPlanGrid) ExportShoppingList(lookup RecipeLookup) []shopping.Item {
	var reqs []shopping.Requirement
	for _, slot := range g.Slots() {
		if slot.Planned == nil {
			continue
		}
		recipe, ok := lookup(slot.Planned.Recipe.ID)
		if !ok {
			continue
		}
		ratio := 1.0
		if recipe.Servings > 0 {
			ratio = float64(slot.Planned.Servings) / float64(recipe.Servings)
		}
		for _, ing := range recipe.Ingredients {
			reqs = append(reqs, shopping.Requirement{
				Name:     ing.Name,
				Quantity: measure.Parse(ing.Quantity).Scale(ratio),
			})
		}
	}
	return shopping.Build(reqs)
}

func copyMeal(p *PlannedMeal) *PlannedMeal {
	if p == nil {
		return nil
	}
	c := *p
	if p.Recipe.Tags != nil {
		c.Recipe.Tags = append([]types.MoodTag(nil), p.Recipe.Tags...)
	}
	return &c
}
