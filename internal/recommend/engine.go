// Package recommend ranks catalog recipes against a pantry and mood filter.
package recommend

import (
	"errors"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/pageza/pantrypal/backend/internal/models"
	"github.com/pageza/pantrypal/backend/internal/types"
)

// ErrInvalidRecipeData marks a catalog recipe that lists no ingredients.
var ErrInvalidRecipeData = errors.New("invalid recipe data: no ingredients")

// MatchPercentage is the rounded share of the recipe's ingredients found in
// the pantry, in [0, 100].
func MatchPercentage(recipe *models.Recipe, pantry types.IngredientSet) (int, error) {
	total := len(recipe.Ingredients)
	if total == 0 {
		return 0, ErrInvalidRecipeData
	}

	overlap := 0
	for _, ing := range recipe.Ingredients {
		if pantry.Has(ing.Name) {
			overlap++
		}
	}

	pct := int(math.Round(100 * float64(overlap) / float64(total)))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	// Rounding can reach 100 with one ingredient missing on very long lists.
	if pct == 100 && overlap < total {
		pct = 99
	}
	return pct, nil
}

// Engine recomputes rankings from scratch on every call. Catalogs are small
// (tens to low hundreds of recipes).
type Engine struct {
	log *zap.Logger
}

func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log}
}

// Rank scores the catalog, drops recipes outside the active moods (an empty
// mood set keeps everything) and orders by match descending, cook time
// ascending, then catalog order. catalog must already be in catalog order.
func (e *Engine) Rank(catalog []models.Recipe, pantry []string, moods []types.MoodTag) []types.RecipeSummary {
	set := types.NewIngredientSet(pantry)
	active := make(map[types.MoodTag]bool, len(moods))
	for _, m := range moods {
		active[m] = true
	}

	ranked := make([]types.RecipeSummary, 0, len(catalog))
	for i := range catalog {
		recipe := &catalog[i]

		pct, err := MatchPercentage(recipe, set)
		if err != nil {
			e.log.Warn("excluding recipe from ranking",
				zap.String("recipe_id", recipe.ID.String()),
				zap.String("title", recipe.Title),
				zap.Error(err))
			continue
		}

		if len(active) > 0 && !matchesMood(recipe, active) {
			continue
		}

		ranked = append(ranked, recipe.Summary(pct))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MatchPercentage != ranked[j].MatchPercentage {
			return ranked[i].MatchPercentage > ranked[j].MatchPercentage
		}
		return ranked[i].CookTime < ranked[j].CookTime
	})

	return ranked
}

func matchesMood(recipe *models.Recipe, active map[types.MoodTag]bool) bool {
	for _, tag := range recipe.MoodTags() {
		if active[tag] {
			return true
		}
	}
	return false
}
