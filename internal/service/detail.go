package service

import (
	"context"
	"errors"
	"math"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/pantrypal/backend/internal/measure"
	"github.com/pageza/pantrypal/backend/internal/recommend"
	"github.com/pageza/pantrypal/backend/internal/types"
)

// DetailService expands catalog recipes into detail views. Nothing it
// produces is stored: availability is computed from the pantry passed in.
type DetailService struct {
	catalog RecipeCatalog
	log     *zap.Logger
}

var _ IDetailService = (*DetailService)(nil)

func NewDetailService(catalog RecipeCatalog, log *zap.Logger) *DetailService {
	return &DetailService{catalog: catalog, log: log}
}

// Resolve builds the detail of a recipe for the requested servings and spice
// level, checked against the given pantry. Non-positive servings mean the
// recipe's own servings and servings above types.MaxServings are capped.
// Spice is clamped to the supported range.
func (s *DetailService) Resolve(ctx context.Context, id uuid.UUID, pantry []string, servings, spice int) (*types.RecipeDetail, error) {
	recipe, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	base := recipe.Servings
	if base < 1 {
		base = 1
	}
	servings = types.ClampServings(servings, base)
	ratio := float64(servings) / float64(base)

	have := types.NewIngredientSet(pantry)
	match, err := recommend.MatchPercentage(recipe, have)
	if err != nil && !errors.Is(err, recommend.ErrInvalidRecipeData) {
		return nil, err
	}

	summary := recipe.Summary(match)
	summary.Servings = servings
	summary.Calories = scaleInt(recipe.Calories, ratio)

	detail := &types.RecipeDetail{
		RecipeSummary: summary,
		BaseServings:  base,
		Ingredients:   make([]types.DetailIngredient, 0, len(recipe.Ingredients)),
		Steps:         append([]string{}, recipe.Steps...),
		Nutrition:     make([]types.Nutrient, 0, len(recipe.Nutrition)),
		Missing:       []string{},
		SpiceLevel:    types.ClampSpice(spice),
		SpiceLabel:    types.SpiceLabel(spice),
	}

	for _, ing := range recipe.Ingredients {
		available := have.Has(ing.Name)
		detail.Ingredients = append(detail.Ingredients, types.DetailIngredient{
			Name:      ing.Name,
			Quantity:  measure.Parse(ing.Quantity).Scale(ratio).String(),
			Available: available,
		})
		if !available {
			detail.Missing = append(detail.Missing, ing.Name)
		}
	}

	for _, n := range recipe.Nutrition {
		amount := int(math.Round(n.Amount * ratio))
		detail.Nutrition = append(detail.Nutrition, types.Nutrient{
			Label: n.Label,
			Value: strconv.Itoa(amount) + n.Unit,
		})
	}

	return detail, nil
}

func scaleInt(v int, ratio float64) int {
	return int(math.Round(float64(v) * ratio))
}
