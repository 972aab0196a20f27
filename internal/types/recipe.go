package types

import (
	"github.com/google/uuid"
)

// RecipeSummary is the card-level view of a catalog recipe. MatchPercentage is
// computed against a pantry when the summary is produced and never stored.
type RecipeSummary struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Image           string    `json:"image"`
	CookTime        int       `json:"cook_time"`
	Servings        int       `json:"servings"`
	Calories        int       `json:"calories"`
	Tags            []MoodTag `json:"tags,omitempty"`
	MatchPercentage int       `json:"match_percentage"`
}

// DetailIngredient is one ingredient line of a resolved recipe.
type DetailIngredient struct {
	Name      string `json:"name"`
	Quantity  string `json:"quantity"`
	Available bool   `json:"available"`
}

// Nutrient is a display-ready nutrition value such as {"Protein", "18g"}.
type Nutrient struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// RecipeDetail is a summary expanded for the detail view, scaled to the
// requested servings and checked against a pantry snapshot.
type RecipeDetail struct {
	RecipeSummary
	BaseServings int                `json:"base_servings"`
	Ingredients  []DetailIngredient `json:"ingredients"`
	Steps        []string           `json:"steps"`
	Nutrition    []Nutrient         `json:"nutrition"`
	Missing      []string           `json:"missing"`
	SpiceLevel   int                `json:"spice_level"`
	SpiceLabel   string             `json:"spice_label"`
}

// Spice levels offered by the detail customization panel.
const (
	SpiceMild = iota
	SpiceMedium
	SpiceHot
)

var spiceLabels = [...]string{"Mild", "Medium", "Hot"}

// ClampSpice forces a spice level into the supported range.
func ClampSpice(level int) int {
	if level < SpiceMild {
		return SpiceMild
	}
	if level > SpiceHot {
		return SpiceHot
	}
	return level
}

// SpiceLabel names a spice level after clamping it.
func SpiceLabel(level int) string {
	return spiceLabels[ClampSpice(level)]
}

// MaxServings caps requested servings for scaling and planning.
const MaxServings = 100

// ClampServings resolves a requested serving count against a recipe's base
// servings. Non-positive requests mean base; larger ones are capped at
// MaxServings.
func ClampServings(requested, base int) int {
	if base < 1 {
		base = 1
	}
	if requested <= 0 {
		requested = base
	}
	if requested > MaxServings {
		return MaxServings
	}
	return requested
}
