// Package catalog reads recipe catalogs from YAML seed files.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/pageza/pantrypal/backend/internal/models"
	"github.com/pageza/pantrypal/backend/internal/types"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// ErrCorruptCatalog wraps every structural problem found in a seed file.
var ErrCorruptCatalog = errors.New("corrupt recipe catalog")

type file struct {
	Recipes []entry `yaml:"recipes"`
}

type entry struct {
	Title       string                    `yaml:"title"`
	Image       string                    `yaml:"image"`
	CookTime    int                       `yaml:"cook_time"`
	Servings    int                       `yaml:"servings"`
	Calories    int                       `yaml:"calories"`
	Tags        []string                  `yaml:"tags"`
	Ingredients []models.RecipeIngredient `yaml:"ingredients"`
	Steps       []string                  `yaml:"steps"`
	Nutrition   []models.NutritionFact    `yaml:"nutrition"`
}

// Default returns the built-in catalog.
func Default() ([]models.Recipe, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog file, or the built-in catalog when path is empty.
func Load(path string) ([]models.Recipe, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a catalog. Recipes keep their file order as Position.
// Recipes without ingredients are kept; ranking reports and skips them.
func Parse(data []byte) ([]models.Recipe, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCatalog, err)
	}

	recipes := make([]models.Recipe, 0, len(f.Recipes))
	seen := make(map[string]bool, len(f.Recipes))
	for i, e := range f.Recipes {
		title := strings.TrimSpace(e.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: recipe %d has no title", ErrCorruptCatalog, i+1)
		}
		key := strings.ToLower(title)
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate recipe %q", ErrCorruptCatalog, title)
		}
		seen[key] = true

		if e.Servings < 1 {
			return nil, fmt.Errorf("%w: recipe %q must serve at least one", ErrCorruptCatalog, title)
		}
		if e.CookTime < 0 || e.Calories < 0 {
			return nil, fmt.Errorf("%w: recipe %q has negative cook time or calories", ErrCorruptCatalog, title)
		}

		tags := make(models.JSONBStringArray, 0, len(e.Tags))
		for _, t := range e.Tags {
			tag, ok := types.ParseMoodTag(t)
			if !ok {
				return nil, fmt.Errorf("%w: recipe %q has unknown tag %q", ErrCorruptCatalog, title, t)
			}
			tags = append(tags, string(tag))
		}

		recipes = append(recipes, models.Recipe{
			Position:    i,
			Title:       title,
			ImageURL:    e.Image,
			CookTime:    e.CookTime,
			Servings:    e.Servings,
			Calories:    e.Calories,
			Tags:        tags,
			Ingredients: models.JSONList[models.RecipeIngredient](e.Ingredients),
			Steps:       models.JSONBStringArray(e.Steps),
			Nutrition:   models.JSONList[models.NutritionFact](e.Nutrition),
		})
	}
	return recipes, nil
}
