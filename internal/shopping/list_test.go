package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/pantrypal/backend/internal/measure"
)

func req(name, qty string) Requirement {
	return Requirement{Name: name, Quantity: measure.Parse(qty)}
}

func TestBuildSumsMatchingUnits(t *testing.T) {
	items := Build([]Requirement{req("Tomatoes", "2"), req("tomatoes", "3")})

	require.Len(t, items, 1)
	assert.Equal(t, "Tomatoes: 5", items[0].String())
}

func TestBuildKeepsIncompatibleUnitsApart(t *testing.T) {
	items := Build([]Requirement{
		req("Parmesan", "1/2 cup"),
		req("Parmesan", "50 g"),
		req("Parmesan", "1/4 cup"),
		req("Salt", "to taste"),
		req("salt", "to taste"),
	})

	var lines []string
	for _, i := range items {
		lines = append(lines, i.String())
	}
	assert.Equal(t, []string{
		"Parmesan: 0.8 cup",
		"Parmesan: 50 g",
		"Salt: to taste",
		"salt: to taste",
	}, lines)
}

func TestBuildAlphabetical(t *testing.T) {
	items := Build([]Requirement{
		req("Zucchini", "1"),
		req("basil", "1 bunch"),
		req("Garlic", "3 cloves"),
		req("Avocado", "2"),
	})

	var names []string
	for _, i := range items {
		names = append(names, i.Name)
	}
	assert.Equal(t, []string{"Avocado", "basil", "Garlic", "Zucchini"}, names)
}

func TestBuildEmpty(t *testing.T) {
	assert.Empty(t, Build(nil))
	assert.Empty(t, Build([]Requirement{req("  ", "1")}))
}
