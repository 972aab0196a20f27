// Package shopping aggregates ingredient requirements into a shopping list.
package shopping

import (
	"sort"

	"github.com/pageza/pantrypal/backend/internal/measure"
	"github.com/pageza/pantrypal/backend/internal/types"
)

// Requirement is one ingredient need, already scaled to the planned servings.
type Requirement struct {
	Name     string
	Quantity measure.Quantity
}

// Item is one line of the exported list.
type Item struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit,omitempty"`
}

// String renders the line as "Tomatoes: 5".
func (i Item) String() string {
	if i.Quantity == "" {
		return i.Name
	}
	return i.Name + ": " + i.Quantity
}

type line struct {
	key  string
	name string
	qty  measure.Quantity
}

// Build deduplicates requirements by normalized ingredient name and sums
// quantities whose canonical units match. Quantities with a different unit or
// no numeric amount become separate lines for the same ingredient. The result
// is ordered alphabetically by ingredient, then unit.
func Build(reqs []Requirement) []Item {
	var lines []*line
	byKey := make(map[string][]*line)

	for _, r := range reqs {
		key := types.NormalizeIngredient(r.Name)
		if key == "" {
			continue
		}

		merged := false
		for _, l := range byKey[key] {
			if sum, ok := l.qty.Add(r.Quantity); ok {
				l.qty = sum
				merged = true
				break
			}
		}
		if merged {
			continue
		}

		l := &line{key: key, name: r.Name, qty: r.Quantity}
		lines = append(lines, l)
		byKey[key] = append(byKey[key], l)
	}

	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].key != lines[j].key {
			return lines[i].key < lines[j].key
		}
		return lines[i].qty.Unit < lines[j].qty.Unit
	})

	items := make([]Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, Item{
			Name:     l.name,
			Quantity: l.qty.String(),
			Unit:     l.qty.Unit,
		})
	}
	return items
}
