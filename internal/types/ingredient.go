package types

import "strings"

// NormalizeIngredient is the identity of an ingredient name: lower case with
// surrounding and repeated whitespace collapsed.
func NormalizeIngredient(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// IngredientSet indexes pantry entries by normalized name.
type IngredientSet map[string]struct{}

func NewIngredientSet(names []string) IngredientSet {
	set := make(IngredientSet, len(names))
	for _, n := range names {
		if key := NormalizeIngredient(n); key != "" {
			set[key] = struct{}{}
		}
	}
	return set
}

func (s IngredientSet) Has(name string) bool {
	_, ok := s[NormalizeIngredient(name)]
	return ok
}
