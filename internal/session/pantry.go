package session

import (
	"strings"

	"github.com/pageza/pantrypal/backend/internal/types"
)

// IngredientStore is the ordered pantry. No two entries normalize to the same
// name.
type IngredientStore struct {
	items []string
}

// Add appends a trimmed name unless it is blank or already present in any
// case. It reports whether the store changed.
func (s *IngredientStore) Add(name string) bool {
	name = strings.TrimSpace(name)
	key := types.NormalizeIngredient(name)
	if key == "" {
		return false
	}
	for _, existing := range s.items {
		if types.NormalizeIngredient(existing) == key {
			return false
		}
	}
	s.items = append(s.items, name)
	return true
}

// Remove drops the entry at index. Out of range is a no-op.
func (s *IngredientStore) Remove(index int) bool {
	if index < 0 || index >= len(s.items) {
		return false
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	return true
}

// Items returns a copy in insertion order.
func (s *IngredientStore) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

func (s *IngredientStore) Len() int {
	return len(s.items)
}
