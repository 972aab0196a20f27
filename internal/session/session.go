// Package session holds the state one user works on: the pantry, the active
// mood filters and the weekly meal plan. A Session is the single owner of
// that state; readers get snapshots and observers get change events.
package session

import (
	"sort"
	"sync"

	"github.com/pageza/pantrypal/backend/internal/shopping"
	"github.com/pageza/pantrypal/backend/internal/types"
)

// EventKind names the piece of state that changed.
type EventKind string

const (
	EventPantry EventKind = "pantry"
	EventMoods  EventKind = "moods"
	EventPlan   EventKind = "plan"
)

// Event is delivered to subscribers after a mutation commits.
type Event struct {
	SessionKey string    `json:"session_key"`
	Kind       EventKind `json:"kind"`
	Revision   int64     `json:"revision"`
}

// Snapshot is an immutable copy of session state.
type Snapshot struct {
	Revision int64           `json:"revision"`
	Pantry   []string        `json:"pantry"`
	Moods    []types.MoodTag `json:"moods"`
	Plan     []Slot          `json:"plan"`
}

// Session serializes writers and hands out snapshots. Subscribers run
// synchronously, in revision order, after the state lock is released; they
// must not mutate the session.
type Session struct {
	key string

	mu       sync.Mutex
	pantry   IngredientStore
	moods    MoodFilterSet
	grid     MealPlanGrid
	revision int64

	// dispatch serializes writers so events are delivered in commit order.
	dispatch sync.Mutex

	subMu   sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

func New(key string) *Session {
	return &Session{key: key, subs: make(map[int]func(Event))}
}

func (s *Session) Key() string {
	return s.key
}

// Subscribe registers fn for every future event and returns its cancel func.
func (s *Session) Subscribe(fn func(Event)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// AddIngredient adds a pantry entry. Blank or duplicate names are ignored.
func (s *Session) AddIngredient(name string) bool {
	changed, _ := s.mutate(EventPantry, func() (bool, error) {
		return s.pantry.Add(name), nil
	})
	return changed
}

// RemoveIngredient drops the pantry entry at index. Out of range is ignored.
func (s *Session) RemoveIngredient(index int) bool {
	changed, _ := s.mutate(EventPantry, func() (bool, error) {
		return s.pantry.Remove(index), nil
	})
	return changed
}

// ToggleMood flips a mood filter.
func (s *Session) ToggleMood(tag types.MoodTag) error {
	_, err := s.mutate(EventMoods, func() (bool, error) {
		if err := s.moods.Toggle(tag); err != nil {
			return false, err
		}
		return true, nil
	})
	return err
}

// AssignMeal places a recipe in a slot, overwriting any occupant.
func (s *Session) AssignMeal(day types.Day, meal types.MealType, recipe types.RecipeSummary, servings int) error {
	_, err := s.mutate(EventPlan, func() (bool, error) {
		if err := s.grid.Assign(day, meal, recipe, servings); err != nil {
			return false, err
		}
		return true, nil
	})
	return err
}

// ClearMeal empties a slot. Clearing an empty slot changes nothing.
func (s *Session) ClearMeal(day types.Day, meal types.MealType) error {
	_, err := s.mutate(EventPlan, func() (bool, error) {
		return s.grid.Clear(day, meal)
	})
	return err
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Revision: s.revision,
		Pantry:   s.pantry.Items(),
		Moods:    s.moods.Active(),
		Plan:     s.grid.Slots(),
	}
}

// Revision is the number of committed changes since the session was created
// or restored.
func (s *Session) Revision() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// ExportShoppingList builds the shopping list for the current plan.
func (s *Session) ExportShoppingList(lookup RecipeLookup) []shopping.Item {
	s.mu.Lock()
	grid := s.grid
	s.mu.Unlock()
	return grid.ExportShoppingList(lookup)
}

// mutate runs fn under the state lock. When fn reports a change the revision
// is bumped and subscribers are notified before the next writer runs.
func (s *Session) mutate(kind EventKind, fn func() (bool, error)) (bool, error) {
	s.dispatch.Lock()
	defer s.dispatch.Unlock()

	s.mu.Lock()
	changed, err := fn()
	if err != nil || !changed {
		s.mu.Unlock()
		return false, err
	}
	s.revision++
	ev := Event{SessionKey: s.key, Kind: kind, Revision: s.revision}
	s.mu.Unlock()

	s.notify(ev)
	return true, nil
}

func (s *Session) notify(ev Event) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	fns := make([]func(Event), 0, len(ids))
	sort.Ints(ids)
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
