package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pageza/pantrypal/backend/internal/types"
)

// State is the persisted form of a session, one JSON payload per kind.
// Missing payloads restore as empty state.
type State struct {
	Revision int64
	Pantry   []byte
	Moods    []byte
	Plan     []byte
}

// Document encodes the current state of one kind along with the revision it
// was taken at.
func (s *Session) Document(kind EventKind) ([]byte, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var v interface{}
	switch kind {
	case EventPantry:
		v = s.pantry.Items()
	case EventMoods:
		v = s.moods.Active()
	case EventPlan:
		occupied := []Slot{}
		for _, slot := range s.grid.Slots() {
			if slot.Planned != nil {
				occupied = append(occupied, slot)
			}
		}
		v = occupied
	default:
		return nil, 0, fmt.Errorf("unknown document kind %q", kind)
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to encode %s document: %w", kind, err)
	}
	return payload, s.revision, nil
}

// Restore replaces the session state with a persisted one. No events are
// emitted. Each kind is decoded on its own: a kind that fails to decode
// restores empty and is reported in the returned error, the others are
// restored regardless. Plan slots that fail validation are dropped.
func (s *Session) Restore(st State) error {
	var errs []error

	var pantry IngredientStore
	if len(st.Pantry) > 0 {
		var items []string
		if err := json.Unmarshal(st.Pantry, &items); err != nil {
			errs = append(errs, fmt.Errorf("failed to decode pantry document: %w", err))
			items = nil
		}
		for _, item := range items {
			pantry.Add(item)
		}
	}

	var moods MoodFilterSet
	if len(st.Moods) > 0 {
		var tags []types.MoodTag
		if err := json.Unmarshal(st.Moods, &tags); err != nil {
			errs = append(errs, fmt.Errorf("failed to decode moods document: %w", err))
		} else {
			moods.set(tags)
		}
	}

	var grid MealPlanGrid
	if len(st.Plan) > 0 {
		var slots []Slot
		if err := json.Unmarshal(st.Plan, &slots); err != nil {
			errs = append(errs, fmt.Errorf("failed to decode plan document: %w", err))
			slots = nil
		}
		for _, slot := range slots {
			if slot.Planned == nil {
				continue
			}
			if err := grid.Assign(slot.Day, slot.Meal, slot.Planned.Recipe, slot.Planned.Servings); err != nil {
				errs = append(errs, fmt.Errorf("dropped plan slot: %w", err))
			}
		}
	}

	s.dispatch.Lock()
	defer s.dispatch.Unlock()
	s.mu.Lock()
	s.pantry = pantry
	s.moods = moods
	s.grid = grid
	s.revision = st.Revision
	s.mu.Unlock()
	return errors.Join(errs...)
}
