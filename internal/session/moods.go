package session

import (
	"errors"

	"github.com/pageza/pantrypal/backend/internal/types"
)

// ErrUnknownMood is returned when toggling a tag outside the mood vocabulary.
var ErrUnknownMood = errors.New("unknown mood tag")

// MoodFilterSet holds the active mood filters. Empty means no filtering.
type MoodFilterSet struct {
	active map[types.MoodTag]bool
}

// Toggle adds an absent tag or removes a present one.
func (m *MoodFilterSet) Toggle(tag types.MoodTag) error {
	if _, ok := types.ParseMoodTag(string(tag)); !ok {
		return ErrUnknownMood
	}
	if m.active == nil {
		m.active = make(map[types.MoodTag]bool)
	}
	if m.active[tag] {
		delete(m.active, tag)
	} else {
		m.active[tag] = true
	}
	return nil
}

func (m *MoodFilterSet) Has(tag types.MoodTag) bool {
	return m.active[tag]
}

// Active lists the selected tags in vocabulary order.
func (m *MoodFilterSet) Active() []types.MoodTag {
	tags := []types.MoodTag{}
	for _, tag := range types.AllMoods {
		if m.active[tag] {
			tags = append(tags, tag)
		}
	}
	return tags
}

func (m *MoodFilterSet) set(tags []types.MoodTag) {
	m.active = make(map[types.MoodTag]bool, len(tags))
	for _, tag := range tags {
		if _, ok := types.ParseMoodTag(string(tag)); ok {
			m.active[tag] = true
		}
	}
}
