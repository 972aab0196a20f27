package types

import (
	"strings"
)

// MoodTag is a coarse recipe category used to filter recommendations.
type MoodTag string

const (
	MoodQuick      MoodTag = "quick"
	MoodHealthy    MoodTag = "healthy"
	MoodComfort    MoodTag = "comfort"
	MoodSpicy      MoodTag = "spicy"
	MoodVegetarian MoodTag = "vegetarian"
	MoodSweet      MoodTag = "sweet"
)

// AllMoods lists every mood tag in display order.
var AllMoods = []MoodTag{
	MoodQuick,
	MoodHealthy,
	MoodComfort,
	MoodSpicy,
	MoodVegetarian,
	MoodSweet,
}

// ParseMoodTag maps free text onto a known tag.
func ParseMoodTag(s string) (MoodTag, bool) {
	tag := MoodTag(strings.ToLower(strings.TrimSpace(s)))
	for _, m := range AllMoods {
		if m == tag {
			return m, true
		}
	}
	return "", false
}

// ParseMoodList parses a comma separated list. Unknown entries are dropped and
// duplicates collapse, so garbage input degrades to an empty filter.
func ParseMoodList(s string) []MoodTag {
	var tags []MoodTag
	seen := make(map[MoodTag]bool)
	for _, part := range strings.Split(s, ",") {
		tag, ok := ParseMoodTag(part)
		if !ok || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}
