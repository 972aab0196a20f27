package types

import (
	"fmt"
	"strings"
)

// Day is a day of the planning week, Monday first.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysPerWeek is the number of rows in the meal plan grid.
const DaysPerWeek = 7

var dayNames = [DaysPerWeek]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func (d Day) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Day) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// ParseDay accepts full names and three letter abbreviations, any case.
func ParseDay(s string) (Day, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for i, name := range dayNames {
		if v == name || (len(v) == 3 && strings.HasPrefix(name, v)) {
			return Day(i), nil
		}
	}
	return 0, fmt.Errorf("unknown day %q", s)
}

func (d Day) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid day %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(b []byte) error {
	v, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// MealType is a column of the meal plan grid.
type MealType int

const (
	Breakfast MealType = iota
	Lunch
	Dinner
)

// MealsPerDay is the number of columns in the meal plan grid.
const MealsPerDay = 3

var mealNames = [MealsPerDay]string{"breakfast", "lunch", "dinner"}

func (m MealType) Valid() bool {
	return m >= Breakfast && m <= Dinner
}

func (m MealType) String() string {
	if !m.Valid() {
		return fmt.Sprintf("MealType(%d)", int(m))
	}
	return mealNames[m]
}

func ParseMealType(s string) (MealType, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for i, name := range mealNames {
		if v == name {
			return MealType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown meal type %q", s)
}

func (m MealType) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid meal type %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *MealType) UnmarshalText(b []byte) error {
	v, err := ParseMealType(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
