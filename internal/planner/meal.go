// Package planner holds the weekly meal grid: which recipe is cooked on which day and meal
// slot, and for how many diners.
package planner

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultDiners is the diner count of a newly planned meal.
const DefaultDiners = 2

// WeekLayout is the date format used for week start keys.
const WeekLayout = "2006-01-02"

var (
	// ErrNotFound is returned when a planned meal does not exist.
	ErrNotFound = errors.New("planned meal not found")
	// ErrInvalid is returned when a planned meal fails validation.
	ErrInvalid = errors.New("invalid planned meal")
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

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (d Day) String() string {
	if d.Valid() {
		return dayNames[d]
	}
	return fmt.Sprintf("Day(%d)", int(d))
}

// Valid reports whether d is between Monday and Sunday.
func (d Day) Valid() bool { return d >= Monday && d <= Sunday }

// MarshalText encodes the day by name.
func (d Day) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: day %d out of range", ErrInvalid, int(d))
	}
	return []byte(dayNames[d]), nil
}

// UnmarshalText decodes a day name.
func (d *Day) UnmarshalText(b []byte) error {
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDay parses an English day name, ignoring case. Three-letter abbreviations are accepted.
func ParseDay(s string) (Day, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range dayNames {
		lower := strings.ToLower(name)
		if s == lower || s == lower[:3] {
			return Day(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown day %q", ErrInvalid, s)
}

// Slot is a meal slot within a day.
type Slot string

const (
	Breakfast Slot = "breakfast"
	Brunch    Slot = "brunch"
	Lunch     Slot = "lunch"
	Snack     Slot = "snack"
	Dinner    Slot = "dinner"
	Extra     Slot = "extra"
)

// Slots lists the meal slots in the order they happen during a day.
var Slots = []Slot{Breakfast, Brunch, Lunch, Snack, Dinner, Extra}

// Valid reports whether s is a known slot.
func (s Slot) Valid() bool {
	for _, slot := range Slots {
		if s == slot {
			return true
		}
	}
	return false
}

// Order returns the position of the slot within a day.
func (s Slot) Order() int {
	for i, slot := range Slots {
		if s == slot {
			return i
		}
	}
	return len(Slots)
}

// ParseSlot parses a slot name, ignoring case.
func ParseSlot(s string) (Slot, error) {
	slot := Slot(strings.ToLower(strings.TrimSpace(s)))
	if !slot.Valid() {
		return "", fmt.Errorf("%w: unknown slot %q", ErrInvalid, s)
	}
	return slot, nil
}

// PlannedMeal assigns a recipe to a day and slot of a user's week.
type PlannedMeal struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	WeekStart time.Time `json:"week_start"`
	Day       Day       `json:"day"`
	Slot      Slot      `json:"slot"`
	RecipeID  int64     `json:"recipe_id"`
	Diners    int       `json:"diners"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the fields a caller controls. Diners are not checked here: a non-positive
// count is stored and flagged when the shopping list is built.
func (m PlannedMeal) Validate() error {
	if !m.Day.Valid() {
		return fmt.Errorf("%w: day %d out of range", ErrInvalid, int(m.Day))
	}
	if !m.Slot.Valid() {
		return fmt.Errorf("%w: unknown slot %q", ErrInvalid, m.Slot)
	}
	if m.RecipeID <= 0 {
		return fmt.Errorf("%w: recipe id is required", ErrInvalid)
	}
	return nil
}

// WeekStart returns Monday 00:00 UTC of the week containing t.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, time.UTC)
}

// GetNextMonday returns Monday 00:00 UTC of the week after the one containing t.
func GetNextMonday(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 7)
}

// ParseWeek parses a YYYY-MM-DD date and returns the start of its week. An empty string means
// the current week.
func ParseWeek(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return WeekStart(now), nil
	}
	t, err := time.Parse(WeekLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: week must be YYYY-MM-DD: %v", ErrInvalid, err)
	}
	return WeekStart(t), nil
}

// WeekKey formats a week start for storage.
func WeekKey(weekStart time.Time) string {
	return WeekStart(weekStart).Format(WeekLayout)
}
