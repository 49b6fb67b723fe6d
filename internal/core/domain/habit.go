package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	DefaultGoal = 60
	MaxTitleLen = 100
)

type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

var weekdayOrder = map[Weekday]int{
	Monday: 0, Tuesday: 1, Wednesday: 2, Thursday: 3, Friday: 4, Saturday: 5, Sunday: 6,
}

// ParseWeekday accepts any casing of the weekday name.
func ParseWeekday(s string) (Weekday, error) {
	d := Weekday(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := weekdayOrder[d]; !ok {
		return "", fmt.Errorf("invalid weekday %q", s)
	}
	return d, nil
}

// WeekdayOf converts a time.Weekday.
func WeekdayOf(d time.Weekday) Weekday {
	switch d {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// WeekdaySet is an unordered set of weekdays. It is kept normalized (unique,
// Monday first) so two sets with the same members compare equal.
type WeekdaySet []Weekday

func NewWeekdaySet(days ...Weekday) WeekdaySet {
	return normalizeWeekdays(days)
}

func normalizeWeekdays(days []Weekday) WeekdaySet {
	if len(days) == 0 {
		return WeekdaySet{}
	}

	seen := make(map[Weekday]bool)
	unique := make(WeekdaySet, 0, len(days))
	for _, d := range days {
		if _, ok := weekdayOrder[d]; !ok || seen[d] {
			continue
		}
		seen[d] = true
		unique = append(unique, d)
	}

	sort.Slice(unique, func(i, j int) bool {
		return weekdayOrder[unique[i]] < weekdayOrder[unique[j]]
	})
	return unique
}

func (s WeekdaySet) Contains(d Weekday) bool {
	for _, x := range s {
		if x == d {
			return true
		}
	}
	return false
}

func (s *WeekdaySet) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	days := make([]Weekday, 0, len(raw))
	for _, r := range raw {
		d, err := ParseWeekday(r)
		if err != nil {
			return err
		}
		days = append(days, d)
	}
	*s = normalizeWeekdays(days)
	return nil
}

// Habit is a user-owned recurring task. ID is empty until the remote store
// assigns one on first write.
type Habit struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	DaysOfWeek   WeekdaySet `json:"daysOfWeek"`
	Goal         int        `json:"goal"`
	TotalCount   int        `json:"totalCount"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastModified time.Time  `json:"lastModified"`

	// Version is the stored document version this copy was read at, zero
	// when unknown. It is never persisted inside the document.
	Version int64 `json:"-"`
}

type Habits struct {
	Items []Habit `json:"items"`
}

// NewHabit builds an unsaved habit. A non-positive goal falls back to
// DefaultGoal.
func NewHabit(title string, days WeekdaySet, goal int) Habit {
	if goal <= 0 {
		goal = DefaultGoal
	}

	now := time.Now().UTC()
	return Habit{
		Title:        strings.TrimSpace(title),
		DaysOfWeek:   normalizeWeekdays(days),
		Goal:         goal,
		TotalCount:   0,
		CreatedAt:    now,
		LastModified: now,
	}
}

// MarkDone records one completion. LastModified never moves backwards.
func (h *Habit) MarkDone(now time.Time) {
	h.TotalCount++
	h.Touch(now)
}

// Touch stamps LastModified, keeping it monotonic.
func (h *Habit) Touch(now time.Time) {
	now = now.UTC()
	if now.After(h.LastModified) {
		h.LastModified = now
	}
}

// GoalReached is a display signal only; TotalCount may exceed Goal.
func (h Habit) GoalReached() bool {
	return h.Goal > 0 && h.TotalCount >= h.Goal
}

// Active reports whether the habit is scheduled on at least one day.
func (h Habit) Active() bool {
	return len(h.DaysOfWeek) > 0
}

// DoneOn reports whether the last completion falls on the calendar day of
// date in loc.
func (h Habit) DoneOn(date time.Time, loc *time.Location) bool {
	if h.TotalCount == 0 {
		return false
	}
	if loc == nil {
		loc = time.UTC
	}
	y1, m1, d1 := h.LastModified.In(loc).Date()
	y2, m2, d2 := date.In(loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Find returns the habit with the given id.
func (hs Habits) Find(id string) (Habit, bool) {
	for _, h := range hs.Items {
		if h.ID == id {
			return h, true
		}
	}
	return Habit{}, false
}

// Replace returns a copy of the collection with the habit of the same id
// swapped for h.
func (hs Habits) Replace(h Habit) Habits {
	items := make([]Habit, len(hs.Items))
	copy(items, hs.Items)
	for i := range items {
		if items[i].ID == h.ID {
			items[i] = h
		}
	}
	return Habits{Items: items}
}
