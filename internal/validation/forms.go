package validation

import (
	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
)

type HabitForm struct {
	Title      string   `json:"title" validate:"required,max=100"`
	DaysOfWeek []string `json:"daysOfWeek" validate:"min=1,unique,dive,weekday"`
	Goal       int      `json:"goal" validate:"gt=0"`
}

// Habit builds the domain value. Call it only after Validate succeeded.
func (f HabitForm) Habit() domain.Habit {
	days := make([]domain.Weekday, 0, len(f.DaysOfWeek))
	for _, raw := range f.DaysOfWeek {
		if d, err := domain.ParseWeekday(raw); err == nil {
			days = append(days, d)
		}
	}
	return domain.NewHabit(f.Title, domain.NewWeekdaySet(days...), f.Goal)
}

type PostForm struct {
	Description string `json:"description" validate:"required,max=2000"`
	HabitID     string `json:"habitId"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
}

type SignUpForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,max=50"`
}

type SignInForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
