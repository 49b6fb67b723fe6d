package validation

import (
	"testing"

	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_HabitForm(t *testing.T) {
	v := New()

	t.Run("Success: Valid form builds a habit", func(t *testing.T) {
		form := HabitForm{Title: "Drink water", DaysOfWeek: []string{"monday", "WEDNESDAY"}, Goal: 8}
		require.NoError(t, v.Validate(form))

		h := form.Habit()
		assert.Equal(t, "Drink water", h.Title)
		assert.Equal(t, 8, h.Goal)
		assert.True(t, h.DaysOfWeek.Contains(domain.Monday))
		assert.True(t, h.DaysOfWeek.Contains(domain.Wednesday))
		assert.Empty(t, h.ID)
	})

	t.Run("Error: Empty title, no days and non-positive goal", func(t *testing.T) {
		err := v.Validate(HabitForm{})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)

		fields := Fields(err)
		assert.Equal(t, "is required", fields["title"])
		assert.Equal(t, "must contain at least 1 item(s)", fields["daysOfWeek"])
		assert.Equal(t, "must be greater than 0", fields["goal"])
	})

	t.Run("Error: Unknown weekday", func(t *testing.T) {
		err := v.Validate(HabitForm{Title: "Run", DaysOfWeek: []string{"FUNDAY"}, Goal: 3})
		require.Error(t, err)
		assert.Contains(t, Fields(err), "daysOfWeek[0]")
	})

	t.Run("Error: Repeated weekday", func(t *testing.T) {
		err := v.Validate(HabitForm{Title: "Run", DaysOfWeek: []string{"MONDAY", "MONDAY"}, Goal: 3})
		require.Error(t, err)
		assert.Equal(t, "must not repeat values", Fields(err)["daysOfWeek"])
	})
}

func TestValidator_AuthForms(t *testing.T) {
	v := New()

	t.Run("Success: Sign-up form", func(t *testing.T) {
		assert.NoError(t, v.Validate(SignUpForm{Email: "a@b.com", Password: "secret1", Name: "Ann"}))
	})

	t.Run("Error: Sign-up form reports every field", func(t *testing.T) {
		err := v.Validate(SignUpForm{Email: "nope", Password: "123"})
		require.Error(t, err)

		fields := Fields(err)
		assert.Equal(t, "must be a valid email address", fields["email"])
		assert.Equal(t, "must be at least 6 characters", fields["password"])
		assert.Equal(t, "is required", fields["name"])
		assert.Equal(t, "email must be a valid email address; name is required; password must be at least 6 characters", err.Error())
	})

	t.Run("Error: Sign-in requires a password", func(t *testing.T) {
		err := v.Validate(SignInForm{Email: "a@b.com"})
		assert.Equal(t, "is required", Fields(err)["password"])
	})
}

func TestValidator_PostForm(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(PostForm{Description: "Day 10!"}))

	err := v.Validate(PostForm{Description: "x", ImageURL: "not a url"})
	assert.Equal(t, "must be a valid URL", Fields(err)["imageUrl"])

	assert.Nil(t, Fields(nil))
}
