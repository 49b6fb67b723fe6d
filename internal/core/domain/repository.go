package domain

import (
	"context"
)

// HabitsRepository is the habit contract seen by the use-case layer. Every
// method is one logical remote transaction and reports failures through the
// Result, never through a panic.
type HabitsRepository interface {
	// GetHabits lists the current user's habits. An empty list is a success.
	GetHabits(ctx context.Context) Result[Habits]

	// CreateHabit persists a new habit and returns the server-assigned id.
	CreateHabit(ctx context.Context, habit Habit) Result[string]

	// UpdateHabit overwrites the stored habit with the given one.
	UpdateHabit(ctx context.Context, habit Habit) Result[string]

	// HabitDone increments TotalCount by one and returns the stored habit.
	HabitDone(ctx context.Context, habitID string) Result[Habit]

	// DeleteHabit removes the habit document.
	DeleteHabit(ctx context.Context, habitID string) Result[string]

	// GetHabitDetails reads a single habit.
	GetHabitDetails(ctx context.Context, habitID string) Result[Habit]
}

type PostsRepository interface {
	// GetPosts lists every post with author names and like fields derived.
	GetPosts(ctx context.Context) Result[Posts]

	// CreatePost stores a post attributed to the current user.
	CreatePost(ctx context.Context, post Post) Result[string]

	// LikePost toggles the current user's like and returns the stored post.
	LikePost(ctx context.Context, postID string) Result[Post]

	// DeletePost removes a post owned by the current user.
	DeletePost(ctx context.Context, postID string) Result[string]
}

type UserRepository interface {
	SignIn(ctx context.Context, email, password string) Result[Session]

	// SignUp registers credentials and mirrors the account record; returns the user id.
	SignUp(ctx context.Context, email, password, name string) Result[string]

	Logout(ctx context.Context) Result[struct{}]

	// CurrentUser hydrates the signed-in user's profile.
	CurrentUser(ctx context.Context) Result[User]
}

// ImageUploader pushes image bytes to the media host and returns a public URL.
type ImageUploader interface {
	Upload(ctx context.Context, data []byte) (string, error)
}
