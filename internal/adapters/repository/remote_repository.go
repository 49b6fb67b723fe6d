package repository

import (
	"context"

	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
)

// HabitsRemote is the habit half of the remote document adapter.
type HabitsRemote interface {
	GetHabits(ctx context.Context) (domain.Habits, error)
	CreateHabit(ctx context.Context, habit domain.Habit) (domain.Habit, error)
	UpdateHabit(ctx context.Context, habit domain.Habit) (domain.Habit, error)
	HabitDone(ctx context.Context, habitID string) (domain.Habit, error)
	DeleteHabit(ctx context.Context, habitID string) error
	GetHabit(ctx context.Context, habitID string) (domain.Habit, error)
}

type PostsRemote interface {
	GetPosts(ctx context.Context) (domain.Posts, error)
	CreatePost(ctx context.Context, post domain.Post) (domain.Post, error)
	LikePost(ctx context.Context, postID string) (domain.Post, error)
	DeletePost(ctx context.Context, postID string) error
}

type UsersRemote interface {
	SignIn(ctx context.Context, email, password string) (domain.Session, error)
	SignUp(ctx context.Context, email, password, name string) (string, error)
	SignOut(ctx context.Context) error
	CurrentUser(ctx context.Context) (domain.User, error)
}

var (
	_ domain.HabitsRepository = (*RemoteHabitsRepository)(nil)
	_ domain.PostsRepository  = (*RemotePostsRepository)(nil)
	_ domain.UserRepository   = (*RemoteUserRepository)(nil)
)

type RemoteHabitsRepository struct {
	remote HabitsRemote
}

func NewRemoteHabitsRepository(remote HabitsRemote) *RemoteHabitsRepository {
	return &RemoteHabitsRepository{remote: remote}
}

func (r *RemoteHabitsRepository) GetHabits(ctx context.Context) domain.Result[domain.Habits] {
	return call(ctx, "get habits", func(ctx context.Context) (domain.Habits, error) {
		habits, err := r.remote.GetHabits(ctx)
		if habits.Items == nil {
			habits.Items = []domain.Habit{}
		}
		return habits, err
	})
}

func (r *RemoteHabitsRepository) CreateHabit(ctx context.Context, habit domain.Habit) domain.Result[string] {
	return call(ctx, "create habit", func(ctx context.Context) (string, error) {
		created, err := r.remote.CreateHabit(ctx, habit)
		return created.ID, err
	})
}

func (r *RemoteHabitsRepository) UpdateHabit(ctx context.Context, habit domain.Habit) domain.Result[string] {
	return call(ctx, "update habit", func(ctx context.Context) (string, error) {
		updated, err := r.remote.UpdateHabit(ctx, habit)
		return updated.ID, err
	})
}

func (r *RemoteHabitsRepository) HabitDone(ctx context.Context, habitID string) domain.Result[domain.Habit] {
	return call(ctx, "habit done", func(ctx context.Context) (domain.Habit, error) {
		return r.remote.HabitDone(ctx, habitID)
	})
}

func (r *RemoteHabitsRepository) DeleteHabit(ctx context.Context, habitID string) domain.Result[string] {
	return call(ctx, "delete habit", func(ctx context.Context) (string, error) {
		return habitID, r.remote.DeleteHabit(ctx, habitID)
	})
}

func (r *RemoteHabitsRepository) GetHabitDetails(ctx context.Context, habitID string) domain.Result[domain.Habit] {
	return call(ctx, "get habit details", func(ctx context.Context) (domain.Habit, error) {
		return r.remote.GetHabit(ctx, habitID)
	})
}

type RemotePostsRepository struct {
	remote PostsRemote
}

func NewRemotePostsRepository(remote PostsRemote) *RemotePostsRepository {
	return &RemotePostsRepository{remote: remote}
}

func (r *RemotePostsRepository) GetPosts(ctx context.Context) domain.Result[domain.Posts] {
	return call(ctx, "get posts", func(ctx context.Context) (domain.Posts, error) {
		posts, err := r.remote.GetPosts(ctx)
		if posts.Items == nil {
			posts.Items = []domain.Post{}
		}
		return posts, err
	})
}

func (r *RemotePostsRepository) CreatePost(ctx context.Context, post domain.Post) domain.Result[string] {
	return call(ctx, "create post", func(ctx context.Context) (string, error) {
		created, err := r.remote.CreatePost(ctx, post)
		return created.ID, err
	})
}

func (r *RemotePostsRepository) LikePost(ctx context.Context, postID string) domain.Result[domain.Post] {
	return call(ctx, "like post", func(ctx context.Context) (domain.Post, error) {
		return r.remote.LikePost(ctx, postID)
	})
}

func (r *RemotePostsRepository) DeletePost(ctx context.Context, postID string) domain.Result[string] {
	return call(ctx, "delete post", func(ctx context.Context) (string, error) {
		return postID, r.remote.DeletePost(ctx, postID)
	})
}

type RemoteUserRepository struct {
	remote UsersRemote
}

func NewRemoteUserRepository(remote UsersRemote) *RemoteUserRepository {
	return &RemoteUserRepository{remote: remote}
}

func (r *RemoteUserRepository) SignIn(ctx context.Context, email, password string) domain.Result[domain.Session] {
	return call(ctx, "sign in", func(ctx context.Context) (domain.Session, error) {
		return r.remote.SignIn(ctx, email, password)
	})
}

func (r *RemoteUserRepository) SignUp(ctx context.Context, email, password, name string) domain.Result[string] {
	return call(ctx, "sign up", func(ctx context.Context) (string, error) {
		return r.remote.SignUp(ctx, email, password, name)
	})
}

func (r *RemoteUserRepository) Logout(ctx context.Context) domain.Result[struct{}] {
	return call(ctx, "logout", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.remote.SignOut(ctx)
	})
}

func (r *RemoteUserRepository) CurrentUser(ctx context.Context) domain.Result[domain.User] {
	return call(ctx, "current user", func(ctx context.Context) (domain.User, error) {
		return r.remote.CurrentUser(ctx)
	})
}
