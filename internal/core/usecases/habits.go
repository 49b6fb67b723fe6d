// Package usecases exposes one delegate per user-facing operation. Each
// Execute forwards to its repository unchanged.
package usecases

import (
	"context"

	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
)

type GetHabits struct {
	repo domain.HabitsRepository
}

func NewGetHabits(repo domain.HabitsRepository) *GetHabits {
	return &GetHabits{repo: repo}
}

func (u *GetHabits) Execute(ctx context.Context) domain.Result[domain.Habits] {
	return u.repo.GetHabits(ctx)
}

type CreateHabit struct {
	repo domain.HabitsRepository
}

func NewCreateHabit(repo domain.HabitsRepository) *CreateHabit {
	return &CreateHabit{repo: repo}
}

func (u *CreateHabit) Execute(ctx context.Context, habit domain.Habit) domain.Result[string] {
	return u.repo.CreateHabit(ctx, habit)
}

type UpdateHabit struct {
	repo domain.HabitsRepository
}

func NewUpdateHabit(repo domain.HabitsRepository) *UpdateHabit {
	return &UpdateHabit{repo: repo}
}

func (u *UpdateHabit) Execute(ctx context.Context, habit domain.Habit) domain.Result[string] {
	return u.repo.UpdateHabit(ctx, habit)
}

// OnHabitDone records one completion of a habit.
type OnHabitDone struct {
	repo domain.HabitsRepository
}

func NewOnHabitDone(repo domain.HabitsRepository) *OnHabitDone {
	return &OnHabitDone{repo: repo}
}

func (u *OnHabitDone) Execute(ctx context.Context, habitID string) domain.Result[domain.Habit] {
	return u.repo.HabitDone(ctx, habitID)
}

type DeleteHabit struct {
	repo domain.HabitsRepository
}

func NewDeleteHabit(repo domain.HabitsRepository) *DeleteHabit {
	return &DeleteHabit{repo: repo}
}

func (u *DeleteHabit) Execute(ctx context.Context, habitID string) domain.Result[string] {
	return u.repo.DeleteHabit(ctx, habitID)
}

type GetHabitDetails struct {
	repo domain.HabitsRepository
}

func NewGetHabitDetails(repo domain.HabitsRepository) *GetHabitDetails {
	return &GetHabitDetails{repo: repo}
}

func (u *GetHabitDetails) Execute(ctx context.Context, habitID string) domain.Result[domain.Habit] {
	return u.repo.GetHabitDetails(ctx, habitID)
}

// HabitsUseCases groups what the habit screens need. CreatePost is here so a
// reached milestone can be shared from the habit list.
type HabitsUseCases struct {
	GetHabits       *GetHabits
	CreateHabit     *CreateHabit
	UpdateHabit     *UpdateHabit
	OnHabitDone     *OnHabitDone
	DeleteHabit     *DeleteHabit
	GetHabitDetails *GetHabitDetails
	CreatePost      *CreatePost
}

func NewHabitsUseCases(habits domain.HabitsRepository, posts domain.PostsRepository) *HabitsUseCases {
	return &HabitsUseCases{
		GetHabits:       NewGetHabits(habits),
		CreateHabit:     NewCreateHabit(habits),
		UpdateHabit:     NewUpdateHabit(habits),
		OnHabitDone:     NewOnHabitDone(habits),
		DeleteHabit:     NewDeleteHabit(habits),
		GetHabitDetails: NewGetHabitDetails(habits),
		CreatePost:      NewCreatePost(posts),
	}
}
