package viewmodel

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
	"github.com/comitanigiacomo/dailypulse/internal/core/usecases"
)

// HabitsViewModel backs the habit list screen.
type HabitsViewModel struct {
	uc       *usecases.HabitsUseCases
	scope    *Scope
	habits   contentLoader[domain.Habits]
	save     saveMachine
	messages *Messages
	logger   *log.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewHabitsViewModel starts the first fetch immediately.
func NewHabitsViewModel(ctx context.Context, uc *usecases.HabitsUseCases, logger *log.Logger) *HabitsViewModel {
	logger = logger.WithPrefix("habits")
	scope := NewScope(ctx, logger)

	vm := &HabitsViewModel{
		uc:       uc,
		scope:    scope,
		habits:   newContentLoader[domain.Habits](scope),
		save:     newSaveMachine(scope, logger),
		messages: NewMessages(),
		logger:   logger,
		inFlight: make(map[string]bool),
	}
	vm.Refresh()
	return vm
}

func (vm *HabitsViewModel) Habits() *Observable[ContentState[domain.Habits]] { return vm.habits.state }
func (vm *HabitsViewModel) SaveState() *Observable[SaveState]                { return vm.save.state }
func (vm *HabitsViewModel) Messages() *Messages                              { return vm.messages }

func (vm *HabitsViewModel) Refresh() {
	vm.habits.load("get habits", vm.uc.GetHabits.Execute)
}

// CreateHabit saves a new habit and refetches the list on success.
func (vm *HabitsViewModel) CreateHabit(habit domain.Habit) bool {
	return submit(vm.save, "create habit", func(ctx context.Context) domain.Result[string] {
		return vm.uc.CreateHabit.Execute(ctx, habit)
	}, func(string) { vm.Refresh() })
}

func (vm *HabitsViewModel) UpdateHabit(habit domain.Habit) bool {
	return submit(vm.save, "update habit", func(ctx context.Context) domain.Result[string] {
		return vm.uc.UpdateHabit.Execute(ctx, habit)
	}, func(string) { vm.Refresh() })
}

// OnHabitDone awaits the remote increment, then patches the loaded list with
// the stored habit. A failure leaves the list untouched and emits a message.
// A second call for a habit whose completion is still in flight is ignored.
func (vm *HabitsViewModel) OnHabitDone(habitID string) bool {
	if !vm.acquire(habitID) {
		vm.logger.Debug("habit done already in flight", "habit_id", habitID)
		return false
	}

	launched := vm.scope.Launch("habit done", func(ctx context.Context) {
		defer vm.release(habitID)

		res := guarded(ctx, func(ctx context.Context) domain.Result[domain.Habit] {
			return vm.uc.OnHabitDone.Execute(ctx, habitID)
		})

		habit, err := res.Get()
		if err != nil {
			vm.logger.Warn("habit done failed", "habit_id", habitID, "err", err)
			vm.emit(fmt.Sprintf("Failed to mark habit as done: %s", err))
			return
		}

		vm.habits.patch(func(hs domain.Habits) domain.Habits { return hs.Replace(habit) })
		if habit.GoalReached() {
			vm.emit(fmt.Sprintf("Goal reached for %q! Share your milestone?", habit.Title))
		}
	})
	if !launched {
		vm.release(habitID)
	}
	return launched
}

// DeleteHabit refetches on success; a failure only emits a message so the
// list stays on screen.
func (vm *HabitsViewModel) DeleteHabit(habitID string) bool {
	return vm.scope.Launch("delete habit", func(ctx context.Context) {
		res := guarded(ctx, func(ctx context.Context) domain.Result[string] {
			return vm.uc.DeleteHabit.Execute(ctx, habitID)
		})
		if err := res.Err(); err != nil {
			vm.logger.Warn("delete habit failed", "habit_id", habitID, "err", err)
			vm.emit(fmt.Sprintf("Failed to delete habit: %s", err.Message))
			return
		}
		vm.Refresh()
	})
}

// ShareMilestone publishes a post carrying a snapshot of the habit.
func (vm *HabitsViewModel) ShareMilestone(habit domain.Habit, description string) bool {
	snapshot := habit
	post := domain.NewPost(description, &snapshot)
	return submit(vm.save, "share milestone", func(ctx context.Context) domain.Result[string] {
		return vm.uc.CreatePost.Execute(ctx, post)
	}, nil)
}

func (vm *HabitsViewModel) ResetSaveState() {
	vm.save.reset()
}

// Wait blocks until all launched work has finished.
func (vm *HabitsViewModel) Wait() {
	vm.scope.Wait()
}

// Close tears the view-model down; late results are discarded.
func (vm *HabitsViewModel) Close() {
	vm.scope.Close()
	vm.messages.close()
	vm.habits.state.close()
	vm.save.state.close()
}

func (vm *HabitsViewModel) emit(msg string) {
	vm.scope.apply(func() { vm.messages.Emit(msg) })
}

func (vm *HabitsViewModel) acquire(habitID string) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.inFlight[habitID] {
		return false
	}
	vm.inFlight[habitID] = true
	return true
}

func (vm *HabitsViewModel) release(habitID string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	delete(vm.inFlight, habitID)
}
