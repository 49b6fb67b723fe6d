package viewmodel

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
	"github.com/comitanigiacomo/dailypulse/internal/core/usecases"
)

// HabitViewModel backs the create/edit form of a single habit.
type HabitViewModel struct {
	uc       *usecases.HabitsUseCases
	scope    *Scope
	habit    contentLoader[domain.Habit]
	save     saveMachine
	messages *Messages
	logger   *log.Logger
}

// NewHabitViewModel loads the habit when habitID is set. For a new habit the
// content stays Loading, which the form treats as empty.
func NewHabitViewModel(ctx context.Context, uc *usecases.HabitsUseCases, habitID string, logger *log.Logger) *HabitViewModel {
	logger = logger.WithPrefix("habit")
	scope := NewScope(ctx, logger)

	vm := &HabitViewModel{
		uc:       uc,
		scope:    scope,
		habit:    newContentLoader[domain.Habit](scope),
		save:     newSaveMachine(scope, logger),
		messages: NewMessages(),
		logger:   logger,
	}
	if habitID != "" {
		vm.habit.load("get habit details", func(ctx context.Context) domain.Result[domain.Habit] {
			return uc.GetHabitDetails.Execute(ctx, habitID)
		})
	}
	return vm
}

func (vm *HabitViewModel) Habit() *Observable[ContentState[domain.Habit]] { return vm.habit.state }
func (vm *HabitViewModel) SaveState() *Observable[SaveState]              { return vm.save.state }
func (vm *HabitViewModel) Messages() *Messages                            { return vm.messages }

func (vm *HabitViewModel) CreateHabit(habit domain.Habit) bool {
	return vm.saveHabit("create habit", func(ctx context.Context) domain.Result[string] {
		return vm.uc.CreateHabit.Execute(ctx, habit)
	})
}

func (vm *HabitViewModel) UpdateHabit(habit domain.Habit) bool {
	return vm.saveHabit("update habit", func(ctx context.Context) domain.Result[string] {
		return vm.uc.UpdateHabit.Execute(ctx, habit)
	})
}

// saveHabit runs a form save; a failure is also emitted as a message.
func (vm *HabitViewModel) saveHabit(op string, call func(ctx context.Context) domain.Result[string]) bool {
	return submit(vm.save, op, func(ctx context.Context) domain.Result[string] {
		res := call(ctx)
		if err := res.Err(); err != nil {
			vm.logger.Warn("habit save failed", "op", op, "err", err)
			vm.scope.apply(func() { vm.messages.Emit(fmt.Sprintf("Failed to %s: %s", op, err.Message)) })
		}
		return res
	}, nil)
}

func (vm *HabitViewModel) ResetSaveState() {
	vm.save.reset()
}

func (vm *HabitViewModel) Wait() {
	vm.scope.Wait()
}

func (vm *HabitViewModel) Close() {
	vm.scope.Close()
	vm.messages.close()
	vm.habit.state.close()
	vm.save.state.close()
}
