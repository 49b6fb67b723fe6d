package viewmodel

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
)

// saveMachine drives a SaveState observable through its transitions.
type saveMachine struct {
	state  *Observable[SaveState]
	scope  *Scope
	logger *log.Logger
}

func newSaveMachine(scope *Scope, logger *log.Logger) saveMachine {
	return saveMachine{state: NewObservable[SaveState](Idle{}), scope: scope, logger: logger}
}

// begin moves Idle to Saving. Any other source state rejects the submit.
func (m saveMachine) begin(op string) bool {
	started := m.state.update(func(s SaveState) (SaveState, bool) {
		if _, ok := s.(Idle); ok {
			return Saving{}, true
		}
		return s, false
	})
	if !started {
		m.logger.Warn("submit ignored, save state is not idle", "op", op, "state", stateName(m.state.Value()))
	}
	return started
}

func (m saveMachine) finish(err *domain.Error) {
	m.scope.apply(func() {
		m.state.update(func(s SaveState) (SaveState, bool) {
			if _, ok := s.(Saving); !ok {
				return s, false
			}
			if err != nil {
				return SaveFailed{Message: err.Message}, true
			}
			return SaveSuccess{}, true
		})
	})
}

// reset moves SaveSuccess or SaveFailed back to Idle.
func (m saveMachine) reset() {
	m.state.update(func(s SaveState) (SaveState, bool) {
		switch s.(type) {
		case SaveSuccess, SaveFailed:
			return Idle{}, true
		default:
			return s, false
		}
	})
}

// submit runs one save: begin, call, then finish with its outcome, and
// onSuccess when it succeeded. It reports whether the save was started.
func submit[T any](m saveMachine, op string, call func(ctx context.Context) domain.Result[T], onSuccess func(T)) bool {
	if !m.begin(op) {
		return false
	}

	launched := m.scope.Launch(op, func(ctx context.Context) {
		res := guarded(ctx, call)
		m.finish(res.Err())
		if res.IsSuccess() && onSuccess != nil {
			onSuccess(res.Value())
		}
	})
	if !launched {
		m.state.set(Idle{})
	}
	return launched
}

// guarded turns a panic raised by call into a single internal failure.
func guarded[T any](ctx context.Context, call func(ctx context.Context) domain.Result[T]) (res domain.Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = domain.Failure[T](domain.Errorf(domain.KindInternal, "unexpected failure: %v", r))
		}
	}()
	return call(ctx)
}

func stateName(s SaveState) string {
	switch v := s.(type) {
	case Idle:
		return "idle"
	case Saving:
		return "saving"
	case SaveSuccess:
		return "success"
	case SaveFailed:
		return "error: " + v.Message
	default:
		return "unknown"
	}
}
