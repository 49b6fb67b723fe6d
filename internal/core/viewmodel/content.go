package viewmodel

import (
	"context"

	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
)

// contentLoader runs fetch cycles Loading -> Loaded | LoadFailed. Only the
// newest cycle may reduce; an older fetch finishing late is dropped.
type contentLoader[T any] struct {
	state  *Observable[ContentState[T]]
	scope  *Scope
	cycles *fetchCycles[T]
}

// fetchCycles is guarded by the scope lock.
type fetchCycles[T any] struct {
	started uint64
	settled uint64
	op      string
	call    func(ctx context.Context) domain.Result[T]
}

func newContentLoader[T any](scope *Scope) contentLoader[T] {
	return contentLoader[T]{
		state:  NewObservable[ContentState[T]](Loading[T]{}),
		scope:  scope,
		cycles: &fetchCycles[T]{},
	}
}

func (l contentLoader[T]) load(op string, call func(ctx context.Context) domain.Result[T]) bool {
	var cycle uint64
	if !l.scope.apply(func() {
		l.cycles.started++
		l.cycles.op, l.cycles.call = op, call
		cycle = l.cycles.started
		l.state.set(Loading[T]{})
	}) {
		return false
	}

	return l.scope.Launch(op, func(ctx context.Context) {
		res := guarded(ctx, call)
		l.scope.apply(func() {
			if cycle != l.cycles.started {
				return
			}
			l.cycles.settled = cycle
			l.state.set(domain.Fold(res,
				func(data T) ContentState[T] { return Loaded[T]{Data: data} },
				func(err *domain.Error) ContentState[T] { return LoadFailed[T]{Message: err.Message} },
			))
		})
	})
}

// patch rewrites the Loaded snapshot in place after a confirmed write. A
// fetch still in flight may predate that write, so it is superseded by a
// new one instead. Other states are left alone.
func (l contentLoader[T]) patch(fn func(T) T) bool {
	patched := false
	var op string
	var refetch func(ctx context.Context) domain.Result[T]

	l.scope.apply(func() {
		if l.cycles.started != l.cycles.settled {
			op, refetch = l.cycles.op, l.cycles.call
			return
		}
		patched = l.state.update(func(s ContentState[T]) (ContentState[T], bool) {
			data, ok := LoadedData(s)
			if !ok {
				return s, false
			}
			return Loaded[T]{Data: fn(data)}, true
		})
	})

	if refetch != nil {
		l.load(op, refetch)
	}
	return patched
}
