package repository

import (
	"context"

	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
)

// call runs one adapter operation under the caller's context and folds its
// outcome, including a panic raised by the backend, into a single Result.
func call[T any](ctx context.Context, op string, fn func(context.Context) (T, error)) (res domain.Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = domain.Failure[T](domain.Errorf(domain.KindInternal, "repository: %s panicked: %v", op, r))
		}
	}()

	v, err := fn(ctx)
	if err != nil {
		return domain.FailureFrom[T](err)
	}
	return domain.Success(v)
}
