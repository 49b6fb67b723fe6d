package domain

// Result is the outcome of every repository and use-case call: either a
// success carrying a value or a failure carrying an *Error. The zero value
// is not a valid Result; build one with Success or Failure.
type Result[T any] struct {
	value T
	err   *Error
	ok    bool
}

// Success wraps a value.
func Success[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Failure wraps an error. A nil error becomes an internal failure so a
// Failure never travels without a message.
func Failure[T any](err *Error) Result[T] {
	if err == nil {
		err = NewError(KindInternal, "")
	}
	return Result[T]{err: err}
}

// FailureFrom converts any error into a Failure, keeping its message.
func FailureFrom[T any](err error) Result[T] {
	return Failure[T](AsError(err))
}

func (r Result[T]) IsSuccess() bool {
	return r.ok
}

// Value returns the success payload, or the zero value for a failure.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the failure payload, or nil for a success.
func (r Result[T]) Err() *Error {
	if r.ok {
		return nil
	}
	if r.err == nil {
		return NewError(KindInternal, "")
	}
	return r.err
}

// Get returns the result in the idiomatic (value, error) form.
func (r Result[T]) Get() (T, error) {
	if r.ok {
		return r.value, nil
	}
	return r.value, r.Err()
}

// Fold forces both branches to be handled at the call site.
func Fold[T, R any](r Result[T], onSuccess func(T) R, onFailure func(*Error) R) R {
	if r.ok {
		return onSuccess(r.value)
	}
	return onFailure(r.Err())
}

// Map transforms the success payload and passes failures through.
func Map[T, R any](r Result[T], fn func(T) R) Result[R] {
	if r.ok {
		return Success(fn(r.value))
	}
	return Failure[R](r.Err())
}
