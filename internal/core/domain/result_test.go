package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult(t *testing.T) {
	t.Run("Success: Carries the value", func(t *testing.T) {
		r := domain.Success(domain.Habits{Items: []domain.Habit{}})

		assert.True(t, r.IsSuccess())
		assert.Nil(t, r.Err())
		v, err := r.Get()
		require.NoError(t, err)
		assert.NotNil(t, v.Items)
	})

	t.Run("Failure: Always has a message", func(t *testing.T) {
		r := domain.Failure[string](nil)

		assert.False(t, r.IsSuccess())
		require.NotNil(t, r.Err())
		assert.NotEmpty(t, r.Err().Message)
		assert.Equal(t, domain.KindInternal, r.Err().Kind)
	})

	t.Run("Failure: Keeps the remote message verbatim", func(t *testing.T) {
		r := domain.FailureFrom[string](errors.New("connection reset by peer"))

		assert.Equal(t, "connection reset by peer", r.Err().Message)
		assert.Equal(t, domain.KindRemote, r.Err().Kind)
	})

	t.Run("Fold: Picks the matching branch", func(t *testing.T) {
		ok := domain.Fold(domain.Success(2),
			func(v int) string { return fmt.Sprintf("ok %d", v) },
			func(e *domain.Error) string { return e.Message })
		assert.Equal(t, "ok 2", ok)

		failed := domain.Fold(domain.Failure[int](domain.ErrForbidden),
			func(v int) string { return "ok" },
			func(e *domain.Error) string { return e.Message })
		assert.Equal(t, domain.ErrForbidden.Message, failed)
	})

	t.Run("Map: Passes failures through", func(t *testing.T) {
		r := domain.Map(domain.Failure[int](domain.ErrConflict), func(v int) string { return "x" })
		assert.ErrorIs(t, r.Err(), domain.ErrConflict)
	})
}

func TestAsError(t *testing.T) {
	t.Run("Kind survives wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("like post p1: %w", domain.ErrNotFound)

		e := domain.AsError(wrapped)

		assert.Equal(t, domain.KindNotFound, e.Kind)
		assert.Equal(t, wrapped.Error(), e.Message)
		assert.ErrorIs(t, e, domain.ErrNotFound)
	})

	t.Run("Is matches by kind", func(t *testing.T) {
		assert.ErrorIs(t, domain.NewError(domain.KindUnauthenticated, "sign in first"), domain.ErrUnauthenticated)
		assert.NotErrorIs(t, domain.ErrForbidden, domain.ErrUnauthenticated)
	})

	t.Run("Nil stays nil", func(t *testing.T) {
		assert.Nil(t, domain.AsError(nil))
	})

	t.Run("HTTP status by kind", func(t *testing.T) {
		assert.Equal(t, 404, domain.KindNotFound.HTTPStatus())
		assert.Equal(t, 401, domain.KindUnauthenticated.HTTPStatus())
		assert.Equal(t, 409, domain.KindConflict.HTTPStatus())
		assert.Equal(t, 500, domain.KindInternal.HTTPStatus())
	})
}
