package http_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
)

type habitDone struct {
	Habit       domain.Habit `json:"habit"`
	GoalReached bool         `json:"goalReached"`
}

func createHabit(t *testing.T, srv *testServer, token string, body gin.H) string {
	t.Helper()
	w := srv.do(t, http.MethodPost, "/api/v1/habits", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode[map[string]string](t, w)["id"]
	require.NotEmpty(t, id)
	return id
}

func TestCreateHabit(t *testing.T) {
	t.Run("Success: 201 Created and listed", func(t *testing.T) {
		srv := newTestServer(t)
		token := srv.signUp(t, "ann@example.com", "Ann")

		id := createHabit(t, srv, token, gin.H{"title": "Drink water", "daysOfWeek": []string{"MONDAY", "WEDNESDAY"}, "goal": 8})

		w := srv.do(t, http.MethodGet, "/api/v1/habits", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		habits := decode[domain.Habits](t, w)
		require.Len(t, habits.Items, 1)
		assert.Equal(t, id, habits.Items[0].ID)
		assert.Equal(t, 8, habits.Items[0].Goal)
		assert.Equal(t, 0, habits.Items[0].TotalCount)
	})

	t.Run("Fail: 400 Bad Request (Validation)", func(t *testing.T) {
		srv := newTestServer(t)
		token := srv.signUp(t, "ann@example.com", "Ann")

		w := srv.do(t, http.MethodPost, "/api/v1/habits", token, gin.H{"title": "", "daysOfWeek": []string{}, "goal": 0})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "title")
		assert.Contains(t, w.Body.String(), "daysOfWeek")
		assert.Contains(t, w.Body.String(), "goal")
	})

	t.Run("Fail: 401 Without Token", func(t *testing.T) {
		srv := newTestServer(t)

		w := srv.do(t, http.MethodPost, "/api/v1/habits", "", gin.H{"title": "Gym", "daysOfWeek": []string{"MONDAY"}, "goal": 3})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestListHabits(t *testing.T) {
	t.Run("Success: Empty list is an empty array", func(t *testing.T) {
		srv := newTestServer(t)
		token := srv.signUp(t, "ann@example.com", "Ann")

		w := srv.do(t, http.MethodGet, "/api/v1/habits", token, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"items":[]}`, w.Body.String())
	})

	t.Run("Success: Habits are private to their owner", func(t *testing.T) {
		srv := newTestServer(t)
		ann := srv.signUp(t, "ann@example.com", "Ann")
		bob := srv.signUp(t, "bob@example.com", "Bob")
		habitID := createHabit(t, srv, ann, gin.H{"title": "Read", "daysOfWeek": []string{"FRIDAY"}, "goal": 5})

		w := srv.do(t, http.MethodGet, "/api/v1/habits", bob, nil)
		assert.JSONEq(t, `{"items":[]}`, w.Body.String())

		w = srv.do(t, http.MethodGet, "/api/v1/habits/"+habitID, bob, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHabitDone(t *testing.T) {
	t.Run("Success: Three completions count three", func(t *testing.T) {
		srv := newTestServer(t)
		token := srv.signUp(t, "ann@example.com", "Ann")
		id := createHabit(t, srv, token, gin.H{"title": "Stretch", "daysOfWeek": []string{"MONDAY"}, "goal": 3})

		var last habitDone
		for i := 0; i < 3; i++ {
			w := srv.do(t, http.MethodPost, "/api/v1/habits/"+id+"/done", token, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			last = decode[habitDone](t, w)
		}

		assert.Equal(t, 3, last.Habit.TotalCount)
		assert.True(t, last.GoalReached)
	})

	t.Run("Fail: 404 Not Found", func(t *testing.T) {
		srv := newTestServer(t)
		token := srv.signUp(t, "ann@example.com", "Ann")

		w := srv.do(t, http.MethodPost, "/api/v1/habits/missing/done", token, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "habit not found")
	})
}

func TestUpdateHabit(t *testing.T) {
	t.Run("Success: Edits keep the completion count", func(t *testing.T) {
		srv := newTestServer(t)
		token := srv.signUp(t, "ann@example.com", "Ann")
		id := createHabit(t, srv, token, gin.H{"title": "Run", "daysOfWeek": []string{"MONDAY"}, "goal": 10})
		srv.do(t, http.MethodPost, "/api/v1/habits/"+id+"/done", token, nil)

		w := srv.do(t, http.MethodPut, "/api/v1/habits/"+id, token, gin.H{"title": "Evening Run", "daysOfWeek": []string{"TUESDAY", "THURSDAY"}, "goal": 20})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = srv.do(t, http.MethodGet, "/api/v1/habits/"+id, token, nil)
		habit := decode[domain.Habit](t, w)
		assert.Equal(t, "Evening Run", habit.Title)
		assert.Equal(t, 20, habit.Goal)
		assert.Equal(t, 1, habit.TotalCount)
		assert.True(t, habit.DaysOfWeek.Contains(domain.Thursday))
		assert.False(t, habit.DaysOfWeek.Contains(domain.Monday))
	})

	t.Run("Fail: 409 Conflict when a completion lands mid-edit", func(t *testing.T) {
		srv := newTestServer(t)
		token := srv.signUp(t, "ann@example.com", "Ann")
		id := createHabit(t, srv, token, gin.H{"title": "Run", "daysOfWeek": []string{"MONDAY"}, "goal": 10})

		srv.hooks.onNextHabitGet(func() {
			w := srv.do(t, http.MethodPost, "/api/v1/habits/"+id+"/done", token, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		})

		w := srv.do(t, http.MethodPut, "/api/v1/habits/"+id, token, gin.H{"title": "Evening Run", "daysOfWeek": []string{"MONDAY"}, "goal": 10})
		assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		w = srv.do(t, http.MethodGet, "/api/v1/habits/"+id, token, nil)
		habit := decode[domain.Habit](t, w)
		assert.Equal(t, 1, habit.TotalCount)
		assert.Equal(t, "Run", habit.Title)
	})

	t.Run("Fail: 404 Not Found", func(t *testing.T) {
		srv := newTestServer(t)
		token := srv.signUp(t, "ann@example.com", "Ann")

		w := srv.do(t, http.MethodPut, "/api/v1/habits/missing", token, gin.H{"title": "Run", "daysOfWeek": []string{"MONDAY"}, "goal": 1})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteHabit(t *testing.T) {
	srv := newTestServer(t)
	token := srv.signUp(t, "ann@example.com", "Ann")
	id := createHabit(t, srv, token, gin.H{"title": "Run", "daysOfWeek": []string{"MONDAY"}, "goal": 10})

	t.Run("Success: 204 No Content", func(t *testing.T) {
		w := srv.do(t, http.MethodDelete, "/api/v1/habits/"+id, token, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Fail: Second delete is 404", func(t *testing.T) {
		w := srv.do(t, http.MethodDelete, "/api/v1/habits/"+id, token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
