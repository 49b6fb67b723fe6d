package workers

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
	"github.com/comitanigiacomo/dailypulse/internal/core/usecases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticUsers struct {
	ids []string
	err error
}

func (s staticUsers) ListUserIDs(context.Context) ([]string, error) {
	return s.ids, s.err
}

// habitsByUser serves GetHabits from the identity on the context.
type habitsByUser struct {
	domain.HabitsRepository
	habits map[string][]domain.Habit
	fail   map[string]bool
}

func (r habitsByUser) GetHabits(ctx context.Context) domain.Result[domain.Habits] {
	uid, ok := domain.UserIDFromContext(ctx)
	if !ok {
		return domain.Failure[domain.Habits](domain.ErrUnauthenticated)
	}
	if r.fail[uid] {
		return domain.Failure[domain.Habits](domain.NewError(domain.KindRemote, "unavailable"))
	}
	return domain.Success(domain.Habits{Items: r.habits[uid]})
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls map[string][]string
	done  chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{calls: make(map[string][]string), done: make(chan struct{}, 8)}
}

func (n *recordingNotifier) Notify(ctx context.Context, userID string, pending []domain.Habit) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, h := range pending {
		n.calls[userID] = append(n.calls[userID], h.Title)
	}
	n.done <- struct{}{}
	return nil
}

var monday5pm = time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)

func habit(title string, days domain.WeekdaySet, count int, last time.Time) domain.Habit {
	return domain.Habit{ID: title, Title: title, DaysOfWeek: days, Goal: 60, TotalCount: count, LastModified: last}
}

func TestNextRun(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"Before the hour runs today", time.Date(2026, 3, 2, 9, 30, 0, 0, rome), time.Date(2026, 3, 2, 17, 0, 0, 0, rome)},
		{"Exactly on the hour runs tomorrow", time.Date(2026, 3, 2, 17, 0, 0, 0, rome), time.Date(2026, 3, 3, 17, 0, 0, 0, rome)},
		{"After the hour runs tomorrow", time.Date(2026, 3, 2, 22, 0, 0, 0, rome), time.Date(2026, 3, 3, 17, 0, 0, 0, rome)},
		{"Other zones are converted", time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC), time.Date(2026, 3, 3, 17, 0, 0, 0, rome)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(nextRun(tt.now, 17, rome)), "got %v", nextRun(tt.now, 17, rome))
		})
	}
}

func TestPendingToday(t *testing.T) {
	mon := domain.NewWeekdaySet(domain.Monday)
	tue := domain.NewWeekdaySet(domain.Tuesday)

	habits := domain.Habits{Items: []domain.Habit{
		habit("done today", mon, 4, monday5pm.Add(-2*time.Hour)),
		habit("done yesterday", mon, 4, monday5pm.Add(-24*time.Hour)),
		habit("never done", mon, 0, monday5pm.Add(-time.Hour)),
		habit("not scheduled", tue, 0, time.Time{}),
	}}

	pending := PendingToday(habits, monday5pm, time.UTC)

	titles := make([]string, 0, len(pending))
	for _, h := range pending {
		titles = append(titles, h.Title)
	}
	assert.Equal(t, []string{"done yesterday", "never done"}, titles)
}

func TestReminderWorker_RunOnce(t *testing.T) {
	mon := domain.NewWeekdaySet(domain.Monday)
	logger := log.New(io.Discard)

	newWorker := func(users UserLister, repo domain.HabitsRepository, n Notifier) *ReminderWorker {
		w := NewReminderWorker(users, usecases.NewGetHabits(repo), n, ReminderConfig{Hour: 17, Location: time.UTC}, logger)
		w.now = func() time.Time { return monday5pm }
		return w
	}

	t.Run("Success: Notifies only users with pending habits", func(t *testing.T) {
		repo := habitsByUser{habits: map[string][]domain.Habit{
			"u1": {habit("Read", mon, 1, monday5pm.Add(-48*time.Hour))},
			"u2": {habit("Run", mon, 1, monday5pm.Add(-time.Hour))},
		}}
		n := newRecordingNotifier()

		err := newWorker(staticUsers{ids: []string{"u1", "u2", "u3"}}, repo, n).RunOnce(context.Background())
		require.NoError(t, err)

		assert.Equal(t, map[string][]string{"u1": {"Read"}}, n.calls)
	})

	t.Run("Error: A failing user does not block the others", func(t *testing.T) {
		repo := habitsByUser{
			habits: map[string][]domain.Habit{"u2": {habit("Run", mon, 0, time.Time{})}},
			fail:   map[string]bool{"u1": true},
		}
		n := newRecordingNotifier()

		err := newWorker(staticUsers{ids: []string{"u1", "u2"}}, repo, n).RunOnce(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unavailable")
		assert.Equal(t, []string{"Run"}, n.calls["u2"])
	})

	t.Run("Error: Listing users fails the run", func(t *testing.T) {
		err := newWorker(staticUsers{err: errors.New("store down")}, habitsByUser{}, newRecordingNotifier()).RunOnce(context.Background())
		assert.ErrorContains(t, err, "store down")
	})
}

func TestReminderWorker_Trigger(t *testing.T) {
	mon := domain.NewWeekdaySet(domain.Monday)
	repo := habitsByUser{habits: map[string][]domain.Habit{"u1": {habit("Read", mon, 0, time.Time{})}}}
	n := newRecordingNotifier()

	w := NewReminderWorker(staticUsers{ids: []string{"u1"}}, usecases.NewGetHabits(repo), n, ReminderConfig{Hour: 17, Location: time.UTC}, log.New(io.Discard))
	w.now = func() time.Time { return monday5pm }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w.Start(ctx)
	w.Trigger()

	select {
	case <-n.done:
	case <-time.After(2 * time.Second):
		t.Fatal("triggered check did not notify")
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	assert.Equal(t, []string{"Read"}, n.calls["u1"])
}
