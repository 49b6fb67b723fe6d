package workers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
	"github.com/comitanigiacomo/dailypulse/internal/core/usecases"
)

type UserLister interface {
	ListUserIDs(ctx context.Context) ([]string, error)
}

// Notifier delivers a reminder about habits still pending today.
type Notifier interface {
	Notify(ctx context.Context, userID string, pending []domain.Habit) error
}

// LogNotifier writes reminders to the log instead of a device.
type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.WithPrefix("notify")}
}

func (n *LogNotifier) Notify(ctx context.Context, userID string, pending []domain.Habit) error {
	titles := make([]string, 0, len(pending))
	for _, h := range pending {
		titles = append(titles, h.Title)
	}
	n.logger.Info("Don't forget your habits today!", "user_id", userID, "pending", titles)
	return nil
}

type ReminderConfig struct {
	Hour     int
	Retry    time.Duration
	Location *time.Location
}

// ReminderWorker checks once a day, at Hour in Location, whether each user
// still has habits scheduled today that were not marked done, and notifies.
type ReminderWorker struct {
	users     UserLister
	getHabits *usecases.GetHabits
	notifier  Notifier
	cfg       ReminderConfig
	now       func() time.Time
	logger    *log.Logger
	trigger   chan struct{}
}

func NewReminderWorker(users UserLister, getHabits *usecases.GetHabits, notifier Notifier, cfg ReminderConfig, logger *log.Logger) *ReminderWorker {
	if cfg.Hour < 0 || cfg.Hour > 23 {
		cfg.Hour = 17
	}
	if cfg.Retry <= 0 {
		cfg.Retry = 15 * time.Minute
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &ReminderWorker{
		users:     users,
		getHabits: getHabits,
		notifier:  notifier,
		cfg:       cfg,
		now:       time.Now,
		logger:    logger.WithPrefix("reminder"),
		trigger:   make(chan struct{}, 1),
	}
}

// Start runs the schedule until ctx is cancelled.
func (w *ReminderWorker) Start(ctx context.Context) {
	go func() {
		delay := w.untilNextRun()
		w.logger.Info("reminder worker started", "first_run_in", delay.Round(time.Second))

		timer := time.NewTimer(delay)
		defer timer.Stop()

		for {
			select {
			case <-timer.C:
				timer.Reset(w.runAndSchedule(ctx))
			case <-w.trigger:
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.runAndSchedule(ctx))
			case <-ctx.Done():
				w.logger.Info("reminder worker shutting down")
				return
			}
		}
	}()
}

// Trigger asks for a check right away. It never blocks.
func (w *ReminderWorker) Trigger() {
	select {
	case w.trigger <- struct{}{}:
	default:
		w.logger.Debug("reminder check already pending")
	}
}

func (w *ReminderWorker) runAndSchedule(ctx context.Context) time.Duration {
	if err := w.RunOnce(ctx); err != nil {
		w.logger.Warn("reminder check failed, retrying", "retry_in", w.cfg.Retry, "err", err)
		return w.cfg.Retry
	}
	return w.untilNextRun()
}

func (w *ReminderWorker) untilNextRun() time.Duration {
	now := w.now()
	return nextRun(now, w.cfg.Hour, w.cfg.Location).Sub(now)
}

// nextRun is the first hour:00 in loc strictly after now.
func nextRun(now time.Time, hour int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// RunOnce checks every user. A failure for one user does not stop the
// others; the joined error makes the whole run eligible for a retry.
func (w *ReminderWorker) RunOnce(ctx context.Context) error {
	ids, err := w.users.ListUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	today := w.now().In(w.cfg.Location)
	var errs []error
	notified := 0

	for _, uid := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}

		habits, err := w.getHabits.Execute(domain.WithUserID(ctx, uid)).Get()
		if err != nil {
			errs = append(errs, fmt.Errorf("habits of %s: %w", uid, err))
			continue
		}

		pending := PendingToday(habits, today, w.cfg.Location)
		if len(pending) == 0 {
			continue
		}

		if err := w.notifier.Notify(ctx, uid, pending); err != nil {
			errs = append(errs, fmt.Errorf("notify %s: %w", uid, err))
			continue
		}
		notified++
	}

	w.logger.Info("reminder check done", "users", len(ids), "notified", notified, "failed", len(errs))
	return errors.Join(errs...)
}

// PendingToday returns the habits scheduled on today's weekday whose last
// completion is not today.
func PendingToday(habits domain.Habits, today time.Time, loc *time.Location) []domain.Habit {
	weekday := domain.WeekdayOf(today.In(loc).Weekday())

	var pending []domain.Habit
	for _, h := range habits.Items {
		if !h.DaysOfWeek.Contains(weekday) {
			continue
		}
		if h.DoneOn(today, loc) {
			continue
		}
		pending = append(pending, h)
	}
	return pending
}
