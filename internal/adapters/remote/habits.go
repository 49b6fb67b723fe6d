package remote

import (
	"context"
	"sort"

	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
)

func decodeHabit(doc *domain.Document) (domain.Habit, error) {
	var h domain.Habit
	if err := decode(doc, &h); err != nil {
		return domain.Habit{}, err
	}
	// The document id is authoritative even if the write-back never landed.
	h.ID = doc.ID
	h.Version = doc.Version
	if h.DaysOfWeek == nil {
		h.DaysOfWeek = domain.WeekdaySet{}
	}
	return h, nil
}

// CreateHabit adds the habit under the caller's collection, then writes the
// assigned id back into the stored document.
func (c *Client) CreateHabit(ctx context.Context, habit domain.Habit) (domain.Habit, error) {
	uid, err := c.currentUser(ctx)
	if err != nil {
		return domain.Habit{}, err
	}

	now := c.now().UTC()
	habit.ID = ""
	if habit.CreatedAt.IsZero() {
		habit.CreatedAt = now
	}
	habit.Touch(now)
	if habit.DaysOfWeek == nil {
		habit.DaysOfWeek = domain.WeekdaySet{}
	}

	collection := domain.HabitsCollection(uid)
	data, err := encode(habit)
	if err != nil {
		return domain.Habit{}, err
	}

	id, err := c.store.Add(ctx, collection, data)
	if err != nil {
		return domain.Habit{}, storeError(err, "habit")
	}
	habit.ID = id

	if data, err = encode(habit); err != nil {
		return domain.Habit{}, err
	}
	if err := c.store.Set(ctx, collection, id, data); err != nil {
		return domain.Habit{}, storeError(err, "habit")
	}

	c.logger.Debug("habit created", "habit_id", id, "user_id", uid)
	return habit, nil
}

// GetHabits lists the caller's habits, oldest first.
func (c *Client) GetHabits(ctx context.Context) (domain.Habits, error) {
	uid, err := c.currentUser(ctx)
	if err != nil {
		return domain.Habits{}, err
	}

	docs, err := c.store.List(ctx, domain.HabitsCollection(uid))
	if err != nil {
		return domain.Habits{}, storeError(err, "habits")
	}

	items := make([]domain.Habit, 0, len(docs))
	for _, doc := range docs {
		h, err := decodeHabit(doc)
		if err != nil {
			return domain.Habits{}, err
		}
		items = append(items, h)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})

	return domain.Habits{Items: items}, nil
}

func (c *Client) GetHabit(ctx context.Context, habitID string) (domain.Habit, error) {
	h, _, err := c.readHabit(ctx, habitID)
	return h, err
}

func (c *Client) readHabit(ctx context.Context, habitID string) (domain.Habit, int64, error) {
	uid, err := c.currentUser(ctx)
	if err != nil {
		return domain.Habit{}, 0, err
	}
	if habitID == "" {
		return domain.Habit{}, 0, domain.NewError(domain.KindValidation, "habit id is required")
	}

	doc, err := c.store.Get(ctx, domain.HabitsCollection(uid), habitID)
	if err != nil {
		return domain.Habit{}, 0, storeError(err, "habit")
	}

	h, err := decodeHabit(doc)
	return h, doc.Version, err
}

func (c *Client) writeHabit(ctx context.Context, habit domain.Habit, version int64) error {
	uid, err := c.currentUser(ctx)
	if err != nil {
		return err
	}

	data, err := encode(habit)
	if err != nil {
		return err
	}

	return storeError(c.store.SetIfVersion(ctx, domain.HabitsCollection(uid), habit.ID, version, data), "habit")
}

// UpdateHabit overwrites the stored habit. CreatedAt is kept from the stored
// copy and LastModified is stamped with the current time. A habit carrying
// the version it was read at is only written if the document is still at
// that version, so a completion recorded since then yields a conflict.
func (c *Client) UpdateHabit(ctx context.Context, habit domain.Habit) (domain.Habit, error) {
	stored, version, err := c.readHabit(ctx, habit.ID)
	if err != nil {
		return domain.Habit{}, err
	}
	if habit.Version != 0 {
		version = habit.Version
	}

	habit.CreatedAt = stored.CreatedAt
	habit.LastModified = stored.LastModified
	habit.Touch(c.now())
	if habit.DaysOfWeek == nil {
		habit.DaysOfWeek = domain.WeekdaySet{}
	}

	if err := c.writeHabit(ctx, habit, version); err != nil {
		return domain.Habit{}, err
	}
	habit.Version = version + 1
	return habit, nil
}

// HabitDone increments the stored count by one. The write is conditional on
// the version read, so a concurrent writer yields a conflict instead of a
// lost increment.
func (c *Client) HabitDone(ctx context.Context, habitID string) (domain.Habit, error) {
	habit, version, err := c.readHabit(ctx, habitID)
	if err != nil {
		return domain.Habit{}, err
	}

	habit.MarkDone(c.now())

	if err := c.writeHabit(ctx, habit, version); err != nil {
		return domain.Habit{}, err
	}
	habit.Version = version + 1

	c.logger.Debug("habit marked done", "habit_id", habit.ID, "total", habit.TotalCount)
	return habit, nil
}

func (c *Client) DeleteHabit(ctx context.Context, habitID string) error {
	uid, err := c.currentUser(ctx)
	if err != nil {
		return err
	}
	if habitID == "" {
		return domain.NewError(domain.KindValidation, "habit id is required")
	}

	return storeError(c.store.Delete(ctx, domain.HabitsCollection(uid), habitID), "habit")
}
