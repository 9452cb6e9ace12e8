package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/habitup/internal/models"
	"github.com/julianstephens/habitup/internal/storage"
)

func (s *Store) AddHabit(ctx context.Context, h models.Habit) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO habits (`+storage.HabitColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		h.ID, h.OwnerID, h.Name, storage.NullString(h.Description), h.Category, h.TargetDays,
		h.CurrentStreak, h.LongestStreak, h.Active, storage.NullString(h.ReminderTime),
		h.ReminderEnabled, h.Difficulty, storage.FormatTime(h.CreatedAt), storage.FormatTime(h.UpdatedAt))
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("habit %s: %w", h.ID, storage.ErrConflict)
	}
	return err
}

func (s *Store) GetHabit(ctx context.Context, id string) (models.Habit, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+storage.HabitColumns+` FROM habits WHERE id = $1`, id)
	h, err := storage.ScanHabit(row)
	if err != nil {
		return models.Habit{}, storage.NotFound(err, "habit", id)
	}
	return h, nil
}

func (s *Store) ListHabits(ctx context.Context, ownerID string) ([]models.Habit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+storage.HabitColumns+` FROM habits
		WHERE owner_id = $1 ORDER BY created_at, name`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		h, err := storage.ScanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) ListCategories(ctx context.Context, ownerID string) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category FROM habits WHERE owner_id = $1
		GROUP BY category ORDER BY MIN(created_at)`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Store) UpdateHabit(ctx context.Context, h models.Habit) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE habits SET name = $1, description = $2, category = $3, target_days = $4, active = $5,
			reminder_time = $6, reminder_enabled = $7, difficulty = $8, updated_at = $9
		WHERE id = $10`,
		h.Name, storage.NullString(h.Description), h.Category, h.TargetDays, h.Active,
		storage.NullString(h.ReminderTime), h.ReminderEnabled, h.Difficulty,
		storage.FormatTime(h.UpdatedAt), h.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "habit", h.ID)
}

func (s *Store) UpdateStreak(ctx context.Context, habitID string, state models.StreakState) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE habits SET current_streak = $1, longest_streak = $2, updated_at = $3
		WHERE id = $4`,
		state.Current, state.Longest, storage.FormatTime(time.Now()), habitID)
	if err != nil {
		return err
	}
	return requireRow(res, "habit", habitID)
}

func (s *Store) DeleteHabit(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "habit", id)
}
