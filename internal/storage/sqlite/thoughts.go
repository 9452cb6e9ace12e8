package sqlite

import (
	"context"

	"github.com/julianstephens/habitup/internal/models"
	"github.com/julianstephens/habitup/internal/storage"
)

func (s *Store) AddThought(ctx context.Context, t models.DailyThought) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO daily_thoughts (`+storage.ThoughtColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Content, storage.NullString(t.Author), t.Category,
		storage.NullString(t.ScheduledDay), t.Active, storage.NullString(t.CreatedBy),
		storage.FormatTime(t.CreatedAt))
	return err
}

func (s *Store) ListThoughts(ctx context.Context, activeOnly bool) ([]models.DailyThought, error) {
	query := `SELECT ` + storage.ThoughtColumns + ` FROM daily_thoughts`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	thoughts := []models.DailyThought{}
	for rows.Next() {
		t, err := storage.ScanThought(rows)
		if err != nil {
			return nil, err
		}
		thoughts = append(thoughts, t)
	}
	return thoughts, rows.Err()
}

func (s *Store) GetThoughtForDay(ctx context.Context, day string) (models.DailyThought, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+storage.ThoughtColumns+` FROM daily_thoughts
		WHERE scheduled_day = ? AND active = 1
		ORDER BY created_at DESC, id LIMIT 1`, day)
	t, err := storage.ScanThought(row)
	if err != nil {
		return models.DailyThought{}, storage.NotFound(err, "thought for", day)
	}
	return t, nil
}

func (s *Store) GetLatestThought(ctx context.Context) (models.DailyThought, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+storage.ThoughtColumns+` FROM daily_thoughts
		WHERE active = 1 ORDER BY created_at DESC, id LIMIT 1`)
	t, err := storage.ScanThought(row)
	if err != nil {
		return models.DailyThought{}, storage.NotFound(err, "thought", "latest")
	}
	return t, nil
}
