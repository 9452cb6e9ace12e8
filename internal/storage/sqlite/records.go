package sqlite

import (
	"context"
	"strings"

	"github.com/julianstephens/habitup/internal/models"
	"github.com/julianstephens/habitup/internal/storage"
)

func (s *Store) UpsertRecord(ctx context.Context, r models.CompletionRecord) (models.CompletionRecord, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO completion_records (`+storage.RecordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner_id, habit_id, day) DO UPDATE SET
			status = excluded.status,
			time_of_day = excluded.time_of_day,
			mood = excluded.mood,
			effort = excluded.effort,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		r.ID, r.OwnerID, r.HabitID, r.Day, r.Status, storage.NullString(r.TimeOfDay),
		storage.NullString(string(r.Mood)), storage.NullInt(r.Effort), storage.NullString(r.Notes),
		storage.FormatTime(r.CreatedAt), storage.FormatTime(r.UpdatedAt))
	if err != nil {
		return models.CompletionRecord{}, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+storage.RecordColumns+` FROM completion_records
		WHERE owner_id = ? AND habit_id = ? AND day = ?`, r.OwnerID, r.HabitID, r.Day)
	return storage.ScanRecord(row)
}

func (s *Store) FetchRecords(ctx context.Context, ownerID, habitID string, f storage.RecordFilter) ([]models.CompletionRecord, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + storage.RecordColumns + ` FROM completion_records WHERE owner_id = ? AND habit_id = ?`)
	args := []any{ownerID, habitID}
	if f.Since != "" {
		sb.WriteString(` AND day >= ?`)
		args = append(args, f.Since)
	}
	if f.Until != "" {
		sb.WriteString(` AND day <= ?`)
		args = append(args, f.Until)
	}
	sb.WriteString(` ORDER BY day DESC`)
	if f.Limit > 0 {
		sb.WriteString(` LIMIT ?`)
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.CompletionRecord{}
	for rows.Next() {
		r, err := storage.ScanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) CountDuplicateRecords(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM (
			SELECT owner_id, habit_id, day FROM completion_records
			GROUP BY owner_id, habit_id, day HAVING COUNT(*) > 1
		)`).Scan(&n)
	return n, err
}
