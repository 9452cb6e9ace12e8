package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/habitup/internal/models"
	"github.com/julianstephens/habitup/internal/storage"
)

func (s *Store) UpsertRecord(ctx context.Context, r models.CompletionRecord) (models.CompletionRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO completion_records (`+storage.RecordColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (owner_id, habit_id, day) DO UPDATE SET
			status = EXCLUDED.status,
			time_of_day = EXCLUDED.time_of_day,
			mood = EXCLUDED.mood,
			effort = EXCLUDED.effort,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
		RETURNING `+storage.RecordColumns,
		r.ID, r.OwnerID, r.HabitID, r.Day, r.Status, storage.NullString(r.TimeOfDay),
		storage.NullString(string(r.Mood)), storage.NullInt(r.Effort), storage.NullString(r.Notes),
		storage.FormatTime(r.CreatedAt), storage.FormatTime(r.UpdatedAt))
	return storage.ScanRecord(row)
}

func (s *Store) FetchRecords(ctx context.Context, ownerID, habitID string, f storage.RecordFilter) ([]models.CompletionRecord, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + storage.RecordColumns + ` FROM completion_records WHERE owner_id = $1 AND habit_id = $2`)
	args := []any{ownerID, habitID}
	bind := func(clause string, v any) {
		args = append(args, v)
		fmt.Fprintf(&sb, clause, len(args))
	}
	if f.Since != "" {
		bind(` AND day >= $%d`, f.Since)
	}
	if f.Until != "" {
		bind(` AND day <= $%d`, f.Until)
	}
	sb.WriteString(` ORDER BY day DESC`)
	if f.Limit > 0 {
		bind(` LIMIT $%d`, f.Limit)
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
		) AS dups`).Scan(&n)
	return n, err
}
