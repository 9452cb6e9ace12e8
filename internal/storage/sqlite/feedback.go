package sqlite

import (
	"context"

	"github.com/julianstephens/habitup/internal/models"
	"github.com/julianstephens/habitup/internal/storage"
)

func (s *Store) AddFeedback(ctx context.Context, f models.Feedback) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO feedback (`+storage.FeedbackColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, storage.NullString(f.OwnerID), f.Type, storage.NullString(string(f.TargetType)),
		storage.NullString(f.TargetID), f.Subject, f.Message, storage.NullInt(f.Rating),
		f.Status, f.Anonymous, storage.FormatTime(f.SubmittedAt))
	return err
}

// ListFeedback returns one owner's feedback, or everything when ownerID is empty.
func (s *Store) ListFeedback(ctx context.Context, ownerID string) ([]models.Feedback, error) {
	query := `SELECT ` + storage.FeedbackColumns + ` FROM feedback`
	var args []any
	if ownerID != "" {
		query += ` WHERE owner_id = ?`
		args = append(args, ownerID)
	}
	query += ` ORDER BY submitted_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Feedback{}
	for rows.Next() {
		f, err := storage.ScanFeedback(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, rows.Err()
}
