package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/habitup/internal/models"
	"github.com/julianstephens/habitup/internal/storage"
)

func (s *Store) AddOwner(ctx context.Context, o models.Owner) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO owners (`+storage.OwnerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		o.ID, strings.ToLower(o.Email), o.Name, o.PasswordHash, o.Role, storage.FormatTime(o.CreatedAt))
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("owner %s: %w", o.Email, storage.ErrConflict)
	}
	return err
}

func (s *Store) GetOwner(ctx context.Context, id string) (models.Owner, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+storage.OwnerColumns+` FROM owners WHERE id = ?`, id)
	o, err := storage.ScanOwner(row)
	if err != nil {
		return models.Owner{}, storage.NotFound(err, "owner", id)
	}
	return o, nil
}

func (s *Store) GetOwnerByEmail(ctx context.Context, email string) (models.Owner, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+storage.OwnerColumns+` FROM owners WHERE email = ?`, strings.ToLower(email))
	o, err := storage.ScanOwner(row)
	if err != nil {
		return models.Owner{}, storage.NotFound(err, "owner", email)
	}
	return o, nil
}

func (s *Store) ListOwners(ctx context.Context) ([]models.Owner, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+storage.OwnerColumns+` FROM owners ORDER BY created_at, email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	owners := []models.Owner{}
	for rows.Next() {
		o, err := storage.ScanOwner(rows)
		if err != nil {
			return nil, err
		}
		owners = append(owners, o)
	}
	return owners, rows.Err()
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
