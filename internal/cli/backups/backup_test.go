package backups

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitup/internal/cli"
	"github.com/julianstephens/habitup/internal/models"
	"github.com/julianstephens/habitup/internal/storage"
	"github.com/julianstephens/habitup/internal/storage/sqlite"
)

func TestBackupCreateListRestore(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	defer store.Close()
	ctx := &cli.Context{Store: store}
	bg := context.Background()

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("list on empty dir failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	mgr, err := ctx.Backups()
	if err != nil {
		t.Fatal(err)
	}
	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}

	owner := models.Owner{ID: "owner-1", Email: "ada@example.com", Name: "Ada", Role: models.RoleUser, CreatedAt: time.Now().UTC()}
	if err := store.AddOwner(bg, owner); err != nil {
		t.Fatal(err)
	}

	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(backups[0].Path), Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if _, err := store.GetOwner(bg, owner.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected owner added after the backup to be gone, got %v", err)
	}

	if err := (&BackupRestoreCmd{BackupFile: "missing.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected error for missing backup")
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}
}
