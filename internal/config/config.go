// Package config resolves runtime settings from flags, the environment, a
// .env file and the OS keyring.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/julianstephens/habitup/internal/constants"
	"github.com/julianstephens/habitup/internal/keyring"
	"github.com/julianstephens/habitup/internal/logger"
	"github.com/julianstephens/habitup/internal/storage"
	"github.com/julianstephens/habitup/internal/storage/postgres"
	"github.com/julianstephens/habitup/internal/storage/sqlite"
)

// KeyringDB tells Resolve to read the PostgreSQL connection string from the OS keyring.
const KeyringDB = "keyring"

// Config is embedded into the CLI; kong fills it from flags and HABITUP_* variables.
type Config struct {
	DB       string `help:"SQLite path, PostgreSQL connection string, or 'keyring'. Connection strings must NOT embed a password." env:"HABITUP_DB" default:"${db}"`
	Timezone string `help:"IANA timezone that decides the calendar day (default: system local)." env:"HABITUP_TIMEZONE"`
	Owner    string `help:"Owner email or id used by CLI commands." env:"HABITUP_OWNER" short:"o"`
	Debug    bool   `help:"Log debug output to stderr." env:"HABITUP_DEBUG"`

	Location *time.Location `kong:"-"`
	// fromKeyring marks a DB value that came from the keyring and may carry a password.
	fromKeyring bool
}

// LoadEnv loads .env files into the process environment without overriding
// variables that are already set. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Resolve expands the database location, pulls keyring-backed values and
// loads the timezone.
func (c *Config) Resolve() error {
	db := strings.TrimSpace(c.DB)
	switch {
	case db == "":
		db = constants.DefaultConfigPath
	case strings.EqualFold(db, KeyringDB):
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			return fmt.Errorf("failed to read connection string from keyring: %w", err)
		}
		db = connStr
		c.fromKeyring = true
	}

	if IsPostgres(db) {
		if !c.fromKeyring {
			if err := postgres.ValidateConnString(db); err != nil {
				return err
			}
		}
	} else {
		expanded, err := ExpandPath(db)
		if err != nil {
			return err
		}
		db = expanded
	}
	c.DB = db

	loc := time.Local
	if c.Timezone != "" {
		l, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
		}
		loc = l
	}
	c.Location = loc
	return nil
}

// IsPostgres reports whether db looks like a PostgreSQL URL.
func IsPostgres(db string) bool {
	return strings.HasPrefix(db, "postgres://") || strings.HasPrefix(db, "postgresql://")
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}

// Dir is where logs and backups live: next to the SQLite file, or the user
// config directory for PostgreSQL.
func (c *Config) Dir() string {
	if !IsPostgres(c.DB) {
		return filepath.Dir(c.DB)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, constants.AppName)
}

// OpenStore builds the provider for the resolved DB. It does not connect.
func (c *Config) OpenStore() storage.Provider {
	if IsPostgres(c.DB) {
		return postgres.New(c.DB)
	}
	return sqlite.NewStore(c.DB)
}

// TokenSecret returns the explicit secret, falling back to the keyring.
func TokenSecret(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	secret, err := keyring.Get(keyring.TokenSecret)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyringUnavailable) {
			logger.Warn("Keyring unavailable while reading token secret", "error", err)
		}
		return "", fmt.Errorf("no token secret: set HABITUP_TOKEN_SECRET or run 'habitup keyring set token-secret': %w", err)
	}
	return secret, nil
}
