package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/habitup/internal/cli"
	"github.com/julianstephens/habitup/internal/keyring"
	"github.com/julianstephens/habitup/internal/storage/postgres"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
	Get    KeyringGetCmd    `cmd:"" help:"Show a stored secret (passwords masked)."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove a secret from the OS keyring."`
	Status KeyringStatusCmd `cmd:"" help:"Check keyring availability and stored secrets."`
}

// KeyringSetCmd stores a connection string or token secret in the OS keyring.
type KeyringSetCmd struct {
	Name  string `arg:"" enum:"database-connection,token-secret" help:"Secret to store: database-connection or token-secret."`
	Value string `arg:"" help:"Secret value."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	secret := keyring.Secret(cmd.Name)
	if secret == keyring.ConnectionString {
		if err := postgres.ValidateConnString(cmd.Value); err != nil {
			if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("invalid connection string: %w", err)
			}
			fmt.Println(cli.WarningStyle.Render("⚠️  Warning: Connection string contains embedded credentials."))
			fmt.Println("   It will be stored as-is in the encrypted OS keyring.")
		}
	}

	if err := keyring.Set(secret, cmd.Value); err != nil {
		return err
	}
	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ %s stored in OS keyring", secret)))
	if secret == keyring.ConnectionString {
		fmt.Println("  Use it with --db keyring or HABITUP_DB=keyring")
	}
	return nil
}

type KeyringGetCmd struct {
	Name string `arg:"" enum:"database-connection,token-secret" default:"database-connection" help:"Secret to show."`
}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	secret := keyring.Secret(cmd.Name)
	v, err := keyring.Get(secret)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring. Use 'habitup keyring set' to store one", secret)
		}
		return err
	}
	if secret == keyring.TokenSecret {
		fmt.Println(strings.Repeat("*", 8))
		return nil
	}
	fmt.Println(maskPassword(v))
	return nil
}

type KeyringDeleteCmd struct {
	Name string `arg:"" enum:"database-connection,token-secret" help:"Secret to delete."`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	secret := keyring.Secret(cmd.Name)
	if err := keyring.Delete(secret); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring", secret)
		}
		return err
	}
	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ %s deleted from OS keyring", secret)))
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println(cli.DangerStyle.Render("❌ OS keyring is not available on this system"))
		return keyring.ErrKeyringUnavailable
	}
	fmt.Println("✓ OS keyring is available")
	for _, s := range keyring.Secrets {
		if _, err := keyring.Get(s); err == nil {
			fmt.Printf("✓ %s is stored\n", s)
		} else {
			fmt.Println(cli.MutedStyle.Render(fmt.Sprintf("ℹ No %s stored", s)))
		}
	}
	return nil
}

// maskPassword hides the password of a URL or key=value connection string.
func maskPassword(connStr string) string {
	if scheme, rest, ok := strings.Cut(connStr, "://"); ok {
		if at := strings.LastIndex(rest, "@"); at != -1 {
			userInfo := rest[:at]
			if user, _, hasPass := strings.Cut(userInfo, ":"); hasPass {
				return scheme + "://" + user + ":****" + rest[at:]
			}
		}
		return connStr
	}

	if !strings.Contains(connStr, "password=") {
		return connStr
	}
	parts := strings.Fields(connStr)
	for i, part := range parts {
		if strings.HasPrefix(part, "password=") {
			parts[i] = "password=****"
		}
	}
	return strings.Join(parts, " ")
}
