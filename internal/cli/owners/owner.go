package owners

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/habitup/internal/auth"
	"github.com/julianstephens/habitup/internal/cli"
	"github.com/julianstephens/habitup/internal/models"
)

type OwnerCmd struct {
	Add  OwnerAddCmd  `cmd:"" help:"Create an owner account."`
	List OwnerListCmd `cmd:"" help:"List owner accounts."`
}

type OwnerAddCmd struct {
	Email    string `arg:"" help:"Email address."`
	Name     string `help:"Display name (defaults to the email's local part)."`
	Password string `help:"Password for API login. Prompted when omitted." env:"HABITUP_OWNER_PASSWORD"`
	Admin    bool   `help:"Grant the ADMIN role."`
	NoLogin  bool   `help:"Create a CLI-only owner without a password."`
}

func (c *OwnerAddCmd) Run(ctx *cli.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.Email))
	if !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email: %s", c.Email)
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	var hash string
	if !c.NoLogin {
		if c.Password == "" {
			if err := huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&c.Password).
				Run(); err != nil {
				return fmt.Errorf("interactive form error: %w", err)
			}
		}
		h, err := auth.HashPassword(c.Password)
		if err != nil {
			return err
		}
		hash = h
	}

	role := models.RoleUser
	if c.Admin {
		role = models.RoleAdmin
	}
	owner := models.Owner{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := ctx.Store.AddOwner(context.Background(), owner); err != nil {
		return fmt.Errorf("failed to add owner: %w", err)
	}
	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Added %s owner %s", strings.ToLower(string(role)), email)) + cli.MutedStyle.Render(" ("+owner.ID+")"))
	return nil
}

type OwnerListCmd struct{}

func (c *OwnerListCmd) Run(ctx *cli.Context) error {
	owners, err := ctx.Store.ListOwners(context.Background())
	if err != nil {
		return err
	}
	if len(owners) == 0 {
		fmt.Println("No owners found.")
		return nil
	}
	rows := make([][]string, 0, len(owners))
	for _, o := range owners {
		login := "yes"
		if o.PasswordHash == "" {
			login = "no"
		}
		rows = append(rows, []string{o.Email, o.Name, string(o.Role), login, o.CreatedAt.Local().Format("2006-01-02"), o.ID})
	}
	fmt.Println(cli.Table([]string{"Email", "Name", "Role", "Login", "Created", "ID"}, rows))
	return nil
}
