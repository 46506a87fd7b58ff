package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/mealtrack/internal/cli"
	"github.com/julianstephens/mealtrack/internal/config"
	"github.com/julianstephens/mealtrack/internal/keyring"
	"github.com/julianstephens/mealtrack/internal/storage/postgres"
)

// ConnectionSetCmd stores a PostgreSQL connection string in the OS keyring.
type ConnectionSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in the keyring."`
}

func (cmd *ConnectionSetCmd) Run(ctx *cli.Context) error {
	connStr := strings.TrimSpace(cmd.ConnectionString)
	if !postgres.IsConnString(connStr) && !strings.Contains(connStr, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if _, err := postgres.ValidateConnString(connStr); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// The keyring is encrypted, so a password there is acceptable
		ctx.Printf("%s Connection string contains embedded credentials.\n", cli.WarnStyle.Render("⚠"))
		ctx.Println("   It will be stored as-is in the OS keyring.")
	}

	if err := keyring.SetConnectionString(connStr); err != nil {
		return err
	}
	ctx.Printf("%s Connection string stored in OS keyring\n", cli.SuccessStyle.Render("✓"))
	return nil
}

type ConnectionClearCmd struct{}

func (cmd *ConnectionClearCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}
	ctx.Printf("%s Connection string deleted from OS keyring\n", cli.SuccessStyle.Render("✓"))
	return nil
}

type ConnectionStatusCmd struct{}

func (cmd *ConnectionStatusCmd) Run(ctx *cli.Context) error {
	if keyring.IsAvailable() {
		ctx.Printf("%s OS keyring is available\n", cli.SuccessStyle.Render("✓"))
	} else {
		ctx.Printf("%s OS keyring is not available on this system\n", cli.WarnStyle.Render("⚠"))
	}

	connStr, source, err := ctx.Config.ResolveConnection("")
	if err != nil {
		return err
	}
	if source == config.SourceNone {
		ctx.Printf("Using SQLite database: %s\n", ctx.Config.DBPath)
		return nil
	}
	ctx.Printf("Using PostgreSQL from %s: %s\n", source, MaskPassword(connStr))
	return nil
}

// MaskPassword hides a password in URL or DSN connection strings.
func MaskPassword(connStr string) string {
	if postgres.IsConnString(connStr) {
		scheme, rest, _ := strings.Cut(connStr, "://")
		if at := strings.LastIndex(rest, "@"); at != -1 {
			userInfo := rest[:at]
			if user, _, ok := strings.Cut(userInfo, ":"); ok {
				return scheme + "://" + user + ":****" + rest[at:]
			}
		}
		return connStr
	}

	parts := strings.Fields(connStr)
	for i, part := range parts {
		if k, _, ok := strings.Cut(part, "="); ok && strings.EqualFold(k, "password") {
			parts[i] = k + "=****"
		}
	}
	return strings.Join(parts, " ")
}
