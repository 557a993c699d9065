package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/contactbook/internal/app"
	"github.com/pkordes/contactbook/internal/config"
)

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	databaseURL string
	verbose     bool
}

func rootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   "contactctl",
		Short: "Administer a contact book database",
		Long: `Administer a contact book database.

Examples:
  contactctl migrate up
  contactctl seed --file fixtures.yaml
  contactctl tag contact <contact-id> <tag-id> [<tag-id>...]
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&g.databaseURL, "database-url", os.Getenv("DATABASE_URL"), "Postgres connection string (default $DATABASE_URL)")
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log at debug level to stderr")

	cmd.AddCommand(migrateCmd(g))
	cmd.AddCommand(seedCmd(g))
	cmd.AddCommand(tagCmd(g))
	return cmd
}

// config builds a Postgres configuration from the flags. The CLI always
// targets Postgres: writing to a memory store would be lost on exit.
func (g *globals) config() (config.Config, error) {
	return config.LoadFrom(map[string]string{
		"STORAGE":      config.StoragePostgres,
		"DATABASE_URL": g.databaseURL,
	})
}

func (g *globals) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if g.verbose {
		level = slog.LevelDebug
	}
	return app.NewLogger(w, level)
}

// openApp connects to the database and builds the services.
func (g *globals) openApp(ctx context.Context, stderr io.Writer) (*app.App, error) {
	cfg, err := g.config()
	if err != nil {
		return nil, err
	}
	return app.Open(ctx, cfg, g.logger(stderr))
}
