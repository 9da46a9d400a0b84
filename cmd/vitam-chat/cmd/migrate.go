package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/vitam-chat/internal/config"
	"github.com/donaldgifford/vitam-chat/internal/store"
	"github.com/donaldgifford/vitam-chat/pkg/logger"
)

var migrateStatus bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run exchange log database migrations",
	Long: "Apply the bundled exchange log migrations. Migrations are forward-only; " +
		"use --status to list which ones have been applied.",
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateStatus, "status", false, "show applied migrations and exit")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pg, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pg.Close()

	if migrateStatus {
		states, err := pg.MigrationStatuses(ctx)
		if err != nil {
			return fmt.Errorf("reading migration status: %w", err)
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "VERSION\tAPPLIED")
		for _, s := range states {
			applied := "pending"
			if s.AppliedAt != nil {
				applied = s.AppliedAt.Format(time.RFC3339)
			}
			fmt.Fprintf(w, "%s\t%s\n", s.Version, applied)
		}
		return w.Flush()
	}

	log.Info("running migrations", "host", cfg.Database.Host, "database", cfg.Database.Name)

	if err := pg.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	log.Info("migrations complete")
	return nil
}
