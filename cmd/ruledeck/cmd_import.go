package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/willibrandon/ruledeck/internal/logger"
	"github.com/willibrandon/ruledeck/internal/storage/sqlite"
)

// newImportCmd creates the import subcommand
func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load alert rules from a YAML seed file into the local database",
		Long: `Load alert rules from a YAML seed file into the local database used by
the sqlite source. Rules with an existing id are replaced.

Example seed file:

  rules:
    - id: 1
      name: High CPU
      dashboard_uri: db/servers
      panel_id: 2
      state: alerting
      new_state_date: 2024-03-01T12:00:00Z
      eval_matches:
        - metric: cpu
          value: 95`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := sqlite.ParseSeedFile(args[0])
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Close()

			db, err := sqlite.Open(cfg.Storage.Path)
			if err != nil {
				return fmt.Errorf("open rule database: %w", err)
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			store := sqlite.NewRuleStore(db)
			if err := store.Upsert(ctx, rules); err != nil {
				return fmt.Errorf("import rules: %w", err)
			}
			total, err := store.Count(ctx)
			if err != nil {
				return err
			}

			logger.Info("import: rules loaded", "file", args[0], "count", len(rules))
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s rules into %s (%s total)\n",
				humanize.Comma(int64(len(rules))), db.Path(), humanize.Comma(int64(total)))
			return nil
		},
	}
}
