package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/willibrandon/ruledeck/internal/logger"
	"github.com/willibrandon/ruledeck/internal/storage/sqlite"
)

// newHistoryCmd creates the history subcommand
func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history <id>",
		Short: "Show pause/resume history of a rule",
		Long: `Show the recorded state transitions of a rule in the local database,
newest first. Transitions are recorded for the sqlite source.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRuleID(args[0])
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

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			events, err := sqlite.NewRuleStore(db).GetHistoryForRule(ctx, id, limit)
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(events)
			}

			if len(events) == 0 {
				fmt.Fprintf(out, "No history for rule %d\n", id)
				return nil
			}
			now := time.Now()
			for _, e := range events {
				fmt.Fprintf(out, "%s  %-8s %-22s (%s)\n",
					e.OccurredAt.Local().Format("2006-01-02 15:04:05"),
					e.Reason,
					colorizeState(e.NewState, e.StateTransition()),
					humanize.RelTime(e.OccurredAt, now, "ago", "from now"))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of events (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	return cmd
}
