package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/willibrandon/ruledeck/internal/app"
	"github.com/willibrandon/ruledeck/internal/logger"
)

// newPauseCmd creates the pause subcommand
func newPauseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pause <id>",
		Short: "Pause an alert rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setPaused(cmd, args[0], true)
		},
	}
}

// newResumeCmd creates the resume subcommand
func newResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume <id>",
		Short: "Resume a paused alert rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setPaused(cmd, args[0], false)
		},
	}
}

func setPaused(cmd *cobra.Command, arg string, paused bool) error {
	id, err := parseRuleID(arg)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Close()

	backend, err := app.OpenBackend(cfg)
	if err != nil {
		return fmt.Errorf("%s", app.FormatSourceError(err))
	}
	defer backend.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	state, err := backend.Source.SetPaused(ctx, id, paused)
	if err != nil {
		return fmt.Errorf("%s", app.FormatSourceError(err))
	}

	verb := "Resumed"
	if paused {
		verb = "Paused"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s rule %d (state: %s)\n", verb, id, colorizeState(state, state.String()))
	return nil
}

func parseRuleID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid rule id %q", s)
	}
	return id, nil
}
