package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"zone25/internal/core/phase"
	"zone25/internal/platform"
	"zone25/internal/ui/timerwin"
)

func newStartCmd(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start a new run now",
		Long: `Start a new run ending four blocks from now. Notifications are issued by
` + "`zone25 watch`" + ` or the desktop app when launched during the run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runControl(cmd, options, (*phase.Scheduler).Start)
		},
	}
}

func newStopCmd(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the current run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runControl(cmd, options, (*phase.Scheduler).Stop)
		},
	}
}

// runControl applies one state-changing operation and prints the result.
// It holds the desktop app's instance lock so the anchor keeps one writer.
// Notifications are left to long-lived processes; this one exits right away.
func runControl(cmd *cobra.Command, options *rootOptions, operation func(*phase.Scheduler, context.Context) time.Time) error {
	e, err := loadEnv(options)
	if err != nil {
		return err
	}
	defer e.Close()

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			return fmt.Errorf("desktop app is running, use its Start/Stop control: %w", err)
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	store, err := e.openStore()
	if err != nil {
		return err
	}

	scheduler := e.newScheduler(store, nil)
	scheduler.Load(cmd.Context())
	operation(scheduler, cmd.Context())

	_, err = fmt.Fprintln(cmd.OutOrStdout(), timerwin.Describe(scheduler.Snapshot()))
	return err
}
