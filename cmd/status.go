package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"zone25/internal/core/phase"
	"zone25/internal/ui/timerwin"
)

// statusReport is the --json form of `zone25 status`.
type statusReport struct {
	Now              time.Time   `json:"now"`
	Anchor           time.Time   `json:"last_block_finishes_at"`
	Finished         bool        `json:"finished"`
	OnBreak          bool        `json:"on_break"`
	State            phase.State `json:"state"`
	Block            int         `json:"block"`
	RemainingSeconds int64       `json:"remaining_seconds"`
	Progress         []float64   `json:"progress"`
	Summary          string      `json:"summary"`
}

func newStatusReport(snapshot phase.Snapshot) statusReport {
	return statusReport{
		Now:              snapshot.Now,
		Anchor:           snapshot.Anchor,
		Finished:         snapshot.Finished,
		OnBreak:          snapshot.OnBreak,
		State:            snapshot.Status.State,
		Block:            snapshot.Status.Block,
		RemainingSeconds: int64(snapshot.Status.Remaining / time.Second),
		Progress:         snapshot.Progress,
		Summary:          timerwin.Describe(snapshot),
	}
}

func newStatusCmd(options *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current phase and block progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(options)
			if err != nil {
				return err
			}
			defer e.Close()

			store, err := e.openStore()
			if err != nil {
				return err
			}
			scheduler := e.newScheduler(store, nil)
			scheduler.Load(cmd.Context())
			report := newStatusReport(scheduler.Snapshot())

			out := cmd.OutOrStdout()
			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(report)
			}

			fmt.Fprintln(out, report.Summary)
			for i, percent := range report.Progress {
				fmt.Fprintf(out, "  block %d  %5.1f%%\n", i+1, percent)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output as JSON")
	return cmd
}
