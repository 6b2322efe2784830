package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"zone25/internal/core/monitor"
	"zone25/internal/logx"
	"zone25/internal/notify"
	"zone25/internal/ui/timerwin"
)

func newWatchCmd(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow the current run in the terminal",
		Long: `Print every phase change of the current run and deliver its notifications
as terminal lines (with a bell unless terminal_bell is false). The run is
read once at launch; restart watch after starting or stopping a run
elsewhere. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd.OutOrStdout(), options)
		},
	}
}

func runWatch(ctx context.Context, out io.Writer, options *rootOptions) error {
	e, err := loadEnv(options)
	if err != nil {
		return err
	}
	defer e.Close()

	store, err := e.openStore()
	if err != nil {
		return err
	}

	dispatcher := notify.NewDispatcher(notify.NewWriterSender(out, e.settings.TerminalBell), notify.Options{
		Permission: notify.NewToggle(e.settings.Notifications),
		Logger:     e.log.With(logx.String("component", "notify")),
	})
	defer dispatcher.CancelAll()

	scheduler := e.newScheduler(store, dispatcher)
	anchor := scheduler.Load(ctx)
	scheduler.ScheduleNotifications(anchor)

	watcher := monitor.New(scheduler, monitor.Config{TickInterval: e.settings.RefreshInterval})
	events := watcher.Subscribe(8)
	watcher.Start()
	defer watcher.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if event.Type != monitor.EventStateChange {
				continue
			}
			if _, err := fmt.Fprintln(out, timerwin.Describe(event.Snapshot)); err != nil {
				return err
			}
		}
	}
}
