package main

import (
	"context"
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"

	"zone25/internal/config"
	"zone25/internal/core/monitor"
	"zone25/internal/core/phase"
	"zone25/internal/logx"
	"zone25/internal/notify"
	"zone25/internal/platform"
	"zone25/internal/storage"
	"zone25/internal/ui/preferences"
	"zone25/internal/ui/rings"
	"zone25/internal/ui/timerwin"
	"zone25/internal/ui/tray"
)

func newGUICmd(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Start the desktop app (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd, options)
		},
	}
}

func runGUI(cmd *cobra.Command, options *rootOptions) error {
	e, err := loadEnv(options)
	if err != nil {
		return err
	}
	defer e.Close()
	log := e.log

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Warn("desktop app already running", logx.Err(err))
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()
	log.Debug("instance lock acquired", logx.String("address", guard.Address()))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(rings.Icon(100))

	var store storage.Store
	if e.settings.StorageDriver == preferencesDriver {
		store = storage.NewPreferences(fyneApp.Preferences())
	} else if store, err = e.openStore(); err != nil {
		return err
	}

	permission := notify.NewToggle(e.settings.Notifications)
	dispatcher := notify.NewDispatcher(notify.FyneSender{App: fyneApp}, notify.Options{
		Permission: permission,
		Logger:     log.With(logx.String("component", "notify")),
	})
	defer dispatcher.CancelAll()
	if granted, err := dispatcher.RequestPermission(); err != nil || !granted {
		log.Info("desktop notifications disabled", logx.Err(err))
	}

	scheduler := e.newScheduler(store, dispatcher)
	// Pending notifications live in this process, so re-issue the rest of a
	// run that was started before launch.
	scheduler.ScheduleNotifications(scheduler.Load(ctx))

	watcher := monitor.New(scheduler, monitor.Config{TickInterval: e.settings.RefreshInterval})
	toggle := func() {
		running := scheduler.Toggle(ctx)
		log.Debug("toggled from ui", logx.Bool("running", running))
		watcher.Refresh()
	}

	timer := timerwin.New(fyneApp, scheduler.Phases().Durations().BlocksPerRun, toggle)

	settings := e.settings
	prefsWindow := preferences.New(fyneApp, settings, func(updated config.Settings) {
		enabled := updated.Notifications && !settings.Notifications
		settings = updated
		permission.Set(updated.Notifications)
		if !updated.Notifications {
			dispatcher.CancelAll()
		} else if enabled {
			scheduler.ScheduleNotifications(scheduler.Anchor())
		}
		if err := config.Save(e.configPath, updated); err != nil {
			log.Error("save settings failed", logx.Err(err))
		}
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnToggle:      toggle,
			OnShowTimer:   timer.Show,
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		timer.HideOnClose()
	} else {
		log.Info("system tray unsupported on this platform")
	}

	events := watcher.Subscribe(8)
	go func() {
		for event := range events {
			snapshot := event.Snapshot
			if event.Type == monitor.EventStateChange {
				log.Info("phase changed",
					logx.String("from", string(event.Previous)),
					logx.String("to", string(snapshot.Status.State)),
					logx.Int("block", snapshot.Status.Block),
				)
			}
			fyne.Do(func() {
				render(snapshot, timer, trayManager)
			})
		}
	}()

	watcher.Start()
	defer watcher.Stop()

	timer.Show()
	fyneApp.Run()
	return nil
}

func render(snapshot phase.Snapshot, timer *timerwin.Window, trayManager *tray.Manager) {
	timer.Update(snapshot)
	if trayManager != nil {
		trayManager.SetStatus(timerwin.Describe(snapshot))
		trayManager.SetRunning(!snapshot.Finished)
		trayManager.SetProgress(currentBlockProgress(snapshot))
	}
}

// currentBlockProgress is the progress of the block the run is in, full once
// the run has finished.
func currentBlockProgress(snapshot phase.Snapshot) float64 {
	index := snapshot.Status.Block - 1
	if snapshot.Finished || index < 0 || index >= len(snapshot.Progress) {
		return 100
	}
	return snapshot.Progress[index]
}
