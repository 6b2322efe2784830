package main

import (
	"errors"
	"fmt"
	"io"

	"zone25/internal/config"
	"zone25/internal/core/phase"
	"zone25/internal/logx"
	"zone25/internal/storage"
)

// preferencesDriver selects fyne's preference store, which needs a running app.
const preferencesDriver = "preferences"

// env holds what every subcommand builds before doing its work.
type env struct {
	configPath string
	settings   config.Settings
	log        logx.Logger
	closers    []io.Closer
}

func loadEnv(options *rootOptions) (*env, error) {
	settings, err := config.Load(options.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if options.logLevel != "" {
		settings.LogLevel = options.logLevel
	}

	log, closer, err := logx.New(logx.Config{
		Level:   settings.LogLevel,
		Console: true,
		File:    settings.LogFile,
	})
	if err != nil {
		// Commands still run when the log file cannot be opened.
		log = logx.NewConsole(settings.LogLevel)
		log.Warn("log file unavailable, logging to console only",
			logx.String("path", settings.LogFile),
			logx.Err(err),
		)
	}

	return &env{
		configPath: options.configPath,
		settings:   settings,
		log:        log,
		closers:    []io.Closer{closer},
	}, nil
}

// openStore opens the configured store. Outside the desktop app the
// preferences driver falls back to the YAML file at the configured path.
func (e *env) openStore() (storage.Store, error) {
	cfg := e.settings.StorageConfig()
	if cfg.Driver == preferencesDriver {
		e.log.Warn("preferences storage needs the desktop app, using yaml instead")
		cfg.Driver = "yaml"
	}
	store, err := storage.Open(cfg, e.log.With(logx.String("component", "storage")))
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	e.closers = append(e.closers, store)
	return store, nil
}

func (e *env) newScheduler(store phase.Store, notifier phase.Notifier) *phase.Scheduler {
	return phase.NewScheduler(phase.Default(), store, notifier, phase.Options{
		Logger: e.log.With(logx.String("component", "scheduler")),
	})
}

func (e *env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}
