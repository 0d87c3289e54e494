package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexisbeaulieu97/tradeboard/internal/config"
	"github.com/alexisbeaulieu97/tradeboard/internal/logger"
	"github.com/alexisbeaulieu97/tradeboard/internal/storage"
	"github.com/alexisbeaulieu97/tradeboard/internal/viewstate"
)

// AppContext bundles long-lived services created at startup.
type AppContext struct {
	ConfigPath string
	Config     *config.Config
	Log        *logger.Logger
	Backend    storage.Storage
	Store      *viewstate.Store
	// Notice explains a degraded startup, such as falling back to memory.
	Notice string
}

type appOptions struct {
	// logFile sends logs to the configured rotating file. The dashboard owns
	// the terminal; other commands log to stderr.
	logFile bool
	stderr  io.Writer
	// fallback opens the memory backend when the configured one fails.
	fallback bool
}

// loadConfig reads the settings file and applies flag overrides.
func loadConfig(flags *rootFlags) (string, *config.Config, error) {
	path := flags.configPath
	if strings.TrimSpace(path) == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return path, nil, err
	}

	if flags.storage != "" {
		backend := strings.ToLower(strings.TrimSpace(flags.storage))
		if !storage.IsBackend(backend) {
			return path, nil, fmt.Errorf("unknown storage backend %q (expected one of %s)", flags.storage, strings.Join(storage.Backends, ", "))
		}
		if backend != cfg.Storage.Backend {
			cfg.Storage.Backend = backend
			cfg.Storage.Path = config.DefaultStoragePath(backend)
		}
	}
	if flags.storagePath != "" {
		cfg.Storage.Path = flags.storagePath
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.verbose {
		cfg.Log.Level = "debug"
	}

	return path, cfg, nil
}

func newAppContext(flags *rootFlags, opts appOptions) (*AppContext, error) {
	path, cfg, err := loadConfig(flags)
	if err != nil {
		return nil, newCommandError("start", "loading settings from "+path, err, "Fix the settings file or run 'tradeboard validate' for details.")
	}

	logOpts := logger.Options{Level: cfg.Log.Level, HumanReadable: true, Writer: opts.stderr}
	if opts.logFile {
		logOpts.File = cfg.Log.File
		logOpts.MaxSizeMB = cfg.Log.MaxSizeMB
		logOpts.MaxBackups = cfg.Log.MaxBackups
		logOpts.MaxAgeDays = cfg.Log.MaxAgeDays
		logOpts.Compress = cfg.Log.Compress
	} else if !flags.verbose && flags.logLevel == "" {
		logOpts.Level = "warn"
	}
	log, err := logger.New(logOpts)
	if err != nil {
		return nil, newCommandError("start", "creating logger", err, "Use one of debug, info, warn or error for --log-level.")
	}

	app := &AppContext{ConfigPath: path, Config: cfg, Log: log}

	backend, err := storage.Open(storage.Options{
		Backend:    cfg.Storage.Backend,
		Path:       cfg.Storage.Path,
		QuotaBytes: cfg.Storage.QuotaBytes,
	})
	if err != nil {
		if !opts.fallback {
			return nil, newCommandError("start", "opening "+cfg.Storage.Backend+" storage", err, "Check --storage-path or pick another backend with --storage.")
		}
		log.Error(err, "falling back to memory storage")
		backend = storage.NewMemory(0)
		app.Notice = fmt.Sprintf("View state storage is unavailable (%v); changes will not be kept after exit.", err)
	}

	app.Backend = backend
	app.Store = viewstate.New(backend, log)
	log.WithFields(map[string]any{"backend": cfg.Storage.Backend, "path": cfg.Storage.Path}).Debug("storage opened")
	return app, nil
}

// Close releases the storage backend.
func (a *AppContext) Close() error {
	if a == nil || a.Backend == nil {
		return nil
	}
	return a.Backend.Close()
}
