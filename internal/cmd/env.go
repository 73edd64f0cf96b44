package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/swimlog/internal/config"
	"github.com/sadopc/swimlog/internal/logging"
	"github.com/sadopc/swimlog/internal/practice"
	"github.com/sadopc/swimlog/internal/store"
	"github.com/sadopc/swimlog/internal/store/postgres"
)

// env is everything a command needs once configuration is resolved.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	svc    *practice.Service
	store  *store.Store // nil unless the sqlite driver is selected

	closers []func() error
}

func (e *env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i]())
	}
	return errors.Join(errs...)
}

// distanceUnit is the unit label from the sqlite settings, "m" otherwise.
func (e *env) distanceUnit() string {
	if e.store == nil {
		return "m"
	}
	return e.store.DistanceUnit()
}

// loadConfig resolves the file, then SWIMLOG_* variables, then flags.
func loadConfig(opts *options) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.dbPath != "" {
		cfg.Storage.Driver = config.DriverSQLite
		cfg.Storage.Path = opts.dbPath
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	return cfg, nil
}

// openEnv loads configuration, builds the logger and opens the configured
// store. A quiet env discards logs unless --log-file is set, so they never
// land on a terminal the UI owns.
func openEnv(cmd *cobra.Command, opts *options, quiet bool) (*env, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg}

	var w io.Writer = cmd.ErrOrStderr()
	if quiet {
		w = io.Discard
	}
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		e.closers = append(e.closers, f.Close)
		w = f
	}
	e.logger, err = logging.New(w, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		e.Close()
		return nil, err
	}

	var repo practice.Repository
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pg, err := postgres.Open(cmd.Context(), cfg.Storage.PostgresURL)
		if err != nil {
			e.Close()
			return nil, err
		}
		e.closers = append(e.closers, pg.Close)
		repo = pg
	default:
		s, err := store.New(cfg.Storage.Path)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("open database: %w", err)
		}
		e.closers = append(e.closers, s.Close)
		e.store = s
		repo = s
	}

	e.logger.Debug("storage opened", "driver", cfg.Storage.Driver)
	e.svc = practice.NewService(repo, e.logger)
	return e, nil
}

// parseDateFlag parses an optional YYYY-MM-DD flag value.
func parseDateFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := practice.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("--%s: expected YYYY-MM-DD, got %q", name, value)
	}
	return &d, nil
}

func parseRangeFlags(from, to string) (practice.RangeFilter, error) {
	var f practice.RangeFilter
	var err error
	if f.DateFrom, err = parseDateFlag("from", from); err != nil {
		return f, err
	}
	if f.DateTo, err = parseDateFlag("to", to); err != nil {
		return f, err
	}
	return f, nil
}
