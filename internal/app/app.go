package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/griddy/internal/config"
	"github.com/five82/griddy/internal/grid"
	"github.com/five82/griddy/internal/logging"
	"github.com/five82/griddy/internal/netstatus"
	"github.com/five82/griddy/internal/prefs"
	"github.com/five82/griddy/internal/query"
	"github.com/five82/griddy/internal/sched"
	"github.com/five82/griddy/internal/session"
	"github.com/five82/griddy/internal/spreadsheet"
	"github.com/five82/griddy/internal/ui"
)

// Options configure the griddy application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/griddy/prefs.toml
	DocumentID string // overrides the saved document for this run
	Seed       uint64 // zero picks a random seed
	Static     bool   // never contact the spreadsheet API

	// Flags carries command-line overrides for config keys.
	Flags *pflag.FlagSet
}

// Run boots the griddy TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath, opts.Flags)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting griddy",
		zap.String("config", cfg.Source),
		zap.Bool("static", opts.Static || cfg.Static()))

	prefsPath, err := prefs.Resolve(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("resolve prefs path: %w", err)
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warn("could not save default prefs", zap.String("path", prefsPath), zap.Error(err))
	}
	if opts.DocumentID != "" {
		userPrefs.DocumentID = opts.DocumentID
	}

	fetcher := newFetcher(ctx, cfg, opts.Static, logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := sched.NewLoop()
	g := grid.New(grid.Options{
		Rows:        userPrefs.NumRows,
		Cols:        userPrefs.NumCols,
		TypingSpeed: userPrefs.TypingSpeed,
		Palette:     palette(cfg.Colors),
		Scheduler:   loop,
		Seed:        opts.Seed,
		Logger:      logger.Named("grid"),
	})

	model := ui.New(ui.Options{
		Grid:   g,
		Driver: loop,
		Prefs:  userPrefs,
		SavePrefs: func(p prefs.Prefs) error {
			return prefs.Save(prefsPath, p)
		},
		LogPath: cfg.LogFile,
		Logger:  logger,
	})

	sessionOpts := session.Options{
		Target:     model.Target(),
		Scheduler:  loop,
		Notify:     model.Notify,
		Logger:     logger,
		Context:    ctx,
		DocumentID: userPrefs.DocumentID,
		Interval:   cfg.PollInterval,
		Fallback:   fallbackQueries(cfg.QueriesFile, logger),
	}
	if fetcher != nil {
		sessionOpts.Fetcher = fetcher
		sessionOpts.Prober = netstatus.DialProber{Addr: cfg.ProbeAddr}
		sessionOpts.ProbeInterval = cfg.ProbeInterval
	}
	model.AttachSession(session.New(sessionOpts))

	program := ui.NewProgram(ctx, model)

	watcher, err := prefs.NewWatcher(prefsPath, func(p prefs.Prefs) {
		program.Send(ui.PrefsChangedMsg{Prefs: p})
	}, logger)
	if err != nil {
		return fmt.Errorf("watch prefs: %w", err)
	}

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := watcher.Run(gctx); err != nil {
			// The UI keeps running without live reload.
			logger.Warn("prefs watcher stopped", zap.Error(err))
		}
		return nil
	})
	group.Go(func() error {
		defer cancel()
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("run ui: %w", err)
		}
		return nil
	})

	err = group.Wait()
	logger.Info("griddy stopped")
	return err
}

// newFetcher returns the spreadsheet client, or nil to run in static mode.
func newFetcher(ctx context.Context, cfg config.Config, static bool, logger *zap.Logger) spreadsheet.Fetcher {
	if static {
		return nil
	}
	client, err := spreadsheet.NewClient(ctx, spreadsheet.Options{
		APIKey:          cfg.APIKey,
		CredentialsFile: cfg.CredentialsFile,
		Endpoint:        cfg.Endpoint,
	})
	switch {
	case errors.Is(err, spreadsheet.ErrNoCredentials):
		logger.Info("no spreadsheet credentials configured")
		return nil
	case err != nil:
		logger.Warn("spreadsheet client unavailable", zap.Error(err))
		return nil
	}
	return client
}

// fallbackQueries loads the static query list, falling back to the built-in
// sample when no file is configured or it cannot be read.
func fallbackQueries(path string, logger *zap.Logger) *query.List {
	if path == "" {
		return query.Sample()
	}
	list, err := query.Load(path)
	if err != nil {
		logger.Warn("using sample queries", zap.String("path", path), zap.Error(err))
		return query.Sample()
	}
	if list.Len() == 0 {
		logger.Warn("queries file is empty, using sample queries", zap.String("path", path))
		return query.Sample()
	}
	return list
}

func palette(colors []string) []grid.Color {
	out := make([]grid.Color, len(colors))
	for i, c := range colors {
		out[i] = grid.Color(c)
	}
	return out
}
