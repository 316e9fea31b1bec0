package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/config"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/render"
	"github.com/lox/holdem/internal/store"
)

// App carries what every command needs.
type App struct {
	ctx    context.Context
	cfg    *config.Config
	logger *log.Logger
	out    io.Writer
	render *render.Renderer

	store   store.Store
	closers []func()
}

func newApp(ctx context.Context, configFile, logLevel string, noColor bool, out, errOut io.Writer) (*App, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.LookupEnv)
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", configFile, err)
	}

	logger := log.NewWithOptions(errOut, log.Options{
		Level:           cfg.Level(),
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "holdem",
	})

	var opts []render.Option
	if noColor {
		opts = append(opts, render.NoColor())
	}
	return &App{
		ctx:    ctx,
		cfg:    cfg,
		logger: logger,
		out:    out,
		render: render.New(out, opts...),
	}, nil
}

// Store opens the configured backend on first use.
func (a *App) Store() (store.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	opts := []store.Option{store.WithHandOptions(game.WithLogger(a.logger))}

	switch a.cfg.Store.Backend {
	case config.BackendMemory:
		a.store = store.NewMemory(opts...)
	case config.BackendFile:
		s, err := store.NewFile(a.cfg.Store.Dir, opts...)
		if err != nil {
			return nil, err
		}
		a.store = s
	case config.BackendPostgres:
		s, err := store.OpenPostgres(a.ctx, a.cfg.Store.DSN, opts...)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, s.Close)
		if err := s.Migrate(a.ctx); err != nil {
			return nil, err
		}
		a.store = s
	default:
		return nil, fmt.Errorf("unknown store backend %q", a.cfg.Store.Backend)
	}
	a.logger.Debug("store opened", "backend", a.cfg.Store.Backend)
	return a.store, nil
}

// Close releases anything the commands opened.
func (a *App) Close() {
	for _, c := range a.closers {
		c()
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
