package main

import (
	"time"

	"github.com/lox/holdem/internal/simulator"
)

type SimulateCmd struct {
	Hands   int   `short:"n" help:"Number of hands (default from config)"`
	Workers int   `short:"w" help:"Hands played concurrently (default from config)"`
	Seats   int   `help:"Seats per hand, 0 for a random table size"`
	Stack   int   `help:"Average starting stack (default from config)"`
	Seed    int64 `help:"Seed for the run (default from config)"`
}

func (c *SimulateCmd) stack(app *App) int {
	if c.Stack > 0 {
		return c.Stack
	}
	return app.cfg.Table.Stack
}

func (c *SimulateCmd) Run(app *App) error {
	cfg := simulator.Config{
		Hands:   app.cfg.Simulate.Hands,
		Workers: app.cfg.Simulate.Workers,
		Seats:   c.Seats,
		Stack:   c.stack(app),
		Seed:    app.cfg.Simulate.Seed,
		Logger:  app.logger,
	}
	if c.Hands > 0 {
		cfg.Hands = c.Hands
	}
	if c.Workers > 0 {
		cfg.Workers = c.Workers
	}
	if c.Seed != 0 {
		cfg.Seed = c.Seed
	}

	start := time.Now()
	stats, err := simulator.New(cfg).Run(app.ctx)
	if err != nil {
		return err
	}
	app.logger.Info("simulation complete", "hands", stats.Hands, "seed", cfg.Seed, "elapsed", time.Since(start).Round(time.Millisecond))
	app.printf("%s", app.render.Statistics(stats))
	return nil
}
