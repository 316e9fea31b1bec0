package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/randutil"
)

type NewCmd struct {
	Players []string `arg:"" optional:"" help:"Player ids in seat order (default p1..pN)"`
	Seats   int      `short:"n" help:"Number of seats when no players are given (default from config)"`
	Stack   int      `short:"s" help:"Starting stack for every player (default from config)"`
	Button  string   `short:"b" help:"Player id with the button (default the first player)"`
	Seed    int64    `help:"Seed for a reproducible shuffle (0 for a secure shuffle)"`
}

func (c *NewCmd) seats(app *App) []game.Seat {
	ids := c.Players
	if len(ids) == 0 {
		n := c.Seats
		if n == 0 {
			n = app.cfg.Table.Seats
		}
		for i := range n {
			ids = append(ids, fmt.Sprintf("p%d", i+1))
		}
	}
	stack := c.Stack
	if stack == 0 {
		stack = app.cfg.Table.Stack
	}
	seats := make([]game.Seat, len(ids))
	for i, id := range ids {
		seats[i] = game.Seat{ID: id, Stack: stack}
	}
	return seats
}

func (c *NewCmd) Run(app *App) error {
	seats := c.seats(app)
	button := c.Button
	if button == "" && len(seats) > 0 {
		button = seats[0].ID
	}

	h, err := game.NewHand(seats, button, randutil.Deck(c.Seed), game.WithLogger(app.logger))
	if err != nil {
		return err
	}
	s, err := app.Store()
	if err != nil {
		return err
	}
	id, err := s.Create(app.ctx, h)
	if err != nil {
		return err
	}
	app.logger.Info("hand created", "id", id, "seats", len(seats), "button", button)
	app.printf("%s", app.render.Snapshot(id, h.Snapshot()))
	return nil
}

type ActCmd struct {
	ID       string `arg:"" help:"Hand id"`
	Position string `arg:"" help:"Position acting (e.g. BTN, SB, UTG+1)"`
	Action   string `arg:"" enum:"fold,check,call,bet,raise" help:"Action (fold|check|call|bet|raise)"`
	Amount   int    `arg:"" optional:"" help:"Total bet for the round, for bet and raise"`
}

func (c *ActCmd) Run(app *App) error {
	pos, err := game.ParsePosition(strings.ToUpper(c.Position))
	if err != nil {
		return err
	}
	action, err := game.ParseAction(c.Action)
	if err != nil {
		return err
	}

	s, err := app.Store()
	if err != nil {
		return err
	}
	h, err := s.Get(app.ctx, c.ID)
	if err != nil {
		return err
	}
	if err := h.Act(pos, action, c.Amount); err != nil {
		return err
	}
	if err := s.Update(app.ctx, c.ID, h); err != nil {
		return err
	}
	app.logger.Info("action applied", "id", c.ID, "position", pos, "action", action, "round", h.Round())
	app.printf("%s", app.render.Snapshot(c.ID, h.Snapshot()))
	return nil
}

type ShowCmd struct {
	ID   string `arg:"" help:"Hand id"`
	As   string `help:"Only reveal hole cards visible to this position"`
	Log  bool   `short:"l" help:"Include the action log"`
	JSON bool   `help:"Print the snapshot as JSON"`
}

func (c *ShowCmd) Run(app *App) error {
	var opts []game.ViewOption
	if c.As != "" {
		pos, err := game.ParsePosition(strings.ToUpper(c.As))
		if err != nil {
			return err
		}
		opts = append(opts, game.RevealTo(pos))
	}
	if c.Log {
		opts = append(opts, game.WithActionLog())
	}

	s, err := app.Store()
	if err != nil {
		return err
	}
	h, err := s.Get(app.ctx, c.ID)
	if err != nil {
		return err
	}
	snap := h.Snapshot(opts...)

	if c.JSON {
		enc := json.NewEncoder(app.out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	app.printf("%s", app.render.Snapshot(c.ID, snap))
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(app *App) error {
	s, err := app.Store()
	if err != nil {
		return err
	}
	hands, err := s.List(app.ctx)
	if err != nil {
		return err
	}
	for _, h := range hands {
		app.printf("%s  %-8s  %s\n", h.ID, h.Round, h.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}

type DeleteCmd struct {
	IDs []string `arg:"" name:"id" help:"Hand ids"`
}

func (c *DeleteCmd) Run(app *App) error {
	s, err := app.Store()
	if err != nil {
		return err
	}
	for _, id := range c.IDs {
		if err := s.Delete(app.ctx, id); err != nil {
			return err
		}
		app.logger.Info("hand deleted", "id", id)
	}
	return nil
}
