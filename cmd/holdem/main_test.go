package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/internal/config"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/render"
	"github.com/lox/holdem/internal/store"
)

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Store.Backend = config.BackendMemory

	var out bytes.Buffer
	app := &App{
		ctx:    context.Background(),
		cfg:    cfg,
		logger: log.New(io.Discard),
		out:    &out,
		render: render.New(&out, render.NoColor()),
	}
	t.Cleanup(app.Close)
	return app, &out
}

func onlyHand(t *testing.T, app *App) string {
	t.Helper()
	s, err := app.Store()
	require.NoError(t, err)
	hands, err := s.List(app.ctx)
	require.NoError(t, err)
	require.Len(t, hands, 1)
	return hands[0].ID
}

func TestNewActShow(t *testing.T) {
	t.Parallel()
	app, out := newTestApp(t)

	require.NoError(t, (&NewCmd{Players: []string{"alice", "bob"}, Stack: 50, Seed: 7}).Run(app))
	id := onlyHand(t, app)
	assert.Contains(t, out.String(), "Hand "+id)
	assert.Contains(t, out.String(), "alice")

	require.NoError(t, (&ActCmd{ID: id, Position: "btn", Action: "raise", Amount: 6}).Run(app))
	require.NoError(t, (&ActCmd{ID: id, Position: "BB", Action: "call"}).Run(app))

	s, err := app.Store()
	require.NoError(t, err)
	h, err := s.Get(app.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, game.Flop, h.Round())
	assert.Equal(t, 12, h.Pot())

	out.Reset()
	require.NoError(t, (&ShowCmd{ID: id, As: "BB", JSON: true, Log: true}).Run(app))
	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(out.Bytes(), &snap))
	assert.Equal(t, game.Flop, snap.Round)
	assert.Len(t, snap.CommunityCards, 3)
	assert.Len(t, snap.ActionLog, 2)
	assert.True(t, snap.Seats[game.BTN].Hole[0].IsHidden())
	assert.False(t, snap.Seats[game.BB].Hole[0].IsHidden())
}

func TestNewUsesConfigDefaults(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)
	app.cfg.Table.Seats = 4
	app.cfg.Table.Stack = 30

	require.NoError(t, (&NewCmd{}).Run(app))
	s, err := app.Store()
	require.NoError(t, err)
	h, err := s.Get(app.ctx, onlyHand(t, app))
	require.NoError(t, err)

	assert.Len(t, h.Positions(), 4)
	btn, err := h.Seat(game.BTN)
	require.NoError(t, err)
	assert.Equal(t, "p1", btn.ID)
	assert.Equal(t, 30, btn.Stack)
}

func TestNewRejectsBadTable(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	err := (&NewCmd{Players: []string{"solo"}}).Run(app)
	assert.Error(t, err)
	err = (&NewCmd{Players: []string{"a", "b"}, Button: "c"}).Run(app)
	assert.Error(t, err)
}

func TestActErrors(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)
	require.NoError(t, (&NewCmd{Players: []string{"a", "b"}, Seed: 1}).Run(app))
	id := onlyHand(t, app)

	err := (&ActCmd{ID: id, Position: "BB", Action: "call"}).Run(app)
	assert.ErrorIs(t, err, game.ErrNotYourTurn)

	err = (&ActCmd{ID: id, Position: "dealer", Action: "call"}).Run(app)
	assert.Error(t, err)

	err = (&ActCmd{ID: "01h5n0et5q6mt3v7ms1234abcd", Position: "BTN", Action: "call"}).Run(app)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// A rejected action is not stored.
	s, err := app.Store()
	require.NoError(t, err)
	h, err := s.Get(app.ctx, id)
	require.NoError(t, err)
	assert.Empty(t, h.ActionLog())
}

func TestListAndDelete(t *testing.T) {
	t.Parallel()
	app, out := newTestApp(t)
	require.NoError(t, (&NewCmd{Players: []string{"a", "b"}}).Run(app))
	id := onlyHand(t, app)

	out.Reset()
	require.NoError(t, (&ListCmd{}).Run(app))
	assert.Contains(t, out.String(), id)
	assert.Contains(t, out.String(), "preflop")

	require.NoError(t, (&DeleteCmd{IDs: []string{id}}).Run(app))
	assert.ErrorIs(t, (&DeleteCmd{IDs: []string{id}}).Run(app), store.ErrNotFound)

	out.Reset()
	require.NoError(t, (&ListCmd{}).Run(app))
	assert.Empty(t, out.String())
}

func TestEval(t *testing.T) {
	t.Parallel()
	app, out := newTestApp(t)

	require.NoError(t, (&EvalCmd{Cards: []string{"As", "Ks", "Qs", "Js", "Ts", "2d", "3c"}}).Run(app))
	assert.Contains(t, out.String(), "Royal Flush")

	tests := []struct {
		name  string
		cards []string
	}{
		{"too few", []string{"AsKsQsJs"}},
		{"too many", []string{"AsKsQsJsTs9s8s7s"}},
		{"duplicate", []string{"As As Ks Qs Js"}},
		{"hidden", []string{"XX Ks Qs Js Ts"}},
		{"unparseable", []string{"Zz Ks Qs Js Ts"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := parseEvalCards(tt.cards)
			assert.Error(t, err)
		})
	}
}

func TestSimulate(t *testing.T) {
	t.Parallel()
	app, out := newTestApp(t)

	require.NoError(t, (&SimulateCmd{Hands: 50, Workers: 2, Seats: 3, Stack: 100, Seed: 9}).Run(app))
	assert.Contains(t, out.String(), "Simulation")
	assert.Contains(t, out.String(), "Hands 50")
}

func TestNewAppReadsConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	file := filepath.Join(dir, "holdem.hcl")
	require.NoError(t, os.WriteFile(file, []byte(`
log_level = "debug"
store {
  backend = "memory"
}
table {
  seats = 3
}
`), 0o644))

	var out, errOut bytes.Buffer
	app, err := newApp(context.Background(), file, "", true, &out, &errOut)
	require.NoError(t, err)
	defer app.Close()
	assert.Equal(t, "debug", app.cfg.LogLevel)
	assert.Equal(t, 3, app.cfg.Table.Seats)

	s, err := app.Store()
	require.NoError(t, err)
	assert.IsType(t, &store.Memory{}, s)

	_, err = newApp(context.Background(), file, "loud", true, &out, &errOut)
	assert.Error(t, err)
}

type runnerFunc func(binds ...any) error

func (f runnerFunc) Run(binds ...any) error { return f(binds...) }

func TestRunClosesAppOnError(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "holdem.hcl")
	require.NoError(t, os.WriteFile(file, []byte("store {\n  backend = \"memory\"\n}\n"), 0o644))

	closed := false
	failing := runnerFunc(func(binds ...any) error {
		app := binds[0].(*App)
		app.closers = append(app.closers, func() { closed = true })
		return assert.AnError
	})

	var out, errOut bytes.Buffer
	err := run(&CLI{Config: file, NoColor: true}, failing, &out, &errOut)
	assert.ErrorIs(t, err, assert.AnError)
	assert.True(t, closed)

	err = run(&CLI{Config: file, LogLevel: "loud"}, failing, &out, &errOut)
	assert.Error(t, err)
}

func TestSimulateStackFromConfig(t *testing.T) {
	t.Parallel()
	app, out := newTestApp(t)
	app.cfg.Table.Stack = 40

	cmd := &SimulateCmd{Hands: 10, Workers: 1, Seats: 2, Seed: 3}
	assert.Equal(t, 40, cmd.stack(app))
	require.NoError(t, cmd.Run(app))
	assert.Contains(t, out.String(), "Hands 10")

	cmd.Stack = 70
	assert.Equal(t, 70, cmd.stack(app))
}
