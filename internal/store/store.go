// Package store persists hands between CLI invocations. Hands are kept in
// their JSON encoding, so every backend returns an independent copy.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/gameid"
)

// ErrNotFound is returned when no hand has the requested id.
var ErrNotFound = errors.New("hand not found")

// Store is a keyed collection of hands.
type Store interface {
	Get(ctx context.Context, id string) (*game.Hand, error)
	Create(ctx context.Context, h *game.Hand) (string, error)
	Update(ctx context.Context, id string, h *game.Hand) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Summary, error)
}

// Summary describes a stored hand without decoding it.
type Summary struct {
	ID        string     `json:"id"`
	Round     game.Round `json:"round"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Option configures a store.
type Option func(*options)

type options struct {
	clock    quartz.Clock
	ids      *gameid.Generator
	handOpts []game.HandOption
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.clock == nil {
		o.clock = quartz.NewReal()
	}
	if o.ids == nil {
		o.ids = gameid.NewGenerator(o.clock, nil)
	}
	return o
}

// WithClock sets the clock used for ids and update times.
func WithClock(clock quartz.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithIDGenerator sets how new hand ids are made.
func WithIDGenerator(g *gameid.Generator) Option {
	return func(o *options) {
		o.ids = g
	}
}

// WithHandOptions passes options to every hand the store restores.
func WithHandOptions(opts ...game.HandOption) Option {
	return func(o *options) {
		o.handOpts = append(o.handOpts, opts...)
	}
}

func (o *options) encode(h *game.Hand) ([]byte, error) {
	if h == nil {
		return nil, errors.New("nil hand")
	}
	data, err := json.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("encoding hand: %w", err)
	}
	return data, nil
}

func (o *options) decode(id string, data []byte) (*game.Hand, error) {
	h, err := game.Restore(data, o.handOpts...)
	if err != nil {
		return nil, fmt.Errorf("hand %s: %w", id, err)
	}
	return h, nil
}

func notFound(id string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}
