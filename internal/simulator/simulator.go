// Package simulator plays many random hands concurrently and checks that
// every one of them conserves chips.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/randutil"
	"github.com/lox/holdem/internal/statistics"
	"github.com/lox/holdem/poker"
)

// ErrChipsNotConserved is returned when a hand creates or loses chips.
var ErrChipsNotConserved = errors.New("chips not conserved")

// maxActions bounds a single hand; reaching it means the engine stalled.
const maxActions = 1000

// Config holds configuration for running simulations.
type Config struct {
	Hands   int
	Workers int
	Seats   int // 0 picks a random table size per hand
	Stack   int // average starting stack
	Seed    int64
	Logger  *log.Logger
}

// Simulator runs random-play hands.
type Simulator struct {
	config Config
}

// New creates a simulator, filling in defaults for unset fields.
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.Stack <= 0 {
		config.Stack = 100
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}
}

// Run plays the configured number of hands and returns the merged statistics.
// Hand i always uses the same seed, so results do not depend on scheduling.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Hands <= 0 {
		return nil, fmt.Errorf("invalid hand count: %d", s.config.Hands)
	}
	if s.config.Seats != 0 && game.PositionsFor(s.config.Seats) == nil {
		return nil, fmt.Errorf("%w: %d", game.ErrSeatCount, s.config.Seats)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	var mu sync.Mutex
	total := &statistics.Statistics{}

	for i := range s.config.Hands {
		if gctx.Err() != nil {
			break
		}
		seed := randutil.Child(s.config.Seed, i)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := s.playHand(seed)
			if err != nil {
				return fmt.Errorf("hand %d (seed %d): %w", i, seed, err)
			}
			mu.Lock()
			total.Add(result)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	s.config.Logger.Debug("simulation finished",
		"hands", total.Hands,
		"showdowns", total.Showdowns,
		"mean_pot", total.MeanPot())
	return total, nil
}

// playHand plays one hand with uniformly random legal actions.
func (s *Simulator) playHand(seed int64) (statistics.HandResult, error) {
	rng := randutil.New(seed)

	n := s.config.Seats
	if n == 0 {
		n = game.MinSeats + rng.IntN(game.MaxSeats-game.MinSeats+1)
	}
	seats := make([]game.Seat, n)
	chips := 0
	for i := range seats {
		seats[i] = game.Seat{ID: fmt.Sprintf("p%d", i+1), Stack: 1 + rng.IntN(2*s.config.Stack)}
		chips += seats[i].Stack
	}
	button := seats[rng.IntN(n)].ID

	h, err := game.NewHand(seats, button, poker.NewDeck(rng))
	if err != nil {
		return statistics.HandResult{}, err
	}

	actions := 0
	for !h.IsComplete() {
		if actions >= maxActions {
			return statistics.HandResult{}, fmt.Errorf("hand did not finish after %d actions", actions)
		}
		legal := h.LegalActions()
		if len(legal.Actions) == 0 {
			return statistics.HandResult{}, fmt.Errorf("nobody to act in %s", h.Round())
		}
		action, amount := choose(rng, legal)
		if err := h.Act(legal.Position, action, amount); err != nil {
			return statistics.HandResult{}, fmt.Errorf("legal %s rejected: %w", action, err)
		}
		actions++
		if got := inPlay(h); got != chips {
			return statistics.HandResult{}, fmt.Errorf("%w: %d chips after %s, started with %d", ErrChipsNotConserved, got, action, chips)
		}
	}

	out := h.Outcome()
	final := 0
	for _, stack := range out.NewStacks {
		final += stack
	}
	if final != chips {
		return statistics.HandResult{}, fmt.Errorf("%w: stacks sum to %d, started with %d", ErrChipsNotConserved, final, chips)
	}

	result := statistics.HandResult{
		Seed:     seed,
		Seats:    n,
		Pot:      h.Pot(),
		Reached:  reached(len(h.Board())),
		Showdown: len(out.FinalHands) > 1,
		Winners:  len(out.Winners),
		Actions:  actions,
	}
	if result.Showdown {
		best := out.FinalHands[out.Winners[0]]
		result.Category = best.Value.Category()
	}
	return result, nil
}

// choose picks a legal action; bets are sized uniformly between the minimum
// and the whole stack, with a bias towards smaller bets.
func choose(rng *rand.Rand, legal game.LegalActions) (game.Action, int) {
	action := legal.Actions[rng.IntN(len(legal.Actions))]
	if action != game.Bet {
		return action, 0
	}
	span := legal.MaxBet - legal.MinBet
	if span > 0 && rng.IntN(4) > 0 {
		span /= 4
	}
	return action, legal.MinBet + rng.IntN(span+1)
}

func inPlay(h *game.Hand) int {
	total := h.Pot()
	for _, p := range h.Positions() {
		seat, err := h.Seat(p)
		if err != nil {
			continue
		}
		total += seat.Remaining
	}
	return total
}

func reached(boardCards int) game.Round {
	switch boardCards {
	case 3:
		return game.Flop
	case 4:
		return game.Turn
	case 5:
		return game.River
	default:
		return game.Preflop
	}
}
