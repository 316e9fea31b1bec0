package game

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lox/holdem/poker"
)

// ErrCorruptHand is returned when serialized hand state is inconsistent.
var ErrCorruptHand = errors.New("corrupt hand state")

type handJSON struct {
	Seats          []*SeatState `json:"seats"`
	Round          Round        `json:"round"`
	Pot            int          `json:"pot"`
	LastBet        int          `json:"last_bet"`
	NextToAct      Position     `json:"next_to_act"`
	ActionLog      []LogEntry   `json:"action_log"`
	CommunityCards []poker.Card `json:"community_cards"`
	Outcome        *Outcome     `json:"outcome,omitempty"`
	Deck           *poker.Deck  `json:"deck"`
}

// MarshalJSON encodes the full state of the hand, including the undealt
// deck, so that it can be restored and continued.
func (h *Hand) MarshalJSON() ([]byte, error) {
	return json.Marshal(handJSON{
		Seats:          h.seats,
		Round:          h.round,
		Pot:            h.pot,
		LastBet:        h.lastBet,
		NextToAct:      h.NextToAct(),
		ActionLog:      h.actionLog,
		CommunityCards: h.board,
		Outcome:        h.outcome,
		Deck:           h.deck,
	})
}

// UnmarshalJSON decodes a hand written by MarshalJSON. The restored hand
// uses a silent logger and the real clock; use Restore to set them.
func (h *Hand) UnmarshalJSON(data []byte) error {
	restored, err := Restore(data)
	if err != nil {
		return err
	}
	*h = *restored
	return nil
}

// Restore decodes and validates a hand written by MarshalJSON.
func Restore(data []byte, opts ...HandOption) (*Hand, error) {
	var hj handJSON
	if err := json.Unmarshal(data, &hj); err != nil {
		return nil, fmt.Errorf("decoding hand: %w", err)
	}
	if err := hj.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptHand, err)
	}

	cfg := newHandConfig(opts)
	h := &Hand{
		seats:     hj.Seats,
		ring:      newRing(len(hj.Seats)),
		round:     hj.Round,
		pot:       hj.Pot,
		lastBet:   hj.LastBet,
		nextToAct: -1,
		actionLog: hj.ActionLog,
		board:     hj.CommunityCards,
		outcome:   hj.Outcome,
		deck:      hj.Deck,
		logger:    cfg.logger,
		clock:     cfg.clock,
	}
	if h.board == nil {
		h.board = []poker.Card{}
	}
	for slot, s := range h.seats {
		if !s.CanAct() {
			h.ring.remove(slot)
		}
	}
	if hj.NextToAct != NoPosition {
		h.nextToAct, _ = h.slotOf(hj.NextToAct)
	}
	return h, nil
}

var boardSizes = map[Round][]int{
	Preflop:  {0},
	Flop:     {3},
	Turn:     {4},
	River:    {5},
	Showdown: {0, 3, 4, 5},
}

func (hj *handJSON) validate() error {
	positions := PositionsFor(len(hj.Seats))
	if positions == nil {
		return fmt.Errorf("%w: %d", ErrSeatCount, len(hj.Seats))
	}
	sizes, ok := boardSizes[hj.Round]
	if !ok {
		return fmt.Errorf("unknown round %d", int(hj.Round))
	}
	if hj.Deck == nil {
		return ErrNoDeck
	}

	seen := make(map[poker.Card]bool)
	useCard := func(c poker.Card) error {
		if !c.Valid() {
			return fmt.Errorf("invalid card %d", int(c))
		}
		if seen[c] {
			return fmt.Errorf("card %s appears twice", c)
		}
		seen[c] = true
		return nil
	}

	ids := make(map[string]bool, len(hj.Seats))
	committed, maxInPot := 0, 0
	var nextSeat *SeatState
	for slot, s := range hj.Seats {
		if s == nil {
			return fmt.Errorf("seat %d is missing", slot)
		}
		if s.Position != positions[slot] {
			return fmt.Errorf("seat %d has position %s, want %s", slot, s.Position, positions[slot])
		}
		if ids[s.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateSeat, s.ID)
		}
		ids[s.ID] = true
		if s.Remaining < 0 || s.InPot < 0 || s.InPot > s.Committed {
			return fmt.Errorf("seat %s has inconsistent chips", s.Position)
		}
		if s.Stack != s.Remaining+s.Committed {
			return fmt.Errorf("seat %s: stack %d != remaining %d + committed %d",
				s.Position, s.Stack, s.Remaining, s.Committed)
		}
		for _, c := range s.Hole {
			if err := useCard(c); err != nil {
				return fmt.Errorf("seat %s: %w", s.Position, err)
			}
		}
		committed += s.Committed
		maxInPot = max(maxInPot, s.InPot)
		if s.Position == hj.NextToAct {
			nextSeat = s
		}
	}
	if hj.Pot != committed {
		return fmt.Errorf("pot %d != committed chips %d", hj.Pot, committed)
	}
	if hj.LastBet < maxInPot {
		return fmt.Errorf("last bet %d below a seat's %d in the pot", hj.LastBet, maxInPot)
	}

	boardOK := false
	for _, n := range sizes {
		boardOK = boardOK || len(hj.CommunityCards) == n
	}
	if !boardOK {
		return fmt.Errorf("%d community cards on the %s", len(hj.CommunityCards), hj.Round)
	}
	for _, c := range hj.CommunityCards {
		if err := useCard(c); err != nil {
			return fmt.Errorf("board: %w", err)
		}
	}

	undealt := hj.Deck.Undealt()
	for _, c := range undealt {
		if seen[c] {
			return fmt.Errorf("card %s is both dealt and in the deck", c)
		}
	}
	if need := 5 - len(hj.CommunityCards); hj.Round != Showdown && len(undealt) < need {
		return fmt.Errorf("deck has %d cards left, the board needs %d", len(undealt), need)
	}

	if hj.NextToAct != NoPosition {
		if nextSeat == nil {
			return fmt.Errorf("%w: next to act %s", ErrSeatNotFound, hj.NextToAct)
		}
		if !nextSeat.CanAct() {
			return fmt.Errorf("next to act %s cannot act", hj.NextToAct)
		}
	}

	if (hj.Round == Showdown) != (hj.Outcome != nil) {
		return fmt.Errorf("outcome present %t in round %s", hj.Outcome != nil, hj.Round)
	}
	if hj.Round == Showdown && hj.NextToAct != NoPosition {
		return fmt.Errorf("next to act %s after showdown", hj.NextToAct)
	}
	return nil
}
