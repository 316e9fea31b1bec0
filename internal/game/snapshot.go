package game

import (
	"slices"

	"github.com/lox/holdem/poker"
)

// SeatView is a seat as seen by a caller. Hole cards may be hidden.
type SeatView struct {
	SeatState
	PrevPosition Position `json:"prev_position"`
	NextPosition Position `json:"next_position"`
}

// Snapshot is an observable view of a hand.
type Snapshot struct {
	Round          Round                 `json:"round"`
	Pot            int                   `json:"pot"`
	LastBet        int                   `json:"last_bet"`
	NextToAct      Position              `json:"next_to_act"`
	Seats          map[Position]SeatView `json:"seats"`
	CommunityCards []poker.Card          `json:"community_cards"`
	ActionLog      []LogEntry            `json:"action_log,omitempty"`
	Outcome        *Outcome              `json:"outcome,omitempty"`
}

// ViewOption configures a Snapshot.
type ViewOption func(*viewConfig)

type viewConfig struct {
	includeLog bool
	revealAll  bool
	reveal     []Position
}

// WithActionLog includes the action log in the snapshot.
func WithActionLog() ViewOption {
	return func(c *viewConfig) {
		c.includeLog = true
	}
}

// RevealTo limits visible hole cards to the given positions; every other
// seat's cards are hidden, except hands shown down at a contested showdown.
// Without it all hole cards are shown.
func RevealTo(positions ...Position) ViewOption {
	return func(c *viewConfig) {
		c.revealAll = false
		c.reveal = append(c.reveal, positions...)
	}
}

// Snapshot returns the current state of the hand.
func (h *Hand) Snapshot(opts ...ViewOption) Snapshot {
	cfg := &viewConfig{revealAll: true}
	for _, opt := range opts {
		opt(cfg)
	}

	snap := Snapshot{
		Round:          h.round,
		Pot:            h.pot,
		LastBet:        h.lastBet,
		NextToAct:      h.NextToAct(),
		Seats:          make(map[Position]SeatView, len(h.seats)),
		CommunityCards: h.Board(),
		Outcome:        h.Outcome(),
	}
	if cfg.includeLog {
		snap.ActionLog = h.ActionLog()
	}

	shownDown := snap.Outcome != nil && len(snap.Outcome.FinalHands) > 1
	for slot, s := range h.seats {
		view := SeatView{
			SeatState:    s.clone(),
			PrevPosition: h.positionAt(h.ring.prev(slot)),
			NextPosition: h.positionAt(h.ring.next(slot)),
		}
		visible := cfg.revealAll ||
			slices.Contains(cfg.reveal, s.Position) ||
			(shownDown && !s.Folded)
		if !visible {
			view.Hole = [2]poker.Card{poker.Hidden, poker.Hidden}
			if snap.Outcome != nil {
				delete(snap.Outcome.FinalHands, s.Position)
			}
		}
		snap.Seats[s.Position] = view
	}
	return snap
}
