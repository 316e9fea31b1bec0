package game

import (
	"fmt"
	"time"
)

// Round is the betting round of a hand.
type Round int

const (
	Preflop Round = iota
	Flop
	Turn
	River
	Showdown
)

var roundNames = [...]string{"preflop", "flop", "turn", "river", "showdown"}

func (r Round) String() string {
	if r < 0 || int(r) >= len(roundNames) {
		return fmt.Sprintf("Round(%d)", int(r))
	}
	return roundNames[r]
}

func (r Round) MarshalText() ([]byte, error) {
	if r < 0 || int(r) >= len(roundNames) {
		return nil, fmt.Errorf("invalid round %d", int(r))
	}
	return []byte(roundNames[r]), nil
}

func (r *Round) UnmarshalText(b []byte) error {
	for i, name := range roundNames {
		if name == string(b) {
			*r = Round(i)
			return nil
		}
	}
	return fmt.Errorf("unknown round %q", b)
}

// Action is a player action. Bet is also used to raise.
type Action int

const (
	Fold Action = iota
	Check
	Call
	Bet
)

var actionNames = [...]string{"fold", "check", "call", "bet"}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction parses "fold", "check", "call" or "bet". "raise" is accepted as bet.
func ParseAction(s string) (Action, error) {
	if s == "raise" {
		return Bet, nil
	}
	for i, name := range actionNames {
		if name == s {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

func (a Action) MarshalText() ([]byte, error) {
	if a < 0 || int(a) >= len(actionNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAction, int(a))
	}
	return []byte(actionNames[a]), nil
}

func (a *Action) UnmarshalText(b []byte) error {
	parsed, err := ParseAction(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// LogEntry records an accepted action.
type LogEntry struct {
	SeatID   string    `json:"seat_id"`
	Position Position  `json:"position"`
	Round    Round     `json:"round"`
	Action   Action    `json:"action"`
	Amount   int       `json:"amount,omitempty"`
	At       time.Time `json:"at"`
}

// LegalActions describes what the seat to act may do.
type LegalActions struct {
	Position Position
	Actions  []Action
	ToCall   int // chips a call would add
	MinBet   int // smallest legal bet total for the round
	MaxBet   int // all-in bet total for the round
}

// Allows reports whether a is among the legal actions.
func (l LegalActions) Allows(a Action) bool {
	for _, legal := range l.Actions {
		if legal == a {
			return true
		}
	}
	return false
}
