package game

import "errors"

// Setup errors.
var (
	ErrSeatCount      = errors.New("unsupported number of seats")
	ErrButtonNotFound = errors.New("button seat id not found in seats")
	ErrDuplicateSeat  = errors.New("duplicate seat id")
	ErrNegativeStack  = errors.New("negative stack")
	ErrNoDeck         = errors.New("deck is required")
)

// Turn order errors.
var (
	ErrNotYourTurn  = errors.New("not this player's turn")
	ErrHandComplete = errors.New("hand is already complete")
)

// Illegal wagers.
var (
	ErrUnknownAction     = errors.New("unknown action")
	ErrNothingToCall     = errors.New("no bet to call")
	ErrCannotCheck       = errors.New("cannot check facing a bet")
	ErrInvalidAmount     = errors.New("bet amount must be positive")
	ErrInsufficientChips = errors.New("bet amount exceeds remaining stack")
	ErrBetTooSmall       = errors.New("bet amount is less than last bet")
	ErrBetEqualsLastBet  = errors.New("bet amount is equal to last bet")
	ErrRaiseTooSmall     = errors.New("bet amount is less than twice the last bet")
)

// ErrSeatNotFound is returned for positions not present at the table.
var ErrSeatNotFound = errors.New("seat not found")
