package game

import (
	"maps"
	"slices"

	"github.com/lox/holdem/poker"
)

// Outcome is the result of a finished hand.
type Outcome struct {
	// FinalHands holds every non-folded seat's cards and, once the board
	// has at least three cards, its evaluated hand.
	FinalHands map[Position]poker.MadeHand `json:"final_hands"`
	Winners    []Position                  `json:"winners"`
	Winnings   map[Position]int            `json:"winnings"`
	NewStacks  map[Position]int            `json:"new_stacks"`
}

// IsWinner reports whether p won at least part of the pot.
func (o *Outcome) IsWinner(p Position) bool {
	return slices.Contains(o.Winners, p)
}

func (o *Outcome) clone() *Outcome {
	return &Outcome{
		FinalHands: maps.Clone(o.FinalHands),
		Winners:    slices.Clone(o.Winners),
		Winnings:   maps.Clone(o.Winnings),
		NewStacks:  maps.Clone(o.NewStacks),
	}
}
