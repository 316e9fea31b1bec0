package game

import (
	"github.com/lox/holdem/poker"
)

// Seat is a player's identity and starting stack. It does not change during a hand.
type Seat struct {
	ID    string `json:"id"`
	Stack int    `json:"stack"`
}

// SeatState is the per-hand state of a seat.
type SeatState struct {
	Seat
	Position   Position      `json:"position"`
	Hole       [2]poker.Card `json:"hole"`
	Remaining  int           `json:"remaining"`
	InPot      int           `json:"in_pot"`    // chips committed this round
	Committed  int           `json:"committed"` // chips committed this hand
	Folded     bool          `json:"folded"`
	AllIn      bool          `json:"all_in"`
	LastAction *Action       `json:"last_action,omitempty"`
}

// CanAct reports whether the seat still takes part in betting.
func (s *SeatState) CanAct() bool {
	return !s.Folded && !s.AllIn
}

func (s *SeatState) commit(chips int) {
	s.Remaining -= chips
	s.InPot += chips
	s.Committed += chips
}

// ring tracks which table slots can still act. Slot 0 is the button and
// slots follow deal order. Seats leave the ring when they fold or go all-in.
type ring struct {
	active [MaxSeats]bool
	size   int
}

func newRing(size int) ring {
	r := ring{size: size}
	for i := range size {
		r.active[i] = true
	}
	return r
}

func (r *ring) remove(slot int) {
	r.active[slot] = false
}

// next returns the first active slot after slot, or -1 if none remain.
func (r *ring) next(slot int) int {
	for i := 1; i <= r.size; i++ {
		s := (slot + i) % r.size
		if r.active[s] {
			return s
		}
	}
	return -1
}

// prev returns the first active slot before slot, or -1 if none remain.
func (r *ring) prev(slot int) int {
	for i := 1; i <= r.size; i++ {
		s := (slot - i + r.size) % r.size
		if r.active[s] {
			return s
		}
	}
	return -1
}

func (r *ring) count() int {
	n := 0
	for i := range r.size {
		if r.active[i] {
			n++
		}
	}
	return n
}
