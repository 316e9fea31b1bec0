// Package game implements a single hand of No-Limit Texas Hold'em.
//
// The main type is Hand, which seats the players, deals hole cards, posts the
// blinds and then accepts one action at a time until the hand is won, either
// by everyone else folding or at showdown.
//
// # Basic Usage
//
//	seats := []game.Seat{{ID: "alice", Stack: 100}, {ID: "bob", Stack: 100}}
//	h, err := game.NewHand(seats, "alice", poker.NewDeck(nil))
//	if err != nil {
//	    return err
//	}
//	legal := h.LegalActions()
//	if err := h.Act(legal.Position, game.Call, 0); err != nil {
//	    // the hand is unchanged
//	}
//	if h.IsComplete() {
//	    out := h.Outcome()
//	}
//
// # Bets
//
// The amount passed with Bet is the seat's total for the round, not the
// increment. A raise must at least double the last bet unless it puts the
// seat all-in. Blinds are fixed at 1 and 2 chips.
//
// # Deterministic Testing
//
// Decks take any poker.Permuter, so a seeded *rand.Rand gives a repeatable
// shuffle and poker.NewStackedDeck fixes the exact cards dealt. Hole cards are
// dealt two at a time starting with the button, then the flop, turn and river.
//
//	rng := rand.New(rand.NewPCG(42, 0))
//	h, err := game.NewHand(seats, "alice", poker.NewDeck(rng), game.WithClock(mockClock))
//
// # Persistence
//
// Hand implements json.Marshaler and json.Unmarshaler. The encoding includes
// the undealt deck, so a restored hand continues exactly where it stopped.
// Use Restore to attach a logger or clock to the restored hand.
package game
