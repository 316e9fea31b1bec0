package poker

import (
	crand "crypto/rand"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"slices"
)

// ErrDeckEmpty is returned when drawing from an exhausted deck.
var ErrDeckEmpty = errors.New("no cards left in the deck")

// Permuter provides a random permutation of [0, n). *rand.Rand satisfies it.
type Permuter interface {
	Perm(n int) []int
}

// cryptoSource feeds math/rand/v2 from crypto/rand.
type cryptoSource struct{}

func (cryptoSource) Uint64() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic("crypto/rand: " + err.Error())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// SecurePermuter returns a Permuter backed by the operating system's CSPRNG.
func SecurePermuter() Permuter {
	return rand.New(cryptoSource{})
}

// Deck is a standard 52-card deck dealt from the top.
type Deck struct {
	cards []Card
	next  int
}

// NewDeck creates a deck shuffled by p. A nil p uses SecurePermuter.
func NewDeck(p Permuter) *Deck {
	if p == nil {
		p = SecurePermuter()
	}
	perm := p.Perm(DeckSize)
	if len(perm) != DeckSize {
		panic(fmt.Sprintf("permuter returned %d indexes, want %d", len(perm), DeckSize))
	}
	cards := make([]Card, DeckSize)
	for i, id := range perm {
		cards[i] = Card(id)
	}
	return &Deck{cards: cards}
}

// NewStackedDeck returns a deck whose first cards are top, in order, followed
// by every other card in id order. It panics on invalid or repeated cards.
func NewStackedDeck(top ...Card) *Deck {
	var seen [DeckSize]bool
	cards := make([]Card, 0, DeckSize)
	for _, c := range top {
		if !c.Valid() {
			panic(fmt.Sprintf("invalid card %d in stacked deck", int(c)))
		}
		if seen[c] {
			panic(fmt.Sprintf("duplicate card %s in stacked deck", c))
		}
		seen[c] = true
		cards = append(cards, c)
	}
	for id := range DeckSize {
		if !seen[id] {
			cards = append(cards, Card(id))
		}
	}
	return &Deck{cards: cards}
}

// Draw deals the top card.
func (d *Deck) Draw() (Card, error) {
	if d.next >= len(d.cards) {
		return Hidden, ErrDeckEmpty
	}
	c := d.cards[d.next]
	d.next++
	return c, nil
}

// Deal deals n cards from the top. Nothing is dealt if fewer than n remain.
func (d *Deck) Deal(n int) ([]Card, error) {
	if d.next+n > len(d.cards) {
		return nil, fmt.Errorf("deal %d with %d remaining: %w", n, d.Remaining(), ErrDeckEmpty)
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

// Undealt returns the cards still to be dealt, top first.
func (d *Deck) Undealt() []Card {
	return slices.Clone(d.cards[d.next:])
}

type deckJSON struct {
	Cards []Card `json:"cards"`
	Next  int    `json:"next"`
}

// MarshalJSON encodes the full card order and the draw position.
func (d *Deck) MarshalJSON() ([]byte, error) {
	return json.Marshal(deckJSON{Cards: d.cards, Next: d.next})
}

// UnmarshalJSON restores a deck written by MarshalJSON.
func (d *Deck) UnmarshalJSON(b []byte) error {
	var raw deckJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw.Cards) != DeckSize {
		return fmt.Errorf("deck has %d cards, want %d", len(raw.Cards), DeckSize)
	}
	var seen [DeckSize]bool
	for _, c := range raw.Cards {
		if !c.Valid() || seen[c] {
			return fmt.Errorf("deck contains invalid or repeated card %s", c)
		}
		seen[c] = true
	}
	if raw.Next < 0 || raw.Next > DeckSize {
		return fmt.Errorf("deck position %d out of range", raw.Next)
	}
	d.cards = raw.Cards
	d.next = raw.Next
	return nil
}
