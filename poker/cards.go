package poker

import (
	"fmt"
	"strings"
)

// Rank is a card rank from Two (0) to Ace (12).
type Rank uint8

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const rankChars = "23456789TJQKA"

func (r Rank) String() string {
	if r > Ace {
		return "?"
	}
	return string(rankChars[r])
}

// Suit is a card suit. The order matches card ids: spades, hearts, clubs, diamonds.
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Clubs
	Diamonds
)

const suitChars = "shcd"

func (s Suit) String() string {
	if s > Diamonds {
		return "?"
	}
	return string(suitChars[s])
}

// Symbol returns the unicode suit symbol.
func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	default:
		return "?"
	}
}

// IsRed reports whether the suit is hearts or diamonds.
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Card is a playing card identified by suit*13 + rank (0..51). Hidden is -1.
type Card int8

// Hidden is a face-down card.
const Hidden Card = -1

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

// NewCard creates a card from rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card(int(suit)*13 + int(rank))
}

// CardFromID decodes a card id; -1 yields Hidden.
func CardFromID(id int) (Card, error) {
	if id == -1 {
		return Hidden, nil
	}
	if id < 0 || id >= DeckSize {
		return Hidden, fmt.Errorf("invalid card id %d", id)
	}
	return Card(id), nil
}

// ID returns the card id, -1 for hidden cards.
func (c Card) ID() int {
	if c.IsHidden() {
		return -1
	}
	return int(c)
}

// IsHidden reports whether the card is face down.
func (c Card) IsHidden() bool {
	return c < 0
}

// Valid reports whether the card is a face-up card of a standard deck.
func (c Card) Valid() bool {
	return c >= 0 && c < DeckSize
}

// Rank returns the rank of a face-up card.
func (c Card) Rank() Rank {
	return Rank(int(c) % 13)
}

// Suit returns the suit of a face-up card.
func (c Card) Suit() Suit {
	return Suit(int(c) / 13)
}

// String returns the two character notation, e.g. "As" or "XX" when hidden.
func (c Card) String() string {
	if c.IsHidden() {
		return "XX"
	}
	if !c.Valid() {
		return "??"
	}
	return c.Rank().String() + c.Suit().String()
}

// ParseCard parses notation like "As", "td" or "XX". Rank and suit are case-insensitive.
func ParseCard(s string) (Card, error) {
	if s == "XX" {
		return Hidden, nil
	}
	if len(s) != 2 {
		return Hidden, fmt.Errorf("invalid card %q: want two characters like As", s)
	}
	r := strings.IndexByte(rankChars, upper(s[0]))
	if r < 0 {
		return Hidden, fmt.Errorf("invalid rank %q in card %q", s[0], s)
	}
	su := strings.IndexByte(suitChars, lower(s[1]))
	if su < 0 {
		return Hidden, fmt.Errorf("invalid suit %q in card %q", s[1], s)
	}
	return NewCard(Rank(r), Suit(su)), nil
}

// ParseCards parses concatenated or space separated notation, e.g. "AsKd" or "As Kd".
func ParseCards(s string) ([]Card, error) {
	s = strings.Join(strings.Fields(s), "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string %q: odd length", s)
	}
	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		c, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for literals in tests and tables; it panics on error.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// MarshalText encodes the card in two character notation.
func (c Card) MarshalText() ([]byte, error) {
	if !c.IsHidden() && !c.Valid() {
		return nil, fmt.Errorf("invalid card id %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes two character notation.
func (c *Card) UnmarshalText(b []byte) error {
	parsed, err := ParseCard(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
