package poker

import (
	"cmp"
	"fmt"
	"math/bits"
)

// Category enumerates hand categories. Codes are the leading field of a Key,
// so a stronger category always compares higher.
type Category uint8

const (
	HighCard Category = iota + 6
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Key is a total-order encoding of hand strength: the category code in bits
// 24-27 followed by up to six 4-bit rank fields, most significant first.
type Key uint32

// Category extracts the category code from the key.
func (k Key) Category() Category {
	return Category(k >> 24)
}

func packKey(c Category, ranks ...Rank) Key {
	if len(ranks) > 6 {
		panic("too many rank fields")
	}
	k := Key(c) << 24
	for i, r := range ranks {
		k |= Key(r) << (20 - 4*i)
	}
	return k
}

// HandValue is the best five-card hand made from a set of cards. The concrete
// types are StraightFlushHand, FourOfAKindHand, FullHouseHand, FlushHand,
// StraightHand, ThreeOfAKindHand, TwoPairHand, PairHand and HighCardHand.
type HandValue interface {
	Category() Category
	Key() Key
	String() string
	handValue()
}

type StraightFlushHand struct {
	High Rank
	Suit Suit
}

type FourOfAKindHand struct {
	Quad   Rank
	Kicker Rank
}

type FullHouseHand struct {
	Trips Rank
	Pair  Rank
}

type FlushHand struct {
	Ranks [5]Rank
	Suit  Suit
}

type StraightHand struct {
	High Rank
}

type ThreeOfAKindHand struct {
	Trips   Rank
	Kickers [2]Rank
}

type TwoPairHand struct {
	High   Rank
	Low    Rank
	Kicker Rank
}

type PairHand struct {
	Pair    Rank
	Kickers [3]Rank
}

type HighCardHand struct {
	Ranks [5]Rank
}

func (StraightFlushHand) Category() Category { return StraightFlush }
func (FourOfAKindHand) Category() Category   { return FourOfAKind }
func (FullHouseHand) Category() Category     { return FullHouse }
func (FlushHand) Category() Category         { return Flush }
func (StraightHand) Category() Category      { return Straight }
func (ThreeOfAKindHand) Category() Category  { return ThreeOfAKind }
func (TwoPairHand) Category() Category       { return TwoPair }
func (PairHand) Category() Category          { return Pair }
func (HighCardHand) Category() Category      { return HighCard }

func (h StraightFlushHand) Key() Key { return packKey(StraightFlush, h.High) }
func (h FourOfAKindHand) Key() Key   { return packKey(FourOfAKind, h.Quad, h.Kicker) }
func (h FullHouseHand) Key() Key     { return packKey(FullHouse, h.Trips, h.Pair) }
func (h FlushHand) Key() Key         { return packKey(Flush, h.Ranks[:]...) }
func (h StraightHand) Key() Key      { return packKey(Straight, h.High) }
func (h ThreeOfAKindHand) Key() Key {
	return packKey(ThreeOfAKind, h.Trips, h.Kickers[0], h.Kickers[1])
}
func (h TwoPairHand) Key() Key { return packKey(TwoPair, h.High, h.Low, h.Kicker) }
func (h PairHand) Key() Key {
	return packKey(Pair, h.Pair, h.Kickers[0], h.Kickers[1], h.Kickers[2])
}
func (h HighCardHand) Key() Key { return packKey(HighCard, h.Ranks[:]...) }

func (h StraightFlushHand) String() string {
	if h.High == Ace {
		return "Royal Flush"
	}
	return fmt.Sprintf("Straight Flush, %s high", h.High)
}
func (h FourOfAKindHand) String() string {
	return fmt.Sprintf("Four of a Kind, %ss with %s kicker", h.Quad, h.Kicker)
}
func (h FullHouseHand) String() string {
	return fmt.Sprintf("Full House, %ss full of %ss", h.Trips, h.Pair)
}
func (h FlushHand) String() string {
	return fmt.Sprintf("Flush, %s high", h.Ranks[0])
}
func (h StraightHand) String() string {
	return fmt.Sprintf("Straight, %s high", h.High)
}
func (h ThreeOfAKindHand) String() string {
	return fmt.Sprintf("Three of a Kind, %ss", h.Trips)
}
func (h TwoPairHand) String() string {
	return fmt.Sprintf("Two Pair, %ss and %ss", h.High, h.Low)
}
func (h PairHand) String() string {
	return fmt.Sprintf("Pair of %ss", h.Pair)
}
func (h HighCardHand) String() string {
	return fmt.Sprintf("High Card, %s", h.Ranks[0])
}

func (StraightFlushHand) handValue() {}
func (FourOfAKindHand) handValue()   {}
func (FullHouseHand) handValue()     {}
func (FlushHand) handValue()         {}
func (StraightHand) handValue()      {}
func (ThreeOfAKindHand) handValue()  {}
func (TwoPairHand) handValue()       {}
func (PairHand) handValue()          {}
func (HighCardHand) handValue()      {}

// Compare returns 1 if a is stronger, -1 if b is stronger and 0 on a tie.
func Compare(a, b HandValue) int {
	return cmp.Compare(a.Key(), b.Key())
}

// wheel is A-2-3-4-5.
const wheel uint16 = 1<<Ace | 1<<Two | 1<<Three | 1<<Four | 1<<Five

// Evaluate returns the best five-card hand contained in 5 to 7 cards.
// Hidden, invalid or repeated cards are programmer errors and panic.
func Evaluate(cards []Card) HandValue {
	if len(cards) < 5 || len(cards) > 7 {
		panic(fmt.Sprintf("evaluate needs 5 to 7 cards, got %d", len(cards)))
	}

	var rankSet uint16
	var suitSets [4]uint16
	var counts [13]uint8
	var seen uint64
	for _, c := range cards {
		if !c.Valid() {
			panic(fmt.Sprintf("cannot evaluate card %s", c))
		}
		if seen&(1<<uint(c)) != 0 {
			panic(fmt.Sprintf("duplicate card %s", c))
		}
		seen |= 1 << uint(c)
		r, s := c.Rank(), c.Suit()
		rankSet |= 1 << r
		suitSets[s] |= 1 << r
		counts[r]++
	}

	// ofCount[n] holds the ranks appearing exactly n times.
	var ofCount [5]uint16
	for r, n := range counts {
		ofCount[n] |= 1 << r
	}

	flushSuit := -1
	for s, set := range suitSets {
		if bits.OnesCount16(set) >= 5 {
			flushSuit = s
		}
	}

	if flushSuit >= 0 {
		if high, ok := straightHigh(suitSets[flushSuit]); ok {
			return StraightFlushHand{High: high, Suit: Suit(flushSuit)}
		}
	}

	if ofCount[4] != 0 {
		quad := topRank(ofCount[4])
		return FourOfAKindHand{Quad: quad, Kicker: topRank(rankSet &^ (1 << quad))}
	}

	if ofCount[3] != 0 {
		trips := topRank(ofCount[3])
		if pairs := ofCount[2] | ofCount[3]&^(1<<trips); pairs != 0 {
			return FullHouseHand{Trips: trips, Pair: topRank(pairs)}
		}
	}

	if flushSuit >= 0 {
		var h FlushHand
		h.Suit = Suit(flushSuit)
		copy(h.Ranks[:], topRanks(suitSets[flushSuit], 5))
		return h
	}

	if high, ok := straightHigh(rankSet); ok {
		return StraightHand{High: high}
	}

	if ofCount[3] != 0 {
		trips := topRank(ofCount[3])
		h := ThreeOfAKindHand{Trips: trips}
		copy(h.Kickers[:], topRanks(rankSet&^(1<<trips), 2))
		return h
	}

	if bits.OnesCount16(ofCount[2]) >= 2 {
		pairs := topRanks(ofCount[2], 2)
		used := uint16(1)<<pairs[0] | uint16(1)<<pairs[1]
		return TwoPairHand{High: pairs[0], Low: pairs[1], Kicker: topRank(rankSet &^ used)}
	}

	if ofCount[2] != 0 {
		pair := topRank(ofCount[2])
		h := PairHand{Pair: pair}
		copy(h.Kickers[:], topRanks(rankSet&^(1<<pair), 3))
		return h
	}

	var h HighCardHand
	copy(h.Ranks[:], topRanks(rankSet, 5))
	return h
}

// straightHigh finds five consecutive ranks in set and returns the top one.
// The wheel counts as five high.
func straightHigh(set uint16) (Rank, bool) {
	if run := set & (set << 1) & (set << 2) & (set << 3) & (set << 4); run != 0 {
		return topRank(run), true
	}
	if set&wheel == wheel {
		return Five, true
	}
	return 0, false
}

func topRank(set uint16) Rank {
	return Rank(bits.Len16(set) - 1)
}

// topRanks returns up to n ranks from set, highest first.
func topRanks(set uint16, n int) []Rank {
	ranks := make([]Rank, 0, n)
	for set != 0 && len(ranks) < n {
		r := topRank(set)
		ranks = append(ranks, r)
		set &^= 1 << r
	}
	return ranks
}
