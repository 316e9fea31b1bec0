package poker

import (
	"cmp"
	rand "math/rand/v2"
	"testing"

	ph "github.com/paulhankin/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateCategories(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cards string
		want  HandValue
	}{
		{"ThJhQhKhAh", StraightFlushHand{High: Ace, Suit: Hearts}},
		{"2h3h4h5h6h", StraightFlushHand{High: Six, Suit: Hearts}},
		{"Ad2d3d4d5d", StraightFlushHand{High: Five, Suit: Diamonds}},
		{"2h2c2d2s3h", FourOfAKindHand{Quad: Two, Kicker: Three}},
		{"2h2c2d3s3h", FullHouseHand{Trips: Two, Pair: Three}},
		{"2h3c4d5s6h", StraightHand{High: Six}},
		{"Ah2c3d4s5h", StraightHand{High: Five}},
		{"2h3h4h5h7h", FlushHand{Ranks: [5]Rank{Seven, Five, Four, Three, Two}, Suit: Hearts}},
		{"8h8c8s9hTd", ThreeOfAKindHand{Trips: Eight, Kickers: [2]Rank{Ten, Nine}}},
		{"2h2c3d3s4h", TwoPairHand{High: Three, Low: Two, Kicker: Four}},
		{"8h8c3d4s5h", PairHand{Pair: Eight, Kickers: [3]Rank{Five, Four, Three}}},
		{"2h4c8dJsAh", HighCardHand{Ranks: [5]Rank{Ace, Jack, Eight, Four, Two}}},

		// Seven card boards.
		{"AsAhAdAc KsKh 2c", FourOfAKindHand{Quad: Ace, Kicker: King}},
		{"9s9h9d 4c4h4s 2c", FullHouseHand{Trips: Nine, Pair: Four}},
		{"9s9h9d 4c4h Ks Kd", FullHouseHand{Trips: Nine, Pair: King}},
		{"2s3s4s5s6s7s 8d", StraightFlushHand{High: Seven, Suit: Spades}},
		{"As Ks 9s 5s 2s Qd Jh", FlushHand{Ranks: [5]Rank{Ace, King, Nine, Five, Two}, Suit: Spades}},
		{"As2h3d4c5s6h Kd", StraightHand{High: Six}},
		{"TsJhQdKcAs 9h 8d", StraightHand{High: Ace}},
		{"QsQh 7d7c 3s3h Ad", TwoPairHand{High: Queen, Low: Seven, Kicker: Ace}},
		{"QsQh 7d7c 5s5h 2d", TwoPairHand{High: Queen, Low: Seven, Kicker: Five}},
		{"2c3d5h7s9cJdKh", HighCardHand{Ranks: [5]Rank{King, Jack, Nine, Seven, Five}}},
		// A flush that contains a straight in other suits stays a flush.
		{"2h4h6h8hTh 9c 7d", FlushHand{Ranks: [5]Rank{Ten, Eight, Six, Four, Two}, Suit: Hearts}},
	}

	for _, tc := range tests {
		t.Run(tc.cards, func(t *testing.T) {
			t.Parallel()
			got := Evaluate(MustParseCards(tc.cards))
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want.Key(), got.Key())
		})
	}
}

func TestWheelIsLowestStraight(t *testing.T) {
	t.Parallel()
	wheel := Evaluate(MustParseCards("Ah2c3d4s5h"))
	sixHigh := Evaluate(MustParseCards("2h3c4d5s6h"))

	require.Equal(t, Straight, wheel.Category())
	assert.Equal(t, StraightHand{High: Five}, wheel)
	assert.Equal(t, -1, Compare(wheel, sixHigh))
	assert.Equal(t, 1, Compare(sixHigh, wheel))
}

func TestCategoryDominatesKickers(t *testing.T) {
	t.Parallel()
	// Weakest to strongest. Apart from the first entry each hand is the
	// lowest of its category.
	ordered := []string{
		"AhKcQdJs9h", // best high card
		"2h2c3d4s5h", // worst pair
		"2h2c3d3s4h", // worst two pair
		"2h2c2d3s4h", // worst trips
		"Ah2c3d4s5h", // wheel
		"2h3h4h5h7h", // worst flush
		"2h2c2d3s3h", // worst full house
		"2h2c2d2s3h", // worst quads
		"Ad2d3d4d5d", // steel wheel
	}
	for i := 1; i < len(ordered); i++ {
		lo := Evaluate(MustParseCards(ordered[i-1]))
		hi := Evaluate(MustParseCards(ordered[i]))
		assert.Less(t, int(lo.Category()), int(hi.Category()))
		assert.Equal(t, 1, Compare(hi, lo), "%s should beat %s", hi, lo)
	}
}

func TestKickerComparison(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		a, b   string
		result int
	}{
		{"pair kicker", "AsAh Kd 7c 4h", "AdAc Qd Jc Th", 1},
		{"two pair kicker", "KsKh 4d4c Ah", "KdKc 4s4h Qh", 1},
		{"two pair low pair", "KsKh 5d5c 2h", "KdKc 4s4h Ah", 1},
		{"flush fifth card", "Ah Jh 8h 6h 3h", "As Js 8s 6s 2s", 1},
		{"split board", "AsKsQdJc9h", "AhKhQcJd9s", 0},
		{"full house trips first", "3s3h3d2c2h", "2s2h2dAcAh", 1},
		{"high card last kicker", "Ah Kd 9c 7s 2h", "As Kc 9d 7h 3c", -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := Evaluate(MustParseCards(tc.a))
			b := Evaluate(MustParseCards(tc.b))
			assert.Equal(t, tc.result, Compare(a, b))
			assert.Equal(t, -tc.result, Compare(b, a))
			assert.Equal(t, tc.result == 0, a.Key() == b.Key())
		})
	}
}

func TestKeyLayout(t *testing.T) {
	t.Parallel()
	h := FullHouseHand{Trips: King, Pair: Seven}
	assert.Equal(t, Key(0x0cb50000), h.Key())
	assert.Equal(t, FullHouse, h.Key().Category())
}

func TestEvaluatePanicsOnBadInput(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { Evaluate(MustParseCards("AsKsQs")) })
	assert.Panics(t, func() { Evaluate(MustParseCards("AsKsQsJsTs9s8s7s")) })
	assert.Panics(t, func() { Evaluate([]Card{Hidden, 1, 2, 3, 4}) })
	assert.Panics(t, func() { Evaluate([]Card{60, 1, 2, 3, 4}) })
	assert.Panics(t, func() { Evaluate(MustParseCards("AsAsQsJsTs")) })
}

func TestMadeHand(t *testing.T) {
	t.Parallel()
	short := NewMadeHand(MustParseCards("AsKs"))
	assert.Nil(t, short.Value)

	full := NewMadeHand(MustParseCards("AsKsQsJsTs2d3c"))
	require.NotNil(t, full.Value)
	assert.Equal(t, "Royal Flush", full.String())
	assert.Equal(t, 1, full.Compare(short))
	assert.Equal(t, -1, short.Compare(full))
}

// toOracle converts to the paulhankin/poker card encoding (Ace is rank 1).
func toOracle(t *testing.T, c Card) ph.Card {
	t.Helper()
	var s ph.Suit
	switch c.Suit() {
	case Spades:
		s = ph.Spade
	case Hearts:
		s = ph.Heart
	case Clubs:
		s = ph.Club
	case Diamonds:
		s = ph.Diamond
	}
	r := ph.Rank(int(c.Rank()) + 2)
	if c.Rank() == Ace {
		r = ph.Rank(1)
	}
	card, err := ph.MakeCard(s, r)
	require.NoError(t, err)
	return card
}

func oracleScore(t *testing.T, cards []Card) int16 {
	t.Helper()
	var a [7]ph.Card
	for i, c := range cards {
		a[i] = toOracle(t, c)
	}
	return ph.Eval7(&a)
}

func TestEvaluateAgreesWithOracle(t *testing.T) {
	t.Parallel()

	// Orient the oracle's scores using a royal flush and a ten-high board.
	strong := oracleScore(t, MustParseCards("AsKsQsJsTs2h3d"))
	weak := oracleScore(t, MustParseCards("7s5h4d3c2s9hTd"))
	direction := cmp.Compare(strong, weak)
	require.NotZero(t, direction)

	rng := rand.New(rand.NewPCG(2024, 10))
	const trials = 5000
	prevCards := MustParseCards("2c3c4c5c7d8d9h")
	prev := Evaluate(prevCards)
	prevScore := oracleScore(t, prevCards)
	for range trials {
		perm := rng.Perm(DeckSize)
		cards := make([]Card, 7)
		for i := range cards {
			cards[i] = Card(perm[i])
		}
		got := Evaluate(cards)
		score := oracleScore(t, cards)

		want := cmp.Compare(score, prevScore) * direction
		if Compare(got, prev) != want {
			t.Fatalf("ordering disagrees with oracle: %v (%s) vs %v (%s)", cards, got, prevCards, prev)
		}
		prev, prevScore, prevCards = got, score, cards
	}
}
