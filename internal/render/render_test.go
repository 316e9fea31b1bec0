package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/statistics"
	"github.com/lox/holdem/poker"
)

func newHand(t *testing.T) *game.Hand {
	t.Helper()
	seats := []game.Seat{{ID: "alice", Stack: 100}, {ID: "bob", Stack: 100}}
	deck := poker.NewStackedDeck(poker.MustParseCards("As Ad Kh Kc 2s 7h 9d Jc 3c")...)
	h, err := game.NewHand(seats, "alice", deck)
	require.NoError(t, err)
	return h
}

func TestCard(t *testing.T) {
	t.Parallel()

	rd := New(&bytes.Buffer{}, NoColor())
	assert.Equal(t, "A♠", rd.Card(poker.MustParseCards("As")[0]))
	assert.Equal(t, "T♦", rd.Card(poker.MustParseCards("Td")[0]))
	assert.Equal(t, "XX", rd.Card(poker.Hidden))
	assert.Equal(t, "??", rd.Card(poker.Card(60)))
	assert.Equal(t, "-", rd.Cards(nil))
	assert.Equal(t, "K♥ 2♣", rd.Cards(poker.MustParseCards("Kh 2c")))
}

func TestColor(t *testing.T) {
	t.Parallel()

	color := New(&bytes.Buffer{}, WithProfile(termenv.ANSI256))
	assert.Contains(t, color.Card(poker.MustParseCards("Ah")[0]), "\x1b[")

	plain := New(&bytes.Buffer{}, NoColor())
	assert.NotContains(t, plain.Card(poker.MustParseCards("Ah")[0]), "\x1b[")
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	h := newHand(t)
	require.NoError(t, h.Act(game.BTN, game.Call, 0))

	rd := New(&bytes.Buffer{}, NoColor())
	out := rd.Snapshot("0abc", h.Snapshot(game.RevealTo(game.BTN), game.WithActionLog()))

	assert.NotContains(t, out, "\x1b[")
	assert.Contains(t, out, "Hand 0abc")
	assert.Contains(t, out, "Round preflop")
	assert.Contains(t, out, "Pot 4")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "A♠ A♦")
	assert.Contains(t, out, "XX XX")
	assert.Contains(t, out, "▶")
	assert.Contains(t, out, "call")

	btn := strings.Index(out, "BTN")
	bb := strings.Index(out, "BB")
	assert.Less(t, btn, bb, "seats are listed from the button")
}

func TestSnapshotOutcome(t *testing.T) {
	t.Parallel()

	h := newHand(t)
	require.NoError(t, h.Act(game.BTN, game.Call, 0))
	require.NoError(t, h.Act(game.BB, game.Check, 0))
	for !h.IsComplete() {
		require.NoError(t, h.Act(h.NextToAct(), game.Check, 0))
	}

	out := New(&bytes.Buffer{}, NoColor()).Snapshot("", h.Snapshot())
	assert.Contains(t, out, "BTN wins 4 with Pair of As")
	assert.Contains(t, out, "BB shows K♥ K♣ (Pair of Ks)")
	assert.Contains(t, out, "Round showdown")
}

func TestEvaluation(t *testing.T) {
	t.Parallel()

	cards := poker.MustParseCards("Kh Kd Ks 7c 7d")
	out := New(&bytes.Buffer{}, NoColor()).Evaluation(cards, poker.Evaluate(cards))
	assert.Contains(t, out, "Full House, Ks full of 7s")
	assert.Contains(t, out, "key 0x0cb50000")
}

func TestStatistics(t *testing.T) {
	t.Parallel()

	var s statistics.Statistics
	s.Add(statistics.HandResult{Pot: 3, Reached: game.Preflop, Winners: 1})
	s.Add(statistics.HandResult{Pot: 40, Reached: game.River, Showdown: true, Winners: 1, Category: poker.Flush})

	out := New(&bytes.Buffer{}, NoColor()).Statistics(&s)
	assert.Contains(t, out, "Hands 2")
	assert.Contains(t, out, "Showdowns 50.0%")
	assert.Contains(t, out, "Flush")
	assert.Contains(t, out, "100.00%")
}
