package game

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/poker"
)

func TestSnapshot(t *testing.T) {
	t.Parallel()

	h := newTestHand(t, []int{100, 100, 100}, "2c 3d As Ah Ks Kh")
	act(t, h, BTN, Call, 0)

	snap := h.Snapshot()
	assert.Equal(t, Preflop, snap.Round)
	assert.Equal(t, 5, snap.Pot)
	assert.Equal(t, 2, snap.LastBet)
	assert.Equal(t, SB, snap.NextToAct)
	assert.Empty(t, snap.CommunityCards)
	assert.Nil(t, snap.ActionLog)
	assert.Nil(t, snap.Outcome)
	require.Len(t, snap.Seats, 3)

	btn := snap.Seats[BTN]
	assert.Equal(t, "A", btn.ID)
	assert.Equal(t, 98, btn.Remaining)
	assert.Equal(t, 2, btn.InPot)
	require.NotNil(t, btn.LastAction)
	assert.Equal(t, Call, *btn.LastAction)
	assert.Equal(t, BB, btn.PrevPosition)
	assert.Equal(t, SB, btn.NextPosition)
	assert.Equal(t, [2]poker.Card(poker.MustParseCards("2c 3d")), btn.Hole)

	// Mutating the snapshot does not touch the hand.
	*btn.LastAction = Fold
	again := h.Snapshot()
	assert.Equal(t, Call, *again.Seats[BTN].LastAction)

	withLog := h.Snapshot(WithActionLog())
	require.Len(t, withLog.ActionLog, 1)
	assert.Equal(t, "A", withLog.ActionLog[0].SeatID)
	assert.Equal(t, Call, withLog.ActionLog[0].Action)
	assert.Zero(t, withLog.ActionLog[0].Amount)
}

func TestSnapshotRingNeighbours(t *testing.T) {
	t.Parallel()

	h := newTestHand(t, []int{100, 100, 100, 100}, "")
	act(t, h, UTG, Fold, 0)

	snap := h.Snapshot()
	assert.Equal(t, BB, snap.Seats[BTN].PrevPosition, "folded seats are skipped")
	assert.Equal(t, SB, snap.Seats[BTN].NextPosition)
	assert.Equal(t, BTN, snap.Seats[BB].NextPosition)
}

func TestRevealTo(t *testing.T) {
	t.Parallel()

	hidden := [2]poker.Card{poker.Hidden, poker.Hidden}

	t.Run("live hand", func(t *testing.T) {
		t.Parallel()
		h := newTestHand(t, []int{100, 100}, "As Ad Kh Kc")
		snap := h.Snapshot(RevealTo(BTN))
		assert.Equal(t, [2]poker.Card(poker.MustParseCards("As Ad")), snap.Seats[BTN].Hole)
		assert.Equal(t, hidden, snap.Seats[BB].Hole)

		full := h.Snapshot()
		assert.Equal(t, [2]poker.Card(poker.MustParseCards("Kh Kc")), full.Seats[BB].Hole)
	})

	t.Run("won by fold keeps the winner hidden", func(t *testing.T) {
		t.Parallel()
		h := newTestHand(t, []int{100, 100}, "As Ad Kh Kc")
		act(t, h, BTN, Fold, 0)

		snap := h.Snapshot(RevealTo(BTN))
		assert.Equal(t, hidden, snap.Seats[BB].Hole)
		assert.Empty(t, snap.Outcome.FinalHands)
		assert.Equal(t, []Position{BB}, snap.Outcome.Winners)

		own := h.Snapshot(RevealTo(BB))
		assert.Contains(t, own.Outcome.FinalHands, BB)
		assert.Contains(t, h.Outcome().FinalHands, BB, "the hand itself keeps every final hand")
	})

	t.Run("showdown shows contested hands", func(t *testing.T) {
		t.Parallel()
		h := newTestHand(t, []int{100, 100, 100}, "2c 3d As Ah Ks Kh")
		act(t, h, BTN, Fold, 0)
		act(t, h, SB, Call, 0)
		act(t, h, BB, Check, 0)
		for !h.IsComplete() {
			act(t, h, h.NextToAct(), Check, 0)
		}

		snap := h.Snapshot(RevealTo(BTN))
		assert.Equal(t, [2]poker.Card(poker.MustParseCards("As Ah")), snap.Seats[SB].Hole)
		assert.Equal(t, [2]poker.Card(poker.MustParseCards("Ks Kh")), snap.Seats[BB].Hole)
		assert.Len(t, snap.Outcome.FinalHands, 2)

		mucked := h.Snapshot(RevealTo(SB))
		assert.Equal(t, hidden, mucked.Seats[BTN].Hole, "folded cards stay hidden")
	})
}

func TestActionLogUsesClock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mClock := quartz.NewMock(t)
	start := mClock.Now()

	h := newTestHand(t, []int{100, 100}, "", WithClock(mClock))
	act(t, h, BTN, Bet, 6)
	mClock.Advance(1500 * time.Millisecond).MustWait(ctx)
	act(t, h, BB, Call, 0)

	log := h.ActionLog()
	require.Len(t, log, 2)
	assert.True(t, log[0].At.Equal(start))
	assert.True(t, log[1].At.Equal(start.Add(1500*time.Millisecond)))
	assert.Equal(t, 6, log[0].Amount)
	assert.Equal(t, Preflop, log[1].Round)
	assert.Equal(t, BB, log[1].Position)
}
