package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/poker"
)

func TestEmpty(t *testing.T) {
	t.Parallel()

	var s Statistics
	assert.Zero(t, s.MeanPot())
	assert.Zero(t, s.PotStdDev())
	assert.Zero(t, s.PotPercentile(0.5))
	assert.Zero(t, s.ShowdownRate())
	assert.Error(t, s.Validate())
}

func TestAdd(t *testing.T) {
	t.Parallel()

	var s Statistics
	s.Add(HandResult{Pot: 3, Reached: game.Preflop, Winners: 1, Actions: 1})
	s.Add(HandResult{Pot: 40, Reached: game.River, Showdown: true, Winners: 1, Category: poker.Flush, Actions: 9})
	s.Add(HandResult{Pot: 20, Reached: game.River, Showdown: true, Winners: 2, Category: poker.Straight, Actions: 8})

	require.NoError(t, s.Validate())
	assert.Equal(t, 3, s.Hands)
	assert.Equal(t, 2, s.Showdowns)
	assert.Equal(t, 1, s.FoldWins)
	assert.Equal(t, 1, s.SplitPots)
	assert.Equal(t, 18, s.Actions)
	assert.Equal(t, 40, s.MaxPot)
	assert.Equal(t, map[game.Round]int{game.Preflop: 1, game.River: 2}, s.Reached)
	assert.InDelta(t, 63.0/2/3, s.MeanPot(), 1e-9)
	assert.InDelta(t, 10.0, s.PotPercentile(0.5), 1e-9)
	assert.InDelta(t, 20.0, s.PotPercentile(1), 1e-9)
	assert.InDelta(t, 2.0/3, s.ShowdownRate(), 1e-9)
	assert.Equal(t, []poker.Category{poker.Flush, poker.Straight}, s.CategoryOrder())
	assert.Greater(t, s.PotStdDev(), 0.0)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	var a, b, all Statistics
	results := []HandResult{
		{Pot: 4, Reached: game.Flop},
		{Pot: 12, Reached: game.Turn, Showdown: true, Winners: 1, Category: poker.Pair},
		{Pot: 160, Reached: game.River, Showdown: true, Winners: 1, Category: poker.TwoPair},
	}
	a.Add(results[0])
	b.Add(results[1])
	b.Add(results[2])
	for _, r := range results {
		all.Add(r)
	}

	a.Merge(&b)
	a.Merge(&Statistics{})
	require.NoError(t, a.Validate())
	assert.Equal(t, all.Hands, a.Hands)
	assert.Equal(t, all.Categories, a.Categories)
	assert.Equal(t, all.Reached, a.Reached)
	assert.InDelta(t, all.MeanPot(), a.MeanPot(), 1e-9)
	assert.InDelta(t, all.PotStdDev(), a.PotStdDev(), 1e-9)
	assert.Equal(t, all.PotPercentile(0.5), a.PotPercentile(0.5))
}

func TestValidateCatchesMismatch(t *testing.T) {
	t.Parallel()

	var s Statistics
	s.Add(HandResult{Pot: 3, Showdown: true, Category: poker.Pair})
	s.Showdowns++
	assert.Error(t, s.Validate())
}
