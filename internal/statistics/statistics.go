// Package statistics aggregates the results of simulated hands.
package statistics

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/poker"
)

// HandResult summarises one finished hand.
type HandResult struct {
	Seed     int64
	Seats    int
	Pot      int        // chips in the pot at the end
	Reached  game.Round // last street dealt before the hand ended
	Showdown bool       // more than one seat reached the end
	Winners  int
	Category poker.Category // best category at showdown, zero when won by fold
	Actions  int
}

// Statistics accumulates hand results. The zero value is ready to use.
type Statistics struct {
	Hands      int
	Showdowns  int
	FoldWins   int
	SplitPots  int
	Actions    int
	Reached    map[game.Round]int
	Categories map[poker.Category]int

	PotSum  float64 // in big blinds
	PotSum2 float64
	MaxPot  int // chips
	pots    []float64
}

// Add incorporates a hand result.
func (s *Statistics) Add(r HandResult) {
	if s.Reached == nil {
		s.Reached = make(map[game.Round]int)
		s.Categories = make(map[poker.Category]int)
	}
	s.Hands++
	s.Actions += r.Actions
	s.Reached[r.Reached]++
	if r.Showdown {
		s.Showdowns++
		s.Categories[r.Category]++
	} else {
		s.FoldWins++
	}
	if r.Winners > 1 {
		s.SplitPots++
	}

	bb := float64(r.Pot) / game.BigBlind
	s.PotSum += bb
	s.PotSum2 += bb * bb
	s.pots = append(s.pots, bb)
	s.MaxPot = max(s.MaxPot, r.Pot)
}

// Merge folds other into s.
func (s *Statistics) Merge(other *Statistics) {
	if other.Hands == 0 {
		return
	}
	if s.Reached == nil {
		s.Reached = make(map[game.Round]int)
		s.Categories = make(map[poker.Category]int)
	}
	s.Hands += other.Hands
	s.Showdowns += other.Showdowns
	s.FoldWins += other.FoldWins
	s.SplitPots += other.SplitPots
	s.Actions += other.Actions
	for k, v := range other.Reached {
		s.Reached[k] += v
	}
	for k, v := range other.Categories {
		s.Categories[k] += v
	}
	s.PotSum += other.PotSum
	s.PotSum2 += other.PotSum2
	s.MaxPot = max(s.MaxPot, other.MaxPot)
	s.pots = append(s.pots, other.pots...)
}

// MeanPot returns the average final pot in big blinds.
func (s *Statistics) MeanPot() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.PotSum / float64(s.Hands)
}

// PotStdDev returns the sample standard deviation of the final pot in big blinds.
func (s *Statistics) PotStdDev() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.MeanPot()
	return math.Sqrt((s.PotSum2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1))
}

// PotPercentile returns the final pot in big blinds at percentile p (0 to 1).
func (s *Statistics) PotPercentile(p float64) float64 {
	if len(s.pots) == 0 {
		return 0
	}
	sorted := slices.Sorted(slices.Values(s.pots))
	index := p * float64(len(sorted)-1)
	lower := int(index)
	if lower+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[lower+1]*weight
}

// ShowdownRate returns the share of hands that reached showdown.
func (s *Statistics) ShowdownRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Showdowns) / float64(s.Hands)
}

// CategoryOrder lists the categories seen, strongest first.
func (s *Statistics) CategoryOrder() []poker.Category {
	cats := slices.Collect(maps.Keys(s.Categories))
	slices.SortFunc(cats, func(a, b poker.Category) int { return int(b) - int(a) })
	return cats
}

// Validate checks that the counters agree with each other.
func (s *Statistics) Validate() error {
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if s.Showdowns+s.FoldWins != s.Hands {
		return fmt.Errorf("showdowns (%d) + fold wins (%d) != hands (%d)", s.Showdowns, s.FoldWins, s.Hands)
	}
	if len(s.pots) != s.Hands {
		return fmt.Errorf("recorded pots (%d) != hands (%d)", len(s.pots), s.Hands)
	}
	reached, categories := 0, 0
	for _, n := range s.Reached {
		reached += n
	}
	for _, n := range s.Categories {
		categories += n
	}
	if reached != s.Hands {
		return fmt.Errorf("street counts (%d) != hands (%d)", reached, s.Hands)
	}
	if categories != s.Showdowns {
		return fmt.Errorf("category counts (%d) != showdowns (%d)", categories, s.Showdowns)
	}
	if s.SplitPots > s.Showdowns {
		return fmt.Errorf("split pots (%d) exceed showdowns (%d)", s.SplitPots, s.Showdowns)
	}
	return nil
}
