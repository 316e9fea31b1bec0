package game

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem/poker"
)

// Forced bets.
const (
	SmallBlind = 1
	BigBlind   = 2
)

// Hand is a single hand of No-Limit Hold'em from the deal to the outcome.
// It is not safe for concurrent use; callers serialize calls to Act.
type Hand struct {
	seats     []*SeatState // indexed by slot, slot 0 is the button
	ring      ring
	round     Round
	pot       int
	lastBet   int
	nextToAct int // slot, -1 when nobody can act
	actionLog []LogEntry
	board     []poker.Card
	outcome   *Outcome
	deck      *poker.Deck

	logger *log.Logger
	clock  quartz.Clock
}

// NewHand seats the players, deals hole cards and posts the blinds. Seats are
// given in table order; the seat with buttonID gets the button.
func NewHand(seats []Seat, buttonID string, deck *poker.Deck, opts ...HandOption) (*Hand, error) {
	positions := PositionsFor(len(seats))
	if positions == nil {
		return nil, fmt.Errorf("%w: %d (want %d-%d)", ErrSeatCount, len(seats), MinSeats, MaxSeats)
	}
	if deck == nil {
		return nil, ErrNoDeck
	}

	button := -1
	ids := make(map[string]bool, len(seats))
	for i, s := range seats {
		if ids[s.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSeat, s.ID)
		}
		ids[s.ID] = true
		if s.Stack < 0 {
			return nil, fmt.Errorf("%w: seat %q has %d", ErrNegativeStack, s.ID, s.Stack)
		}
		if s.ID == buttonID {
			button = i
		}
	}
	if button == -1 {
		return nil, fmt.Errorf("%w: %q", ErrButtonNotFound, buttonID)
	}

	need := 2*len(seats) + 5
	if deck.Remaining() < need {
		return nil, fmt.Errorf("need %d cards, deck has %d: %w", need, deck.Remaining(), poker.ErrDeckEmpty)
	}

	cfg := newHandConfig(opts)
	h := &Hand{
		seats:     make([]*SeatState, len(seats)),
		ring:      newRing(len(seats)),
		round:     Preflop,
		nextToAct: -1,
		board:     []poker.Card{},
		deck:      deck,
		logger:    cfg.logger,
		clock:     cfg.clock,
	}

	rotated := append(slices.Clone(seats[button:]), seats[:button]...)
	for slot, s := range rotated {
		hole, err := deck.Deal(2)
		if err != nil {
			return nil, err
		}
		h.seats[slot] = &SeatState{
			Seat:      s,
			Position:  positions[slot],
			Hole:      [2]poker.Card{hole[0], hole[1]},
			Remaining: s.Stack,
		}
		if s.Stack == 0 {
			h.seats[slot].AllIn = true
			h.ring.remove(slot)
		}
	}

	sb, bb := 1, 2
	if len(seats) == 2 {
		sb, bb = 0, 1
	}
	h.postBlind(sb, SmallBlind)
	h.postBlind(bb, BigBlind)
	h.lastBet = BigBlind
	h.nextToAct = h.ring.next(bb)

	h.logger.Debug("hand started",
		"seats", len(seats),
		"button", buttonID,
		"pot", h.pot,
		"next", h.NextToAct())

	if err := h.progress(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Hand) postBlind(slot, amount int) {
	s := h.seats[slot]
	posted := min(amount, s.Remaining)
	s.commit(posted)
	h.pot += posted
	if s.Remaining == 0 && !s.AllIn {
		s.AllIn = true
		h.ring.remove(slot)
	}
	h.logger.Debug("blind posted", "position", s.Position, "amount", posted)
}

// Act applies an action for the seat at position. Amount is the seat's total
// bet for the round and is only used by Bet. A rejected action leaves the hand
// unchanged.
func (h *Hand) Act(position Position, action Action, amount int) error {
	if h.round == Showdown {
		return ErrHandComplete
	}
	slot, ok := h.slotOf(position)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSeatNotFound, position)
	}
	if slot != h.nextToAct {
		return fmt.Errorf("%w: %s to act, not %s", ErrNotYourTurn, h.NextToAct(), position)
	}

	seat := h.seats[slot]
	chips, allIn, err := h.validate(seat, action, amount)
	if err != nil {
		return fmt.Errorf("%s %s: %w", position, action, err)
	}

	entry := LogEntry{
		SeatID:   seat.ID,
		Position: position,
		Round:    h.round,
		Action:   action,
		At:       h.clock.Now(),
	}
	if action == Bet {
		entry.Amount = amount
	}
	h.actionLog = append(h.actionLog, entry)

	switch action {
	case Fold:
		seat.Folded = true
		h.ring.remove(slot)
	case Call, Bet:
		seat.commit(chips)
		h.pot += chips
		if action == Bet {
			h.lastBet = amount
		}
		if allIn {
			seat.AllIn = true
			h.ring.remove(slot)
		}
	}
	last := action
	seat.LastAction = &last

	h.logger.Debug("action",
		"round", h.round,
		"position", position,
		"action", action,
		"chips", chips,
		"all_in", allIn,
		"pot", h.pot)

	if h.nonFolded() == 1 {
		h.winByFold()
		return nil
	}
	h.nextToAct = h.ring.next(slot)
	return h.progress()
}

// validate checks an action without changing state and returns the chips
// the action moves into the pot.
func (h *Hand) validate(seat *SeatState, action Action, amount int) (chips int, allIn bool, err error) {
	switch action {
	case Fold:
		return 0, false, nil
	case Check:
		if seat.InPot < h.lastBet {
			return 0, false, fmt.Errorf("%w: %d to call", ErrCannotCheck, h.lastBet-seat.InPot)
		}
		return 0, false, nil
	case Call:
		if h.lastBet == 0 {
			return 0, false, ErrNothingToCall
		}
		owed := min(seat.Remaining, h.lastBet-seat.InPot)
		return owed, owed == seat.Remaining, nil
	case Bet:
		if amount <= 0 {
			return 0, false, fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
		}
		limit := seat.Remaining + seat.InPot
		if amount > limit {
			return 0, false, fmt.Errorf("%w: %d with %d available", ErrInsufficientChips, amount, limit)
		}
		allIn = amount == limit
		if h.lastBet > 0 {
			switch {
			case amount < h.lastBet:
				return 0, false, fmt.Errorf("%w: %d < %d", ErrBetTooSmall, amount, h.lastBet)
			case amount == h.lastBet:
				return 0, false, fmt.Errorf("%w: %d", ErrBetEqualsLastBet, amount)
			case !allIn && amount < 2*h.lastBet:
				return 0, false, fmt.Errorf("%w: %d < %d", ErrRaiseTooSmall, amount, 2*h.lastBet)
			}
		}
		return amount - seat.InPot, allIn, nil
	default:
		return 0, false, fmt.Errorf("%w: %d", ErrUnknownAction, int(action))
	}
}

// progress advances rounds while the current one is settled. Once fewer
// than two seats can act, the remaining streets are dealt straight away.
func (h *Hand) progress() error {
	for h.round != Showdown && h.roundComplete() {
		if err := h.advance(); err != nil {
			return err
		}
	}
	return nil
}

// roundComplete reports whether every seat still betting has matched the
// largest bet of the round and acted since the round began. A lone seat that
// has matched has nobody left to bet against.
func (h *Hand) roundComplete() bool {
	live, acted := 0, true
	for _, s := range h.seats {
		if !s.CanAct() {
			continue
		}
		if s.InPot != h.lastBet {
			return false
		}
		live++
		if s.LastAction == nil {
			acted = false
		}
	}
	return acted || live <= 1
}

func (h *Hand) advance() error {
	if h.round == River {
		h.showdown()
		return nil
	}

	for _, s := range h.seats {
		s.LastAction = nil
		s.InPot = 0
	}
	h.lastBet = 0

	n := 1
	if h.round == Preflop {
		n = 3
	}
	cards, err := h.deck.Deal(n)
	if err != nil {
		return fmt.Errorf("dealing %s: %w", h.round+1, err)
	}
	h.board = append(h.board, cards...)
	h.round++
	h.nextToAct = h.ring.next(0)

	h.logger.Debug("round advanced",
		"round", h.round,
		"board", h.board,
		"pot", h.pot,
		"next", h.NextToAct())
	return nil
}

func (h *Hand) showdown() {
	type contender struct {
		slot int
		hand poker.MadeHand
	}
	var contenders []contender
	for _, slot := range h.slotsFromButton() {
		s := h.seats[slot]
		if s.Folded {
			continue
		}
		contenders = append(contenders, contender{slot: slot, hand: h.madeHand(s)})
	}

	var best poker.MadeHand
	var winners []int
	for _, c := range contenders {
		switch cmp := c.hand.Compare(best); {
		case winners == nil || cmp > 0:
			best = c.hand
			winners = []int{c.slot}
		case cmp == 0:
			winners = append(winners, c.slot)
		}
	}

	h.finish(winners)
	h.logger.Debug("showdown", "winners", h.outcome.Winners, "hand", best, "pot", h.pot)
}

func (h *Hand) winByFold() {
	for slot, s := range h.seats {
		if !s.Folded {
			h.finish([]int{slot})
			h.logger.Debug("won by fold", "position", s.Position, "pot", h.pot)
			return
		}
	}
}

// finish splits the pot between winners, given in seat order after the
// button. Odd chips go to the earliest winners in that order.
func (h *Hand) finish(winners []int) {
	share := h.pot / len(winners)
	odd := h.pot % len(winners)

	out := &Outcome{
		FinalHands: make(map[Position]poker.MadeHand),
		Winnings:   make(map[Position]int, len(winners)),
		NewStacks:  make(map[Position]int, len(h.seats)),
	}
	for i, slot := range winners {
		won := share
		if i < odd {
			won++
		}
		pos := h.seats[slot].Position
		out.Winners = append(out.Winners, pos)
		out.Winnings[pos] = won
	}
	for _, s := range h.seats {
		out.NewStacks[s.Position] = s.Remaining + out.Winnings[s.Position]
		if !s.Folded {
			out.FinalHands[s.Position] = h.madeHand(s)
		}
	}

	h.outcome = out
	h.round = Showdown
	h.nextToAct = -1
}

func (h *Hand) madeHand(s *SeatState) poker.MadeHand {
	cards := make([]poker.Card, 0, 2+len(h.board))
	cards = append(cards, s.Hole[:]...)
	cards = append(cards, h.board...)
	return poker.NewMadeHand(cards)
}

// slotsFromButton lists slots in acting order after the button, ending with it.
func (h *Hand) slotsFromButton() []int {
	order := make([]int, 0, len(h.seats))
	for i := 1; i <= len(h.seats); i++ {
		order = append(order, i%len(h.seats))
	}
	return order
}

func (h *Hand) nonFolded() int {
	n := 0
	for _, s := range h.seats {
		if !s.Folded {
			n++
		}
	}
	return n
}

func (h *Hand) slotOf(p Position) (int, bool) {
	for slot, s := range h.seats {
		if s.Position == p {
			return slot, true
		}
	}
	return -1, false
}

func (h *Hand) positionAt(slot int) Position {
	if slot < 0 {
		return NoPosition
	}
	return h.seats[slot].Position
}

// Round returns the current betting round.
func (h *Hand) Round() Round { return h.round }

// Pot returns all chips committed so far.
func (h *Hand) Pot() int { return h.pot }

// LastBet returns the bet to call in the current round.
func (h *Hand) LastBet() int { return h.lastBet }

// NextToAct returns the position to act, or NoPosition when nobody can.
func (h *Hand) NextToAct() Position { return h.positionAt(h.nextToAct) }

// IsComplete reports whether the hand has reached its outcome.
func (h *Hand) IsComplete() bool { return h.round == Showdown }

// Board returns the community cards dealt so far.
func (h *Hand) Board() []poker.Card { return slices.Clone(h.board) }

// ActionLog returns the accepted actions in order.
func (h *Hand) ActionLog() []LogEntry { return slices.Clone(h.actionLog) }

// Positions returns the positions at the table in deal order from the button.
func (h *Hand) Positions() []Position { return PositionsFor(len(h.seats)) }

// Outcome returns the result once the hand is complete, nil before.
func (h *Hand) Outcome() *Outcome {
	if h.outcome == nil {
		return nil
	}
	return h.outcome.clone()
}

// Seat returns a copy of the state of the seat at position.
func (h *Hand) Seat(p Position) (SeatState, error) {
	slot, ok := h.slotOf(p)
	if !ok {
		return SeatState{}, fmt.Errorf("%w: %s", ErrSeatNotFound, p)
	}
	return h.seats[slot].clone(), nil
}

// SeatByID returns a copy of the state of the seat with the given id.
func (h *Hand) SeatByID(id string) (SeatState, error) {
	for _, s := range h.seats {
		if s.ID == id {
			return s.clone(), nil
		}
	}
	return SeatState{}, fmt.Errorf("%w: id %q", ErrSeatNotFound, id)
}

// LegalActions returns what the seat to act may do. It is empty once the
// hand is complete or nobody can act.
func (h *Hand) LegalActions() LegalActions {
	if h.round == Showdown || h.nextToAct < 0 {
		return LegalActions{}
	}
	s := h.seats[h.nextToAct]
	legal := LegalActions{
		Position: s.Position,
		Actions:  []Action{Fold},
		MaxBet:   s.Remaining + s.InPot,
	}
	if s.InPot >= h.lastBet {
		legal.Actions = append(legal.Actions, Check)
	}
	if h.lastBet > 0 && s.InPot < h.lastBet {
		legal.ToCall = min(s.Remaining, h.lastBet-s.InPot)
		legal.Actions = append(legal.Actions, Call)
	}
	if legal.MaxBet > h.lastBet {
		legal.MinBet = 1
		if h.lastBet > 0 {
			legal.MinBet = min(2*h.lastBet, legal.MaxBet)
		}
		legal.Actions = append(legal.Actions, Bet)
	}
	return legal
}

func (s *SeatState) clone() SeatState {
	c := *s
	if s.LastAction != nil {
		a := *s.LastAction
		c.LastAction = &a
	}
	return c
}
