// Package render formats hands, evaluations and simulation results for the
// terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/statistics"
	"github.com/lox/holdem/poker"
)

// Renderer turns engine values into styled text.
type Renderer struct {
	r *lipgloss.Renderer

	title  lipgloss.Style
	cell   lipgloss.Style
	label  lipgloss.Style
	red    lipgloss.Style
	black  lipgloss.Style
	hidden lipgloss.Style
	turn   lipgloss.Style
	muted  lipgloss.Style
	win    lipgloss.Style
}

// Option configures a Renderer.
type Option func(*lipgloss.Renderer)

// NoColor strips all colour and styling.
func NoColor() Option {
	return WithProfile(termenv.Ascii)
}

// WithProfile forces a colour profile instead of detecting one from the writer.
func WithProfile(p termenv.Profile) Option {
	return func(r *lipgloss.Renderer) {
		r.SetColorProfile(p)
	}
}

// New returns a renderer for output written to w.
func New(w io.Writer, opts ...Option) *Renderer {
	r := lipgloss.NewRenderer(w)
	for _, opt := range opts {
		opt(r)
	}
	return &Renderer{
		r: r,
		title: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		cell:   r.NewStyle().Padding(0, 1),
		label:  r.NewStyle().Foreground(lipgloss.Color("#626262")),
		red:    r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		black:  r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true),
		hidden: r.NewStyle().Foreground(lipgloss.Color("#626262")),
		turn:   r.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		muted:  r.NewStyle().Foreground(lipgloss.Color("#626262")).Italic(true),
		win:    r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
	}
}

// Card renders a card with its suit symbol, red for hearts and diamonds.
func (rd *Renderer) Card(c poker.Card) string {
	if c.IsHidden() {
		return rd.hidden.Render("XX")
	}
	if !c.Valid() {
		return rd.hidden.Render("??")
	}
	text := c.Rank().String() + c.Suit().Symbol()
	if c.Suit().IsRed() {
		return rd.red.Render(text)
	}
	return rd.black.Render(text)
}

// Cards renders cards separated by spaces. An empty list renders as "-".
func (rd *Renderer) Cards(cards []poker.Card) string {
	if len(cards) == 0 {
		return rd.muted.Render("-")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = rd.Card(c)
	}
	return strings.Join(parts, " ")
}

// Snapshot renders the table: round, pot, board, one row per seat and the
// outcome once the hand is complete.
func (rd *Renderer) Snapshot(id string, s game.Snapshot) string {
	var b strings.Builder

	header := "Hand"
	if id != "" {
		header += " " + id
	}
	b.WriteString(rd.title.Render(header))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s   %s %d   %s %d\n",
		rd.label.Render("Round"), s.Round,
		rd.label.Render("Pot"), s.Pot,
		rd.label.Render("Bet"), s.LastBet)
	fmt.Fprintf(&b, "%s %s\n\n", rd.label.Render("Board"), rd.Cards(s.CommunityCards))

	rows := make([][]string, 0, len(s.Seats))
	for _, p := range game.PositionsFor(len(s.Seats)) {
		seat := s.Seats[p]
		marker := " "
		if p == s.NextToAct {
			marker = rd.turn.Render("▶")
		}
		last := ""
		if seat.LastAction != nil {
			last = seat.LastAction.String()
		}
		rows = append(rows, []string{
			marker,
			p.String(),
			seat.ID,
			rd.Cards(seat.Hole[:]),
			fmt.Sprint(seat.Remaining),
			fmt.Sprint(seat.InPot),
			rd.status(seat.SeatState),
			last,
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(rd.label).
		StyleFunc(rd.cellStyle).
		Headers("", "Pos", "Player", "Cards", "Stack", "Bet", "Status", "Last").
		Rows(rows...)
	b.WriteString(t.Render())
	b.WriteString("\n")

	if s.Outcome != nil {
		b.WriteString("\n")
		b.WriteString(rd.Outcome(s.Outcome))
	}
	if len(s.ActionLog) > 0 {
		b.WriteString("\n")
		b.WriteString(rd.ActionLog(s.ActionLog))
	}
	return b.String()
}

func (rd *Renderer) cellStyle(row, col int) lipgloss.Style {
	return rd.cell
}

func (rd *Renderer) status(s game.SeatState) string {
	switch {
	case s.Folded:
		return rd.muted.Render("folded")
	case s.AllIn:
		return rd.turn.Render("all-in")
	default:
		return ""
	}
}

// Outcome renders winners, their winnings and the hands shown.
func (rd *Renderer) Outcome(o *game.Outcome) string {
	var b strings.Builder
	for _, p := range o.Winners {
		line := fmt.Sprintf("%s wins %d", p, o.Winnings[p])
		if hand, ok := o.FinalHands[p]; ok && hand.Value != nil {
			line += " with " + hand.Value.String()
		}
		b.WriteString(rd.win.Render(line))
		b.WriteString("\n")
	}
	for _, p := range game.PositionsFor(len(o.NewStacks)) {
		hand, ok := o.FinalHands[p]
		if !ok || o.IsWinner(p) {
			continue
		}
		fmt.Fprintf(&b, "%s shows %s", p, rd.Cards(hand.Cards[:min(2, len(hand.Cards))]))
		if hand.Value != nil {
			fmt.Fprintf(&b, " (%s)", hand.Value)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ActionLog renders one line per accepted action.
func (rd *Renderer) ActionLog(entries []game.LogEntry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s %-5s %-8s %s", rd.label.Render(e.Round.String()), e.Position, e.SeatID, e.Action)
		if e.Action == game.Bet {
			fmt.Fprintf(&b, " %d", e.Amount)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Evaluation renders the best hand made from cards.
func (rd *Renderer) Evaluation(cards []poker.Card, v poker.HandValue) string {
	return fmt.Sprintf("%s  %s  %s\n",
		rd.Cards(cards),
		rd.win.Render(v.String()),
		rd.label.Render(fmt.Sprintf("key 0x%08x", uint32(v.Key()))))
}

// Statistics renders a simulation summary.
func (rd *Renderer) Statistics(s *statistics.Statistics) string {
	var b strings.Builder
	b.WriteString(rd.title.Render("Simulation"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %d   %s %.1f%%   %s %d\n",
		rd.label.Render("Hands"), s.Hands,
		rd.label.Render("Showdowns"), 100*s.ShowdownRate(),
		rd.label.Render("Split pots"), s.SplitPots)
	fmt.Fprintf(&b, "%s mean %.1f  sd %.1f  median %.1f  max %d\n\n",
		rd.label.Render("Pot"), s.MeanPot(), s.PotStdDev(), s.PotPercentile(0.5), s.MaxPot)

	rows := [][]string{}
	for _, c := range s.CategoryOrder() {
		n := s.Categories[c]
		rows = append(rows, []string{c.String(), fmt.Sprint(n), fmt.Sprintf("%.2f%%", 100*float64(n)/float64(s.Showdowns))})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(rd.label).
		StyleFunc(rd.cellStyle).
		Headers("Winning hand", "Count", "Share").
		Rows(rows...)
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}
