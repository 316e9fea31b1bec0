package main

import (
	"fmt"
	"strings"

	"github.com/lox/holdem/poker"
)

type EvalCmd struct {
	Cards []string `arg:"" help:"5 to 7 cards, e.g. 'As Kd Qh Jc Ts' or AsKdQhJcTs"`
}

func parseEvalCards(args []string) ([]poker.Card, error) {
	cards, err := poker.ParseCards(strings.Join(args, " "))
	if err != nil {
		return nil, err
	}
	if len(cards) < 5 || len(cards) > 7 {
		return nil, fmt.Errorf("need 5 to 7 cards, got %d", len(cards))
	}
	seen := make(map[poker.Card]bool, len(cards))
	for _, c := range cards {
		if c.IsHidden() {
			return nil, fmt.Errorf("cannot evaluate a hidden card")
		}
		if seen[c] {
			return nil, fmt.Errorf("duplicate card %s", c)
		}
		seen[c] = true
	}
	return cards, nil
}

func (c *EvalCmd) Run(app *App) error {
	cards, err := parseEvalCards(c.Cards)
	if err != nil {
		return err
	}
	app.printf("%s", app.render.Evaluation(cards, poker.Evaluate(cards)))
	return nil
}
