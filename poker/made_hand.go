package poker

import (
	"encoding/json"
	"fmt"
)

// MadeHand is a set of known cards together with its evaluated value. Value is
// nil when fewer than five cards are known, e.g. after a preflop fold.
type MadeHand struct {
	Cards []Card
	Value HandValue
}

// NewMadeHand evaluates cards when there are enough of them to form a hand.
func NewMadeHand(cards []Card) MadeHand {
	h := MadeHand{Cards: append([]Card(nil), cards...)}
	if len(cards) >= 5 && len(cards) <= 7 {
		h.Value = Evaluate(cards)
	}
	return h
}

// Compare orders made hands by value; unevaluated hands sort lowest.
func (h MadeHand) Compare(other MadeHand) int {
	switch {
	case h.Value == nil && other.Value == nil:
		return 0
	case h.Value == nil:
		return -1
	case other.Value == nil:
		return 1
	}
	return Compare(h.Value, other.Value)
}

func (h MadeHand) String() string {
	if h.Value == nil {
		return fmt.Sprint(h.Cards)
	}
	return h.Value.String()
}

type madeHandJSON struct {
	Cards       []Card `json:"cards"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Key         Key    `json:"key,omitempty"`
}

// MarshalJSON writes the cards plus a readable description. Only the cards
// are needed to decode; the value is recomputed.
func (h MadeHand) MarshalJSON() ([]byte, error) {
	out := madeHandJSON{Cards: h.Cards}
	if out.Cards == nil {
		out.Cards = []Card{}
	}
	if h.Value != nil {
		out.Category = h.Value.Category().String()
		out.Description = h.Value.String()
		out.Key = h.Value.Key()
	}
	return json.Marshal(out)
}

func (h *MadeHand) UnmarshalJSON(b []byte) error {
	var raw madeHandJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for _, c := range raw.Cards {
		if !c.Valid() {
			return fmt.Errorf("made hand contains card %s", c)
		}
	}
	*h = NewMadeHand(raw.Cards)
	return nil
}
