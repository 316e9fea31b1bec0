package game

import "fmt"

// Position is a table position label.
type Position uint8

const (
	NoPosition Position = iota
	SB
	BB
	UTG
	UTG1
	UTG2
	LJ
	HJ
	CO
	BTN
)

// MinSeats and MaxSeats bound the number of seats in a hand.
const (
	MinSeats = 2
	MaxSeats = 9
)

var positionNames = [...]string{
	NoPosition: "",
	SB:         "SB",
	BB:         "BB",
	UTG:        "UTG",
	UTG1:       "UTG+1",
	UTG2:       "UTG+2",
	LJ:         "LJ",
	HJ:         "HJ",
	CO:         "CO",
	BTN:        "BTN",
}

func (p Position) String() string {
	if int(p) >= len(positionNames) {
		return fmt.Sprintf("Position(%d)", uint8(p))
	}
	return positionNames[p]
}

// ParsePosition parses a label such as "BTN" or "UTG+1".
func ParsePosition(s string) (Position, error) {
	for i, name := range positionNames {
		if i > 0 && name == s {
			return Position(i), nil
		}
	}
	return NoPosition, fmt.Errorf("unknown position %q", s)
}

func (p Position) MarshalText() ([]byte, error) {
	if int(p) >= len(positionNames) {
		return nil, fmt.Errorf("invalid position %d", uint8(p))
	}
	return []byte(positionNames[p]), nil
}

func (p *Position) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*p = NoPosition
		return nil
	}
	parsed, err := ParsePosition(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// seatingTables lists the positions used for each seat count in deal order,
// starting from the button.
var seatingTables = map[int][]Position{
	2: {BTN, BB},
	3: {BTN, SB, BB},
	4: {BTN, SB, BB, UTG},
	5: {BTN, SB, BB, UTG, CO},
	6: {BTN, SB, BB, UTG, UTG1, CO},
	7: {BTN, SB, BB, UTG, UTG1, HJ, CO},
	8: {BTN, SB, BB, UTG, UTG1, UTG2, HJ, CO},
	9: {BTN, SB, BB, UTG, UTG1, UTG2, LJ, HJ, CO},
}

// PositionsFor returns the positions used at a table of n seats, starting
// with the button. It returns nil for unsupported seat counts.
func PositionsFor(n int) []Position {
	table, ok := seatingTables[n]
	if !ok {
		return nil
	}
	return append([]Position(nil), table...)
}
