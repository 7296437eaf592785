package model

import (
	"fmt"
)

// UndefinedPosition marks a coordinate component with no selection behind it.
const UndefinedPosition = -1

// Coords addresses a cell on the 8x8 grid. Row 0 is the top of the board as
// stored, which is rank 8 in chess notation. Both components must be in [0,7]
// for the coordinate to be valid; anything else represents "no selection" or
// a transient cursor state.
type Coords struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NewCoords builds a coordinate. Components slightly outside the board are
// tolerated so ray/offset arithmetic can run before the validity check;
// anything far out of range collapses to the undefined sentinel.
func NewCoords(row, col int) Coords {
	if row < -2 || row > 9 || col < -2 || col > 9 {
		return Undefined()
	}
	return Coords{Row: row, Col: col}
}

// Undefined returns the "no selection" coordinate.
func Undefined() Coords {
	return Coords{Row: UndefinedPosition, Col: UndefinedPosition}
}

func (c Coords) IsValid() bool {
	return c.Row >= 0 && c.Row < 8 && c.Col >= 0 && c.Col < 8
}

// Compare orders coordinates row-major, which keeps enumerated move lists
// deterministic for cursor cycling.
func (c Coords) Compare(o Coords) int {
	if c.Row != o.Row {
		return c.Row - o.Row
	}
	return c.Col - o.Col
}

// ToHist encodes the coordinate as the two-digit history code, e.g. row 6
// col 4 becomes "64".
func (c Coords) ToHist() string {
	return fmt.Sprintf("%d%d", c.Row, c.Col)
}

// FromHist decodes a two-digit history code back into a coordinate.
func FromHist(code string) Coords {
	if len(code) != 2 || !isDigitByte(code[0]) || !isDigitByte(code[1]) {
		return Undefined()
	}
	return Coords{Row: int(code[0] - '0'), Col: int(code[1] - '0')}
}

// Algebraic renders the coordinate in file-letter/rank-digit form ("e4").
// The internal row numbering is inverted relative to chess ranks.
func (c Coords) Algebraic() string {
	if !c.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", byte('a'+c.Col), 8-c.Row)
}

// FromAlgebraic parses a square like "e3" or "b8".
func FromAlgebraic(square string) Coords {
	if len(square) != 2 {
		return Undefined()
	}
	col := int(square[0] - 'a')
	if !isDigitByte(square[1]) {
		return Undefined()
	}
	row := 8 - int(square[1]-'0')
	c := Coords{Row: row, Col: col}
	if !c.IsValid() {
		return Undefined()
	}
	return c
}

// FromEngineMove decodes a long-algebraic engine reply such as "e7e5" or
// "a7a8q" into origin and destination coordinates.
func FromEngineMove(move string) (Coords, Coords, error) {
	if len(move) < 4 {
		return Undefined(), Undefined(), fmt.Errorf("engine move %q is too short", move)
	}
	from := FromAlgebraic(move[:2])
	to := FromAlgebraic(move[2:4])
	if !from.IsValid() || !to.IsValid() {
		return Undefined(), Undefined(), fmt.Errorf("engine move %q has invalid squares", move)
	}
	return from, to, nil
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}
