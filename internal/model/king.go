package model

var kingOffsets = []Coords{
	{Row: -1, Col: -1},
	{Row: -1, Col: 0},
	{Row: -1, Col: 1},
	{Row: 0, Col: -1},
	{Row: 0, Col: 1},
	{Row: 1, Col: -1},
	{Row: 1, Col: 0},
	{Row: 1, Col: 1},
}

func kingMoves(c Coords, color PieceColor, grid *Grid, allowAlly bool, history []HistRec) []Coords {
	var positions []Coords
	for _, d := range kingOffsets {
		n := NewCoords(c.Row+d.Row, c.Col+d.Col)
		if !n.IsValid() {
			continue
		}
		if grid.isAlly(n, color) && !allowAlly {
			continue
		}
		positions = append(positions, n)
	}
	if allowAlly {
		return positions
	}
	return append(positions, castleMoves(c, color, grid, history)...)
}

// castleMoves yields castling candidates with the rook's square as the
// destination (the application layer translates that to the two-step king
// move). Preconditions: king and rook untouched per the history scan, the
// squares between them empty, the king not currently in check, and none of
// the squares the king crosses or lands on threatened by the opponent.
func castleMoves(c Coords, color PieceColor, grid *Grid, history []HistRec) []Coords {
	row := 0
	if color == White {
		row = 7
	}
	kingStart := Coords{Row: row, Col: 4}
	if c != kingStart {
		return nil
	}
	if didPieceAlreadyMove(history, King, kingStart) {
		return nil
	}
	if IsGettingChecked(grid, color, history) {
		return nil
	}

	threatened := playerProtectedPositions(grid, color.Opposite(), history)
	empty := func(col int) bool {
		return grid.At(Coords{Row: row, Col: col}) == nil
	}
	safe := func(col int) bool {
		return !containsCoords(threatened, Coords{Row: row, Col: col})
	}
	untouchedRook := func(corner Coords) bool {
		p := grid.At(corner)
		return p != nil && p.Type == Rook && p.Color == color &&
			!didPieceAlreadyMove(history, Rook, corner)
	}

	var positions []Coords

	// king side: king crosses f and lands on g
	shortRook := Coords{Row: row, Col: 7}
	if untouchedRook(shortRook) && empty(5) && empty(6) && safe(5) && safe(6) {
		positions = append(positions, shortRook)
	}

	// queen side: king crosses d and lands on c; b only needs to be empty
	longRook := Coords{Row: row, Col: 0}
	if untouchedRook(longRook) && empty(1) && empty(2) && empty(3) && safe(2) && safe(3) {
		positions = append(positions, longRook)
	}

	return positions
}
