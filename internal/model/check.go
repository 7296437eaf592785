package model

// GetKingCoordinates scans the grid for the king of the given color. The
// undefined coordinate is returned when the king is absent, which only
// happens on hand-built test grids.
func GetKingCoordinates(grid *Grid, color PieceColor) Coords {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := grid[row][col]
			if p != nil && p.Type == King && p.Color == color {
				return Coords{Row: row, Col: col}
			}
		}
	}
	return Undefined()
}

// ProtectedPositions is the set of squares the piece at c threatens or
// defends, independent of whose turn it is. Pins are intentionally ignored
// here: a pinned piece still covers its line, it just cannot legally move.
func ProtectedPositions(t PieceType, c Coords, color PieceColor, grid *Grid, history []HistRec) []Coords {
	return t.PseudoMoves(c, color, grid, true, history)
}

// playerProtectedPositions unions the protected positions of every piece of
// the given color.
func playerProtectedPositions(grid *Grid, color PieceColor, history []HistRec) []Coords {
	var positions []Coords
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := grid[row][col]
			if p != nil && p.Color == color {
				c := Coords{Row: row, Col: col}
				positions = append(positions, ProtectedPositions(p.Type, c, color, grid, history)...)
			}
		}
	}
	return positions
}

// IsGettingChecked reports whether color's king is attacked by any opposing
// piece.
func IsGettingChecked(grid *Grid, color PieceColor, history []HistRec) bool {
	king := GetKingCoordinates(grid, color)
	if !king.IsValid() {
		return false
	}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := grid[row][col]
			if p == nil || p.Color == color {
				continue
			}
			c := Coords{Row: row, Col: col}
			if containsCoords(ProtectedPositions(p.Type, c, p.Color, grid, history), king) {
				return true
			}
		}
	}
	return false
}

// AuthorizedPositions filters the piece's raw move list down to moves that do
// not leave the mover's own king in check. Each candidate is simulated on a
// scratch copy of the grid, with castling and en passant side effects applied
// so the check test sees the true resulting position.
func AuthorizedPositions(t PieceType, c Coords, color PieceColor, grid *Grid, history []HistRec) []Coords {
	raw := t.PseudoMoves(c, color, grid, false, history)
	var legal []Coords
	for _, to := range raw {
		scratch := *grid
		applyMoveToGrid(&scratch, c, to)
		if !IsGettingChecked(&scratch, color, history) {
			legal = append(legal, to)
		}
	}
	return legal
}

// applyMoveToGrid performs the move on a grid without touching any game
// state. A king moving more than one file is a castle: the king lands two
// files over and the corner rook jumps inside it. A pawn moving diagonally
// onto an empty square is an en passant capture of the pawn beside it.
func applyMoveToGrid(g *Grid, from, to Coords) {
	p := g.At(from)
	if p == nil {
		return
	}
	if p.Type == King && abs(to.Col-from.Col) > 1 {
		sign := 1
		if to.Col < from.Col {
			sign = -1
		}
		corner := Coords{Row: from.Row, Col: 0}
		if sign > 0 {
			corner.Col = 7
		}
		landing := Coords{Row: from.Row, Col: from.Col + 2*sign}
		rookTo := Coords{Row: from.Row, Col: landing.Col - sign}
		rook := g.At(corner)
		g.Set(corner, nil)
		g.Set(from, nil)
		g.Set(landing, p)
		g.Set(rookTo, rook)
		return
	}
	if p.Type == Pawn && from.Col != to.Col && g.At(to) == nil {
		g.Set(Coords{Row: from.Row, Col: to.Col}, nil)
	}
	g.Set(to, p)
	g.Set(from, nil)
}
