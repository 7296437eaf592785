package model

func pawnMoves(c Coords, color PieceColor, grid *Grid, allowAlly bool, history []HistRec) []Coords {
	var positions []Coords

	dir := 1
	startRow := 1
	if color == White {
		dir = -1
		startRow = 6
	}

	if allowAlly {
		// Threat set: the two capture diagonals, occupied or not.
		for _, dc := range []int{-1, 1} {
			n := NewCoords(c.Row+dir, c.Col+dc)
			if n.IsValid() {
				positions = append(positions, n)
			}
		}
		return positions
	}

	one := NewCoords(c.Row+dir, c.Col)
	if one.IsValid() && grid.At(one) == nil {
		positions = append(positions, one)
		two := NewCoords(c.Row+2*dir, c.Col)
		if c.Row == startRow && two.IsValid() && grid.At(two) == nil {
			positions = append(positions, two)
		}
	}

	for _, dc := range []int{-1, 1} {
		n := NewCoords(c.Row+dir, c.Col+dc)
		if !n.IsValid() {
			continue
		}
		p := grid.At(n)
		if p != nil && p.Color != color {
			positions = append(positions, n)
		} else if p == nil && isEnPassantTarget(c, n, history) {
			positions = append(positions, n)
		}
	}

	return positions
}

// isEnPassantTarget reports whether capturing onto n is a legal en passant:
// the immediately preceding ply must be an enemy pawn double-step landing
// beside the capturing pawn.
func isEnPassantTarget(c, n Coords, history []HistRec) bool {
	if len(history) == 0 {
		return false
	}
	last := history[len(history)-1]
	if last.Piece != Pawn {
		return false
	}
	from, to := last.From(), last.To()
	if abs(to.Row-from.Row) != 2 {
		return false
	}
	return to.Row == c.Row && to.Col == n.Col && abs(to.Col-c.Col) == 1
}
