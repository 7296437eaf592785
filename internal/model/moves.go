package model

// PseudoMoves enumerates every square the piece at c could reach, ignoring
// check-safety. With allowAlly set the result is the piece's threatened set
// instead: ally squares count as defended, and sliding rays keep scanning
// past the enemy king so a king cannot hide on the far side of its attacker's
// line.
func (t PieceType) PseudoMoves(c Coords, color PieceColor, grid *Grid, allowAlly bool, history []HistRec) []Coords {
	switch t {
	case Pawn:
		return pawnMoves(c, color, grid, allowAlly, history)
	case Knight:
		return knightMoves(c, color, grid, allowAlly)
	case Bishop:
		return bishopMoves(c, color, grid, allowAlly)
	case Rook:
		return rookMoves(c, color, grid, allowAlly)
	case Queen:
		return queenMoves(c, color, grid, allowAlly)
	case King:
		return kingMoves(c, color, grid, allowAlly, history)
	}
	return nil
}

// slideMoves walks each ray until the board edge or a blocking piece. In
// threat mode the enemy king does not block the ray.
func slideMoves(c Coords, color PieceColor, grid *Grid, allowAlly bool, dirs []Coords) []Coords {
	var positions []Coords
	for _, d := range dirs {
		for i := 1; i < 8; i++ {
			n := NewCoords(c.Row+d.Row*i, c.Col+d.Col*i)
			if !n.IsValid() {
				break
			}
			p := grid.At(n)
			if p == nil {
				positions = append(positions, n)
				continue
			}
			if p.Color == color {
				if allowAlly {
					positions = append(positions, n)
				}
				break
			}
			positions = append(positions, n)
			if !allowAlly || !grid.isOppositeKing(n, color) {
				break
			}
		}
	}
	return positions
}

func containsCoords(positions []Coords, c Coords) bool {
	for _, p := range positions {
		if p == c {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
