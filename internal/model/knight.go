package model

var knightOffsets = []Coords{
	{Row: -2, Col: -1},
	{Row: -2, Col: 1},
	{Row: -1, Col: -2},
	{Row: -1, Col: 2},
	{Row: 1, Col: -2},
	{Row: 1, Col: 2},
	{Row: 2, Col: -1},
	{Row: 2, Col: 1},
}

func knightMoves(c Coords, color PieceColor, grid *Grid, allowAlly bool) []Coords {
	var positions []Coords
	for _, d := range knightOffsets {
		n := NewCoords(c.Row+d.Row, c.Col+d.Col)
		if !n.IsValid() {
			continue
		}
		if grid.isAlly(n, color) && !allowAlly {
			continue
		}
		positions = append(positions, n)
	}
	return positions
}
