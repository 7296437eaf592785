package model

var rookDirs = []Coords{
	{Row: -1, Col: 0},
	{Row: 1, Col: 0},
	{Row: 0, Col: -1},
	{Row: 0, Col: 1},
}

func rookMoves(c Coords, color PieceColor, grid *Grid, allowAlly bool) []Coords {
	return slideMoves(c, color, grid, allowAlly, rookDirs)
}
