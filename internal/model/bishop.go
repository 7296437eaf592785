package model

var bishopDirs = []Coords{
	{Row: -1, Col: -1},
	{Row: -1, Col: 1},
	{Row: 1, Col: -1},
	{Row: 1, Col: 1},
}

func bishopMoves(c Coords, color PieceColor, grid *Grid, allowAlly bool) []Coords {
	return slideMoves(c, color, grid, allowAlly, bishopDirs)
}
