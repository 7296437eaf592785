package model

func queenMoves(c Coords, color PieceColor, grid *Grid, allowAlly bool) []Coords {
	return append(bishopMoves(c, color, grid, allowAlly), rookMoves(c, color, grid, allowAlly)...)
}
