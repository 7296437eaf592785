package model

// HistRec is one ply of the game record: the kind of piece that moved and the
// compact from/to digit code, e.g. "6444" for row6/col4 to row4/col4.
type HistRec struct {
	Piece PieceType `json:"piece"`
	Move  string    `json:"move"`
}

func (h HistRec) From() Coords {
	return FromHist(h.Move[0:2])
}

func (h HistRec) To() Coords {
	return FromHist(h.Move[2:4])
}

// didPieceAlreadyMove reports whether the history contains a record of the
// given piece kind leaving the given square. Castling rights erode on the
// strength of this scan alone.
func didPieceAlreadyMove(history []HistRec, t PieceType, origin Coords) bool {
	for _, rec := range history {
		if rec.Piece == t && rec.Move[0:2] == origin.ToHist() {
			return true
		}
	}
	return false
}

// HistoryLine is one numbered move pair prepared for a rendering collaborator:
// piece glyphs plus from/to algebraic notation per side.
type HistoryLine struct {
	Number     int    `json:"number"`
	WhiteGlyph string `json:"whiteGlyph"`
	WhiteMove  string `json:"whiteMove"`
	BlackGlyph string `json:"blackGlyph"`
	BlackMove  string `json:"blackMove"`
}

// HistoryDisplay converts the move history into numbered white/black pairs.
func (b *Board) HistoryDisplay() []HistoryLine {
	var lines []HistoryLine
	for i := 0; i < len(b.MoveHistory); i += 2 {
		white := b.MoveHistory[i]
		line := HistoryLine{
			Number:     i/2 + 1,
			WhiteGlyph: NewPiece(white.Piece, White).Glyph(),
			WhiteMove:  moveNotation(white),
		}
		if i+1 < len(b.MoveHistory) {
			black := b.MoveHistory[i+1]
			line.BlackGlyph = NewPiece(black.Piece, Black).Glyph()
			line.BlackMove = moveNotation(black)
		}
		lines = append(lines, line)
	}
	return lines
}

func moveNotation(rec HistRec) string {
	return rec.From().Algebraic() + rec.To().Algebraic()
}
