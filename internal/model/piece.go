package model

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

type PieceColor string

const (
	White PieceColor = "white"
	Black PieceColor = "black"
)

func (c PieceColor) Opposite() PieceColor {
	if c == White {
		return Black
	}
	return White
}

type Piece struct {
	Type  PieceType  `json:"type"`
	Color PieceColor `json:"color"`
}

func NewPiece(t PieceType, c PieceColor) *Piece {
	return &Piece{Type: t, Color: c}
}

// FENLetter returns the single-letter FEN encoding: uppercase for white,
// lowercase for black.
func (p *Piece) FENLetter() string {
	var letter string
	switch p.Type {
	case King:
		letter = "k"
	case Queen:
		letter = "q"
	case Rook:
		letter = "r"
	case Bishop:
		letter = "b"
	case Knight:
		letter = "n"
	case Pawn:
		letter = "p"
	}
	if p.Color == White {
		return string(letter[0] - 32)
	}
	return letter
}

// PieceFromFENLetter decodes a FEN piece letter, nil for anything else.
func PieceFromFENLetter(ch byte) *Piece {
	color := Black
	if ch >= 'A' && ch <= 'Z' {
		color = White
		ch += 32
	}
	switch ch {
	case 'k':
		return NewPiece(King, color)
	case 'q':
		return NewPiece(Queen, color)
	case 'r':
		return NewPiece(Rook, color)
	case 'b':
		return NewPiece(Bishop, color)
	case 'n':
		return NewPiece(Knight, color)
	case 'p':
		return NewPiece(Pawn, color)
	}
	return nil
}

// Glyph returns the Unicode chess symbol used by the history display.
func (p *Piece) Glyph() string {
	white := map[PieceType]string{
		King: "♔", Queen: "♕", Rook: "♖", Bishop: "♗", Knight: "♘", Pawn: "♙",
	}
	black := map[PieceType]string{
		King: "♚", Queen: "♛", Rook: "♜", Bishop: "♝", Knight: "♞", Pawn: "♟",
	}
	if p.Color == White {
		return white[p.Type]
	}
	return black[p.Type]
}

// Notation returns the algebraic piece prefix (empty for pawns).
func (t PieceType) Notation() string {
	switch t {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

// Grid is the 8x8 board matrix. Cells hold nil for empty squares. The array
// copies by value, which is what the check filter relies on when it simulates
// candidate moves on a scratch grid.
type Grid [8][8]*Piece

func (g *Grid) At(c Coords) *Piece {
	return g[c.Row][c.Col]
}

func (g *Grid) Set(c Coords, p *Piece) {
	g[c.Row][c.Col] = p
}

func (g *Grid) isAlly(c Coords, color PieceColor) bool {
	p := g.At(c)
	return p != nil && p.Color == color
}

func (g *Grid) isOppositeKing(c Coords, color PieceColor) bool {
	p := g.At(c)
	return p != nil && p.Type == King && p.Color == color.Opposite()
}

// StartingGrid lays out the standard initial position: black on rows 0-1,
// white on rows 6-7.
func StartingGrid() Grid {
	var g Grid
	back := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col, t := range back {
		g[0][col] = NewPiece(t, Black)
		g[7][col] = NewPiece(t, White)
	}
	for col := 0; col < 8; col++ {
		g[1][col] = NewPiece(Pawn, Black)
		g[6][col] = NewPiece(Pawn, White)
	}
	return g
}
