package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"slices"
)

// mustBoard builds a board from a FEN string, which keeps test positions
// readable next to their expectations.
func mustBoard(t *testing.T, fen string) *Board {
	t.Helper()
	b, err := FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(%q): %v", fen, err)
	}
	return b
}

func sortedMoves(positions []Coords) []Coords {
	slices.SortFunc(positions, func(a, o Coords) int { return a.Compare(o) })
	return positions
}

func squares(names ...string) []Coords {
	out := make([]Coords, 0, len(names))
	for _, n := range names {
		out = append(out, FromAlgebraic(n))
	}
	return sortedMoves(out)
}

func TestBishopOnEmptyBoard(t *testing.T) {
	b := mustBoard(t, "8/8/8/8/4B3/8/8/8 w - - 0 1")
	g := b.Grid()
	got := sortedMoves(Bishop.PseudoMoves(FromAlgebraic("e4"), White, &g, false, nil))
	want := squares(
		"a8", "b7", "c6", "d5", "f3", "g2", "h1",
		"b1", "c2", "d3", "f5", "g6", "h7",
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("bishop moves mismatch (-want +got):\n%s", diff)
	}
}

func TestBishopBlockedByAllyAndEnemy(t *testing.T) {
	// ally pawn on f5 blocks the ray, enemy pawn on c2 is capturable
	b := mustBoard(t, "8/8/8/5P2/4B3/8/2p5/8 w - - 0 1")
	g := b.Grid()
	got := sortedMoves(Bishop.PseudoMoves(FromAlgebraic("e4"), White, &g, false, nil))
	want := squares("a8", "b7", "c6", "d5", "f3", "g2", "h1", "d3", "c2")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("bishop moves mismatch (-want +got):\n%s", diff)
	}
}

func TestKnightInCorner(t *testing.T) {
	b := mustBoard(t, "8/8/8/8/8/8/8/N7 w - - 0 1")
	g := b.Grid()
	got := sortedMoves(Knight.PseudoMoves(FromAlgebraic("a1"), White, &g, false, nil))
	want := squares("b3", "c2")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("knight moves mismatch (-want +got):\n%s", diff)
	}
}

func TestRookStopsAtBlockers(t *testing.T) {
	b := mustBoard(t, "8/4p3/8/8/1P2R3/8/8/8 w - - 0 1")
	g := b.Grid()
	got := sortedMoves(Rook.PseudoMoves(FromAlgebraic("e4"), White, &g, false, nil))
	want := squares(
		"e1", "e2", "e3", "e5", "e6", "e7",
		"c4", "d4", "f4", "g4", "h4",
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rook moves mismatch (-want +got):\n%s", diff)
	}
}

func TestQueenCombinesRookAndBishop(t *testing.T) {
	b := mustBoard(t, "8/8/8/8/8/8/8/Q7 w - - 0 1")
	g := b.Grid()
	got := Queen.PseudoMoves(FromAlgebraic("a1"), White, &g, false, nil)
	if len(got) != 21 {
		t.Errorf("queen in the corner of an empty board covers %d squares, want 21", len(got))
	}
}

func TestPawnMoves(t *testing.T) {
	cases := []struct {
		name  string
		fen   string
		from  string
		color PieceColor
		want  []Coords
	}{
		{
			name:  "white double step from start",
			fen:   "8/8/8/8/8/8/4P3/8 w - - 0 1",
			from:  "e2",
			color: White,
			want:  squares("e3", "e4"),
		},
		{
			name:  "white blocked",
			fen:   "8/8/8/8/8/4p3/4P3/8 w - - 0 1",
			from:  "e2",
			color: White,
			want:  nil,
		},
		{
			name:  "white captures both diagonals",
			fen:   "8/8/8/8/8/3ppp2/4P3/8 w - - 0 1",
			from:  "e2",
			color: White,
			want:  squares("d3", "f3"),
		},
		{
			name:  "black double step from start",
			fen:   "8/4p3/8/8/8/8/8/8 w - - 0 1",
			from:  "e7",
			color: Black,
			want:  squares("e6", "e5"),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBoard(t, tc.fen)
			g := b.Grid()
			got := sortedMoves(Pawn.PseudoMoves(FromAlgebraic(tc.from), tc.color, &g, false, nil))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("pawn moves mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPawnEnPassant(t *testing.T) {
	// black just played d7d5, white pawn on e5 can take on d6
	b := mustBoard(t, "8/8/8/3pP3/8/8/8/8 w - - 0 1")
	g := b.Grid()
	history := []HistRec{{Piece: Pawn, Move: "1333"}}
	got := sortedMoves(Pawn.PseudoMoves(FromAlgebraic("e5"), White, &g, false, history))
	want := squares("e6", "d6")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("en passant moves mismatch (-want +got):\n%s", diff)
	}

	// without the double-step ply the capture square disappears
	got = sortedMoves(Pawn.PseudoMoves(FromAlgebraic("e5"), White, &g, false, nil))
	want = squares("e6")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("moves without history mismatch (-want +got):\n%s", diff)
	}
}

func TestPawnThreatSetIgnoresOccupancy(t *testing.T) {
	b := mustBoard(t, "8/8/8/8/8/8/4P3/8 w - - 0 1")
	g := b.Grid()
	got := sortedMoves(Pawn.PseudoMoves(FromAlgebraic("e2"), White, &g, true, nil))
	want := squares("d3", "f3")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pawn threat set mismatch (-want +got):\n%s", diff)
	}
}

func TestSlidingThreatPassesThroughEnemyKing(t *testing.T) {
	// the rook's threat ray must cover the square behind the black king,
	// otherwise the king could step backwards and stay on the ray
	b := mustBoard(t, "8/8/8/R3k3/8/8/8/8 w - - 0 1")
	g := b.Grid()
	threat := Rook.PseudoMoves(FromAlgebraic("a5"), White, &g, true, nil)
	if !containsCoords(threat, FromAlgebraic("f5")) {
		t.Error("threat ray should extend past the enemy king")
	}
	moves := Rook.PseudoMoves(FromAlgebraic("a5"), White, &g, false, nil)
	if containsCoords(moves, FromAlgebraic("f5")) {
		t.Error("plain moves must stop on the king square")
	}
}

func TestPinnedPieceHasNoAuthorizedMoves(t *testing.T) {
	// the white knight on e4 shields its king from the black rook
	b := mustBoard(t, "8/8/8/8/r3N2K/8/8/8 w - - 0 1")
	g := b.Grid()
	got := AuthorizedPositions(Knight, FromAlgebraic("e4"), White, &g, nil)
	if len(got) != 0 {
		t.Errorf("pinned knight has %d moves, want 0", len(got))
	}
}

func TestPinnedBishopIsReducedToThePinLine(t *testing.T) {
	// the black queen on b4 pins the bishop against the king on e1; the
	// bishop may only slide along the pin, up to capturing the queen
	b := mustBoard(t, "8/8/8/8/1q6/8/3B4/4K3 w - - 0 1")
	g := b.Grid()
	got := sortedMoves(AuthorizedPositions(Bishop, FromAlgebraic("d2"), White, &g, nil))
	want := squares("c3", "b4")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pinned bishop moves mismatch (-want +got):\n%s", diff)
	}
}

func TestAuthorizedMovesMustResolveCheck(t *testing.T) {
	// white king on e1 is checked by the rook on e8; the bishop can only block
	b := mustBoard(t, "4r3/8/8/8/8/8/3B4/4K3 w - - 0 1")
	g := b.Grid()
	got := sortedMoves(AuthorizedPositions(Bishop, FromAlgebraic("d2"), White, &g, nil))
	want := squares("e3")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("block moves mismatch (-want +got):\n%s", diff)
	}
}
