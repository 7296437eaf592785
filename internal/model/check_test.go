package model

import "testing"

func TestIsGettingChecked(t *testing.T) {
	cases := []struct {
		name  string
		fen   string
		color PieceColor
		want  bool
	}{
		{
			name:  "rook on the file",
			fen:   "8/8/8/4r3/4K3/8/8/8 w - - 0 1",
			color: White,
			want:  true,
		},
		{
			name:  "own pawn shields the file",
			fen:   "8/8/4r3/4P3/4K3/8/8/8 w - - 0 1",
			color: White,
			want:  false,
		},
		{
			name:  "open file in front of black king but no attacker on it",
			fen:   "rnbqk2r/pppppppp/8/8/8/8/PPPP1PPP/RNBQRB1K b - - 0 1",
			color: Black,
			want:  false,
		},
		{
			name:  "black pawn advanced on the open file",
			fen:   "rnbqk2r/pppp1ppp/4p3/8/8/8/PPPP1PPP/RNBQRB1K b - - 0 1",
			color: Black,
			want:  false,
		},
		{
			name:  "knight attack",
			fen:   "8/8/8/8/8/3n4/8/4K3 w - - 0 1",
			color: White,
			want:  true,
		},
		{
			name:  "pawn attacks diagonally only",
			fen:   "8/8/8/8/4p3/4K3/8/8 w - - 0 1",
			color: White,
			want:  false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBoard(t, tc.fen)
			g := b.Grid()
			if got := IsGettingChecked(&g, tc.color, nil); got != tc.want {
				t.Errorf("IsGettingChecked = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestGetKingCoordinates(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	g := b.Grid()
	if got := GetKingCoordinates(&g, White); got != FromAlgebraic("e1") {
		t.Errorf("white king at %v", got)
	}
	if got := GetKingCoordinates(&g, Black); got != FromAlgebraic("e8") {
		t.Errorf("black king at %v", got)
	}
	var empty Grid
	if got := GetKingCoordinates(&empty, White); got != Undefined() {
		t.Errorf("missing king = %v, want undefined", got)
	}
}
