package store

import (
	"errors"
	"testing"

	"github.com/castlebay/chesscore/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoad(t *testing.T) {
	s := openTestStore(t)

	state := model.GameState{
		ToMove:      model.Black,
		IsCheckmate: true,
		FEN:         "2k4R/8/4K3/8/8/8/8/8 b - - 0 0",
		MoveHistory: []model.HistoryLine{{Number: 1}},
	}
	if err := s.SaveFinished("game-1", state); err != nil {
		t.Fatalf("SaveFinished: %v", err)
	}

	g, err := s.Game("game-1")
	if err != nil {
		t.Fatalf("Game: %v", err)
	}
	if g.Result != "1-0" {
		t.Errorf("Result = %q, want 1-0", g.Result)
	}
	if g.Winner() != "white" {
		t.Errorf("Winner = %q, want white", g.Winner())
	}
	if g.FinalFEN() != state.FEN {
		t.Errorf("FinalFEN = %q", g.FinalFEN())
	}
	if g.Moves != 1 {
		t.Errorf("Moves = %d, want 1", g.Moves)
	}
	if g.FinishedAt.IsZero() {
		t.Error("FinishedAt should be set")
	}
}

func TestDrawResult(t *testing.T) {
	s := openTestStore(t)

	state := model.GameState{ToMove: model.White, IsDraw: true}
	if err := s.SaveFinished("game-2", state); err != nil {
		t.Fatalf("SaveFinished: %v", err)
	}
	g, err := s.Game("game-2")
	if err != nil {
		t.Fatalf("Game: %v", err)
	}
	if g.Result != "1/2-1/2" {
		t.Errorf("Result = %q, want 1/2-1/2", g.Result)
	}
	if g.Winner() != "" {
		t.Errorf("Winner = %q, want empty", g.Winner())
	}
}

func TestSaveResigned(t *testing.T) {
	s := openTestStore(t)
	state := model.GameState{ToMove: model.White}
	if err := s.SaveResigned("game-3", state, model.White); err != nil {
		t.Fatalf("SaveResigned: %v", err)
	}
	g, err := s.Game("game-3")
	if err != nil {
		t.Fatalf("Game: %v", err)
	}
	if g.Result != "0-1" {
		t.Errorf("Result = %q, want 0-1", g.Result)
	}
	if g.Winner() != "black" {
		t.Errorf("Winner = %q, want black", g.Winner())
	}
}

func TestGameNotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Game("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRecent(t *testing.T) {
	s := openTestStore(t)
	for _, id := range []string{"a", "b", "c"} {
		if err := s.SaveFinished(id, model.GameState{IsDraw: true}); err != nil {
			t.Fatalf("SaveFinished(%s): %v", id, err)
		}
	}
	games, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(games) != 2 {
		t.Errorf("len = %d, want 2", len(games))
	}
}
