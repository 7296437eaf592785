// Package store archives finished games in a SQLite database.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/castlebay/chesscore/internal/model"
)

var ErrNotFound = errors.New("store: game not found")

const schema = `CREATE TABLE IF NOT EXISTS games (
	id TEXT PRIMARY KEY,
	result TEXT NOT NULL,
	moves INTEGER NOT NULL,
	finished_at TEXT NOT NULL,
	metadata TEXT NOT NULL
	);`

type Store struct {
	db *sql.DB
}

// Open creates or opens the SQLite file at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// ArchivedGame is one finished game as stored.
type ArchivedGame struct {
	ID         string
	Result     string
	Moves      int
	FinishedAt time.Time
	Metadata   string
}

// FinalFEN pulls the last position out of the metadata blob.
func (g ArchivedGame) FinalFEN() string {
	return gjson.Get(g.Metadata, "fen").String()
}

// Winner pulls the winning color out of the metadata blob, empty for draws.
func (g ArchivedGame) Winner() string {
	return gjson.Get(g.Metadata, "winner").String()
}

// SaveFinished archives a terminated game under its session id.
func (s *Store) SaveFinished(id string, state model.GameState) error {
	result, winner := resultOf(state)

	metadata := "{}"
	metadata, _ = sjson.Set(metadata, "fen", state.FEN)
	metadata, _ = sjson.Set(metadata, "result", result)
	if winner != "" {
		metadata, _ = sjson.Set(metadata, "winner", winner)
	}
	metadata, _ = sjson.Set(metadata, "moveCount", len(state.MoveHistory))

	_, err := s.db.Exec(`INSERT OR REPLACE INTO games
		(id, result, moves, finished_at, metadata)
		VALUES (?, ?, ?, ?, ?);`,
		id, result, len(state.MoveHistory), time.Now().UTC().Format(time.RFC3339), metadata)
	if err != nil {
		return fmt.Errorf("store: save game %s: %w", id, err)
	}
	return nil
}

// SaveResigned archives a game ended by resignation. The loser is the side
// that resigned.
func (s *Store) SaveResigned(id string, state model.GameState, loser model.PieceColor) error {
	result := "1-0"
	if loser == model.White {
		result = "0-1"
	}
	winner := string(loser.Opposite())

	metadata := "{}"
	metadata, _ = sjson.Set(metadata, "fen", state.FEN)
	metadata, _ = sjson.Set(metadata, "result", result)
	metadata, _ = sjson.Set(metadata, "winner", winner)
	metadata, _ = sjson.Set(metadata, "resigned", true)
	metadata, _ = sjson.Set(metadata, "moveCount", len(state.MoveHistory))

	_, err := s.db.Exec(`INSERT OR REPLACE INTO games
		(id, result, moves, finished_at, metadata)
		VALUES (?, ?, ?, ?, ?);`,
		id, result, len(state.MoveHistory), time.Now().UTC().Format(time.RFC3339), metadata)
	if err != nil {
		return fmt.Errorf("store: save resigned game %s: %w", id, err)
	}
	return nil
}

// Game loads one archived game by session id.
func (s *Store) Game(id string) (ArchivedGame, error) {
	row := s.db.QueryRow(`SELECT id, result, moves, finished_at, metadata
		FROM games WHERE id = ?;`, id)
	g, err := scanGame(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return ArchivedGame{}, ErrNotFound
	}
	if err != nil {
		return ArchivedGame{}, fmt.Errorf("store: load game %s: %w", id, err)
	}
	return g, nil
}

// Recent lists the latest archived games, newest first.
func (s *Store) Recent(limit int) ([]ArchivedGame, error) {
	rows, err := s.db.Query(`SELECT id, result, moves, finished_at, metadata
		FROM games ORDER BY finished_at DESC LIMIT ?;`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list games: %w", err)
	}
	defer rows.Close()

	var games []ArchivedGame
	for rows.Next() {
		g, err := scanGame(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("store: scan game: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func scanGame(scan func(...any) error) (ArchivedGame, error) {
	var g ArchivedGame
	var finished string
	if err := scan(&g.ID, &g.Result, &g.Moves, &finished, &g.Metadata); err != nil {
		return ArchivedGame{}, err
	}
	t, err := time.Parse(time.RFC3339, finished)
	if err != nil {
		return ArchivedGame{}, err
	}
	g.FinishedAt = t
	return g, nil
}

// resultOf maps a terminal game state to its result string. The side to move
// in a checkmated state is the loser.
func resultOf(state model.GameState) (result, winner string) {
	switch {
	case state.IsCheckmate && state.ToMove == model.White:
		return "0-1", string(model.Black)
	case state.IsCheckmate:
		return "1-0", string(model.White)
	case state.IsDraw:
		return "1/2-1/2", ""
	default:
		return "*", ""
	}
}
