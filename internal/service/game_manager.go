package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/castlebay/chesscore/internal/model"
	"github.com/castlebay/chesscore/internal/store"
	"github.com/castlebay/chesscore/internal/ws"
)

var (
	ErrGameNotFound     = errors.New("game not found")
	ErrGameOver         = errors.New("game is over")
	ErrIllegalMove      = errors.New("illegal move")
	ErrPromotionPending = errors.New("promotion choice pending")
	ErrNoPromotion      = errors.New("no promotion pending")
	ErrBotsDisabled     = errors.New("bot play is not configured")
)

// RunningEngine is a live engine process attached to one game.
type RunningEngine interface {
	model.Engine
	Close() error
}

// EngineFactory launches a fresh engine for a bot game.
type EngineFactory func(ctx context.Context) (RunningEngine, error)

type gameSession struct {
	id       string
	board    *model.Board
	clock    *model.ThinkClock
	vsBot    bool
	engine   RunningEngine
	resigned bool
	conns    map[string]*websocket.Conn
}

func (s *gameSession) over() bool {
	return s.resigned || s.board.IsCheckmate || s.board.IsDraw
}

// GameManager owns every live game session. All session access is serialized
// through its lock, which keeps the boards free of internal locking.
type GameManager struct {
	mu    sync.RWMutex
	games map[string]*gameSession

	newEngine EngineFactory
	archive   *store.Store
	fenLog    io.Writer
}

type ManagerOption func(*GameManager)

// WithEngineFactory enables bot games.
func WithEngineFactory(f EngineFactory) ManagerOption {
	return func(gm *GameManager) { gm.newEngine = f }
}

// WithArchive stores finished games in the given archive.
func WithArchive(s *store.Store) ManagerOption {
	return func(gm *GameManager) { gm.archive = s }
}

// WithFENLog appends every position sent to the engine to w.
func WithFENLog(w io.Writer) ManagerOption {
	return func(gm *GameManager) { gm.fenLog = w }
}

func NewGameManager(opts ...ManagerOption) *GameManager {
	gm := &GameManager{
		games: make(map[string]*gameSession),
	}
	for _, opt := range opts {
		opt(gm)
	}
	return gm
}

// CreateGame starts a new session and returns its id. With vsBot set an
// engine process is launched and attached; White is the human side.
func (gm *GameManager) CreateGame(vsBot bool) (string, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	board := model.NewBoard()
	if gm.fenLog != nil {
		board.SetFENLog(gm.fenLog)
	}

	session := &gameSession{
		id:    uuid.New().String(),
		board: board,
		clock: model.NewThinkClock(),
		vsBot: vsBot,
		conns: make(map[string]*websocket.Conn),
	}

	if vsBot {
		if gm.newEngine == nil {
			return "", ErrBotsDisabled
		}
		eng, err := gm.newEngine(context.Background())
		if err != nil {
			return "", fmt.Errorf("start engine: %w", err)
		}
		session.engine = eng
		board.SetEngine(eng)
	}

	session.clock.Start(model.White)
	gm.games[session.id] = session
	return session.id, nil
}

func (gm *GameManager) session(gameID string) (*gameSession, error) {
	s, ok := gm.games[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}
	return s, nil
}

// GetGameState snapshots a session for the client.
func (gm *GameManager) GetGameState(gameID string) (GameView, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	s, err := gm.session(gameID)
	if err != nil {
		return GameView{}, err
	}
	return gm.view(s), nil
}

// GameView is the full client-facing snapshot: board state plus the
// session-level extras the model does not know about.
type GameView struct {
	ID string `json:"id"`
	model.GameState
	VsBot    bool             `json:"vsBot"`
	Resigned bool             `json:"resigned"`
	Clock    model.ClockState `json:"clock"`
}

func (gm *GameManager) view(s *gameSession) GameView {
	return GameView{
		ID:        s.id,
		GameState: s.board.State(),
		VsBot:     s.vsBot,
		Resigned:  s.resigned,
		Clock:     s.clock.State(),
	}
}

// MakeMove applies from->to for the side to move. The move must be among the
// piece's authorized destinations. In a bot game the engine reply is played
// before returning; an engine failure leaves the human move on the board and
// is reported so the client can retry.
func (gm *GameManager) MakeMove(gameID string, from, to model.Coords) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	s, err := gm.session(gameID)
	if err != nil {
		return err
	}
	if s.over() {
		return ErrGameOver
	}
	b := s.board
	if b.IsPromotion {
		return ErrPromotionPending
	}

	b.Unselect()
	b.Cursor = from
	if err := b.SelectCell(); err != nil {
		return err
	}
	if !b.IsCellSelected() {
		return ErrIllegalMove
	}
	legal := false
	for _, c := range b.AuthorizedDestinations(from) {
		if c == to {
			legal = true
			break
		}
	}
	if !legal {
		b.Unselect()
		return ErrIllegalMove
	}

	b.Cursor = to
	moveErr := b.SelectCell()

	gm.afterAction(s)
	return moveErr
}

// Select moves the cursor to the given square and performs the confirm
// action, driving the same selection cycle a cursor-based client uses.
func (gm *GameManager) Select(gameID string, at model.Coords) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	s, err := gm.session(gameID)
	if err != nil {
		return err
	}
	if s.over() {
		return ErrGameOver
	}

	s.board.Cursor = at
	selErr := s.board.SelectCell()
	gm.afterAction(s)
	return selErr
}

// Promote resolves a pending promotion with the piece at the given popup
// index.
func (gm *GameManager) Promote(gameID string, choice int) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	s, err := gm.session(gameID)
	if err != nil {
		return err
	}
	b := s.board
	if !b.IsPromotion {
		return ErrNoPromotion
	}
	if choice < 0 || choice > 3 {
		return fmt.Errorf("promotion choice %d out of range", choice)
	}

	b.PromotionCursor = choice
	selErr := b.SelectCell()
	gm.afterAction(s)
	return selErr
}

// Takeback reverts the last ply, or the last two in a bot game so it is the
// human's turn again.
func (gm *GameManager) Takeback(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	s, err := gm.session(gameID)
	if err != nil {
		return err
	}
	if s.resigned {
		return ErrGameOver
	}

	s.board.Takeback()
	if s.vsBot && s.board.PlayerTurn == model.Black {
		s.board.Takeback()
	}
	s.clock.Start(s.board.PlayerTurn)
	gm.broadcast(s)
	return nil
}

// Resign ends the game with the side to move losing.
func (gm *GameManager) Resign(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	s, err := gm.session(gameID)
	if err != nil {
		return err
	}
	if s.over() {
		return ErrGameOver
	}

	loser := s.board.PlayerTurn
	s.resigned = true
	s.clock.Stop()
	gm.closeEngine(s)
	if gm.archive != nil {
		if err := gm.archive.SaveResigned(s.id, s.board.State(), loser); err != nil {
			log.Printf("archive game %s: %v", s.id, err)
		}
	}
	gm.broadcast(s)
	return nil
}

// LegalMoves lists the authorized destinations of the side-to-move piece on
// the given square.
func (gm *GameManager) LegalMoves(gameID string, at model.Coords) ([]model.Coords, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	s, err := gm.session(gameID)
	if err != nil {
		return nil, err
	}
	return s.board.AuthorizedDestinations(at), nil
}

// FEN renders the session's current position.
func (gm *GameManager) FEN(gameID string) (string, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	s, err := gm.session(gameID)
	if err != nil {
		return "", err
	}
	return s.board.FENPosition(), nil
}

// ArchivedGame loads a finished game from the archive.
func (gm *GameManager) ArchivedGame(gameID string) (store.ArchivedGame, error) {
	if gm.archive == nil {
		return store.ArchivedGame{}, store.ErrNotFound
	}
	return gm.archive.Game(gameID)
}

// RecentGames lists the latest archived games.
func (gm *GameManager) RecentGames(limit int) ([]store.ArchivedGame, error) {
	if gm.archive == nil {
		return nil, nil
	}
	return gm.archive.Recent(limit)
}

// afterAction settles the clock, archives finished games, and pushes the new
// state to every connected client.
func (gm *GameManager) afterAction(s *gameSession) {
	if s.over() {
		s.clock.Stop()
		gm.closeEngine(s)
		if gm.archive != nil && !s.resigned {
			if err := gm.archive.SaveFinished(s.id, s.board.State()); err != nil {
				log.Printf("archive game %s: %v", s.id, err)
			}
		}
	} else {
		s.clock.Start(s.board.PlayerTurn)
	}
	gm.broadcast(s)
}

func (gm *GameManager) closeEngine(s *gameSession) {
	if s.engine == nil {
		return
	}
	if err := s.engine.Close(); err != nil {
		log.Printf("close engine for game %s: %v", s.id, err)
	}
	s.engine = nil
}

// RegisterConnection attaches a websocket to the session's state feed. The
// current state is pushed immediately.
func (gm *GameManager) RegisterConnection(gameID, playerID string, conn *websocket.Conn) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	s, err := gm.session(gameID)
	if err != nil {
		return err
	}
	s.conns[playerID] = conn
	gm.sendState(s, playerID, conn)
	return nil
}

func (gm *GameManager) UnregisterConnection(gameID, playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	s, err := gm.session(gameID)
	if err != nil {
		return
	}
	delete(s.conns, playerID)
}

func (gm *GameManager) broadcast(s *gameSession) {
	for playerID, conn := range s.conns {
		gm.sendState(s, playerID, conn)
	}
}

func (gm *GameManager) sendState(s *gameSession, playerID string, conn *websocket.Conn) {
	payload, err := json.Marshal(gm.view(s))
	if err != nil {
		log.Printf("marshal state for game %s: %v", s.id, err)
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: payload}
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("push state to player %s: %v", playerID, err)
		delete(s.conns, playerID)
	}
}
