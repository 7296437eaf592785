package service

import (
	"github.com/gofiber/websocket/v2"

	"github.com/castlebay/chesscore/internal/model"
	"github.com/castlebay/chesscore/internal/store"
)

// GameService is the thin facade the controllers talk to.
type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame(vsBot bool) (string, error) {
	return gs.gameManager.CreateGame(vsBot)
}

func (gs *GameService) GetGameState(gameID string) (GameView, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) MakeMove(gameID string, from, to model.Coords) error {
	return gs.gameManager.MakeMove(gameID, from, to)
}

func (gs *GameService) Select(gameID string, at model.Coords) error {
	return gs.gameManager.Select(gameID, at)
}

func (gs *GameService) Promote(gameID string, choice int) error {
	return gs.gameManager.Promote(gameID, choice)
}

func (gs *GameService) Takeback(gameID string) error {
	return gs.gameManager.Takeback(gameID)
}

func (gs *GameService) Resign(gameID string) error {
	return gs.gameManager.Resign(gameID)
}

func (gs *GameService) LegalMoves(gameID string, at model.Coords) ([]model.Coords, error) {
	return gs.gameManager.LegalMoves(gameID, at)
}

func (gs *GameService) FEN(gameID string) (string, error) {
	return gs.gameManager.FEN(gameID)
}

func (gs *GameService) ArchivedGame(gameID string) (store.ArchivedGame, error) {
	return gs.gameManager.ArchivedGame(gameID)
}

func (gs *GameService) RecentGames(limit int) ([]store.ArchivedGame, error) {
	return gs.gameManager.RecentGames(limit)
}

func (gs *GameService) RegisterConnection(gameID, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, playerID string) {
	gs.gameManager.UnregisterConnection(gameID, playerID)
}
