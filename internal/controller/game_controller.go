package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/castlebay/chesscore/internal/model"
	"github.com/castlebay/chesscore/internal/service"
	"github.com/castlebay/chesscore/internal/store"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	VsBot bool `json:"vsBot"`
}

type squareRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (r squareRequest) coords() model.Coords {
	return model.NewCoords(r.Row, r.Col)
}

type moveRequest struct {
	From squareRequest `json:"from"`
	To   squareRequest `json:"to"`
}

type promoteRequest struct {
	Choice int `json:"choice"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "malformed request body",
			})
		}
	}

	gameID, err := gc.gameService.CreateGame(req.VsBot)
	if err != nil {
		if errors.Is(err, service.ErrBotsDisabled) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	state, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return statusFor(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "malformed request body",
		})
	}

	err := gc.gameService.MakeMove(c.Params("gameId"), req.From.coords(), req.To.coords())
	if err != nil {
		return statusFor(c, err)
	}
	return gc.GetGameState(c)
}

func (gc *GameController) Select(c *fiber.Ctx) error {
	var req squareRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "malformed request body",
		})
	}

	if err := gc.gameService.Select(c.Params("gameId"), req.coords()); err != nil {
		return statusFor(c, err)
	}
	return gc.GetGameState(c)
}

func (gc *GameController) Promote(c *fiber.Ctx) error {
	var req promoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "malformed request body",
		})
	}

	if err := gc.gameService.Promote(c.Params("gameId"), req.Choice); err != nil {
		return statusFor(c, err)
	}
	return gc.GetGameState(c)
}

func (gc *GameController) Takeback(c *fiber.Ctx) error {
	if err := gc.gameService.Takeback(c.Params("gameId")); err != nil {
		return statusFor(c, err)
	}
	return gc.GetGameState(c)
}

func (gc *GameController) Resign(c *fiber.Ctx) error {
	if err := gc.gameService.Resign(c.Params("gameId")); err != nil {
		return statusFor(c, err)
	}
	return gc.GetGameState(c)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	at := model.NewCoords(c.QueryInt("row", -1), c.QueryInt("col", -1))
	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), at)
	if err != nil {
		return statusFor(c, err)
	}
	return c.JSON(fiber.Map{
		"moves": moves,
	})
}

func (gc *GameController) GetFEN(c *fiber.Ctx) error {
	fen, err := gc.gameService.FEN(c.Params("gameId"))
	if err != nil {
		return statusFor(c, err)
	}
	return c.JSON(fiber.Map{
		"fen": fen,
	})
}

func (gc *GameController) GetArchivedGame(c *fiber.Ctx) error {
	game, err := gc.gameService.ArchivedGame(c.Params("gameId"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "game not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load game",
		})
	}
	return c.JSON(game)
}

func (gc *GameController) ListRecentGames(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	games, err := gc.gameService.RecentGames(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list games",
		})
	}
	return c.JSON(fiber.Map{
		"games": games,
	})
}

// statusFor maps service errors to HTTP responses.
func statusFor(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrIllegalMove),
		errors.Is(err, service.ErrPromotionPending),
		errors.Is(err, service.ErrNoPromotion),
		errors.Is(err, service.ErrGameOver):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
