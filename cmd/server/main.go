package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/castlebay/chesscore/internal/config"
	"github.com/castlebay/chesscore/internal/controller"
	"github.com/castlebay/chesscore/internal/engine"
	"github.com/castlebay/chesscore/internal/middleware"
	"github.com/castlebay/chesscore/internal/service"
	"github.com/castlebay/chesscore/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}

	var opts []service.ManagerOption

	if cfg.DBPath != "" {
		archive, err := store.Open(cfg.DBPath)
		if err != nil {
			log.Fatal(err)
		}
		defer archive.Close()
		opts = append(opts, service.WithArchive(archive))
	}

	if cfg.FENLogPath != "" {
		fenLog, err := os.OpenFile(cfg.FENLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer fenLog.Close()
		opts = append(opts, service.WithFENLog(fenLog))
	}

	if cfg.Engine.Path != "" {
		factory := func(ctx context.Context) (service.RunningEngine, error) {
			eng := engine.New(cfg.Engine.Path,
				engine.WithDepth(cfg.Engine.Depth),
				engine.WithMoveTimeout(cfg.Engine.MoveTimeout.Std()))
			if err := eng.Start(ctx); err != nil {
				return nil, err
			}
			return eng, nil
		}
		opts = append(opts, service.WithEngineFactory(factory))
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigin,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize services
	gameManager := service.NewGameManager(opts...)
	gameService := service.NewGameService(gameManager)

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	// Set up WebSocket routes
	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(func(c *websocket.Conn) {
		wsController.HandleConnection(c)
	}, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         []string{cfg.AllowOrigin},
	}))

	// Set up REST routes
	api := app.Group("/api", middleware.EnsurePlayerID())

	// Live game routes
	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)
	gameRoutes.Post("/:gameId/select", gameController.Select)
	gameRoutes.Post("/:gameId/promote", gameController.Promote)
	gameRoutes.Post("/:gameId/takeback", gameController.Takeback)
	gameRoutes.Post("/:gameId/resign", gameController.Resign)
	gameRoutes.Get("/:gameId/moves", gameController.LegalMoves)
	gameRoutes.Get("/:gameId/fen", gameController.GetFEN)

	// Archive routes
	archiveRoutes := api.Group("/archive")
	archiveRoutes.Get("/games", gameController.ListRecentGames)
	archiveRoutes.Get("/games/:gameId", gameController.GetArchivedGame)

	log.Fatal(app.Listen(cfg.Listen))
}
