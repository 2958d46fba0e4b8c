package main

import (
	"context"
	"os"

	"github.com/etrusk/tubaba/internal/api"
	"github.com/etrusk/tubaba/internal/combat"
	"github.com/etrusk/tubaba/internal/constants"
	"github.com/etrusk/tubaba/internal/logging"
	"github.com/etrusk/tubaba/internal/service"
	"github.com/etrusk/tubaba/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace"
)

func main() {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	// Server configuration path may be provided via TUBABA_CONFIG or
	// defaults to ./data/tubaba_config.json in the current working
	// directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = constants.DefaultConfigPath
	}
	cfg := loadConfigOrExit(configPath)

	// Env vars override the config file for deployment-specific paths.
	if p := os.Getenv(constants.EnvDBPath); p != "" {
		cfg.DBPath = p
	}
	if d := os.Getenv(constants.EnvDataDir); d != "" {
		cfg.DataDir = d
	}

	lib := combat.DefaultLibrary()
	parties, encounters := loadDataOrExit(cfg.DataDir, lib)
	repo := createRepositoryOrExit(cfg.DBPath)

	var tracer trace.Tracer
	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(context.Background())
		if err != nil {
			logging.Fatal("Failed to initialize telemetry", err, nil)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logging.Error("telemetry shutdown failed", err, nil)
			}
		}()
		tracer = telemetry.Tracer("battle")
	} else {
		tracer = telemetry.NoopTracer()
	}

	engine := combat.NewEngine(lib)
	battles := service.NewBattleService(repo, engine, parties, encounters, cfg.TickCeiling, tracer)
	runs := service.NewRunService(repo, battles)
	handler := api.NewBattleHandler(battles, runs)

	// Background sweeper: periodically remove finished battles (and their
	// event rows) that nobody has touched for a while.
	startBattleSweeper(repo, cfg.BattleTTL)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.POST(constants.RouteBattles, handler.CreateBattle)
		apiRoutes.GET(constants.RouteBattles, handler.ListBattles)
		apiRoutes.GET(constants.RouteBattleByID, handler.GetBattle)
		apiRoutes.POST(constants.RouteBattleTick, handler.TickBattle)
		apiRoutes.POST(constants.RouteBattleRun, handler.RunBattle)
		apiRoutes.GET(constants.RouteBattleEvents, handler.GetEvents)
		apiRoutes.PUT(constants.RouteBattleInstructions, handler.PutInstructions)

		apiRoutes.POST(constants.RouteRuns, handler.CreateRun)
		apiRoutes.GET(constants.RouteRunByID, handler.GetRun)
		apiRoutes.POST(constants.RouteRunAdvance, handler.AdvanceRun)

		apiRoutes.GET(constants.RouteParties, handler.ListParties)
		apiRoutes.GET(constants.RouteEncounters, handler.ListEncounters)
		apiRoutes.GET(constants.RouteSkills, handler.ListSkills)
		apiRoutes.GET(constants.RouteVersion, api.Version)
	}

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
