// Sensor-store accepts sensor readings over HTTP and serves their paginated
// history from a relational table.
//
// Routes:
//
//	POST   /save-data      store one reading
//	GET    /sensor-data    ?page=1&page_size=10, newest first
//	DELETE /delete-table   drop the table (recreated on next start)
//	GET    /healthz, /metrics
//
// Configuration is read from config.yaml and the environment; see package config.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"sensor-sentiment/config"
	"sensor-sentiment/database"
	"sensor-sentiment/handlers"
	"sensor-sentiment/logging"
	"sensor-sentiment/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defaults := config.Default()
	defaults.Server.Port = 8000
	cfg, err := config.Load(defaults)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(cfg.Logging.ToLogging())

	db, err := database.Open(cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to database")
	}

	store := database.NewSensorStore(db)
	if err := store.Initialize(ctx); err != nil {
		logging.Fatal().Err(err).Msg("Failed to create sensor table")
	}

	gin.SetMode(cfg.Server.Mode)
	r := handlers.NewEngine("sensor-store")
	handlers.NewSensorHandler(store).Register(r)

	logging.Info().Str("addr", cfg.Server.Addr()).Msg("Starting sensor store")
	runErr := server.Run(ctx, cfg.Server, r)
	logging.Err(runErr).Msg("Sensor store stopped")

	if err := database.Close(db); err != nil {
		logging.Error().Err(err).Msg("Failed to close database")
	}
	if runErr != nil {
		stop()
		os.Exit(1)
	}
}
