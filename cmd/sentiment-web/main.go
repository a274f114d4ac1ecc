// Sentiment-web serves a small review form and classifies submissions.
//
//	GET  /                   the form (STATIC_DIR/STATIC_INDEX)
//	GET  /static/*           assets from STATIC_DIR
//	POST /predict_sentiment  form field "text" -> {"sentiment": "..."}
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"sensor-sentiment/config"
	"sensor-sentiment/handlers"
	"sensor-sentiment/logging"
	"sensor-sentiment/sentiment"
	"sensor-sentiment/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defaults := config.Default()
	defaults.Server.Port = 8002
	cfg, err := config.Load(defaults)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(cfg.Logging.ToLogging())

	if _, err := os.Stat(cfg.Static.Dir); err != nil {
		logging.Fatal().Err(err).Str("dir", cfg.Static.Dir).Msg("Static directory not found")
	}

	s3Client, err := sentiment.NewS3Client(cfg.AWS.Region)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create S3 client")
	}
	pipeline, err := sentiment.Load(ctx, sentiment.NewLoader(s3Client), cfg.Model)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load sentiment model")
	}

	gin.SetMode(cfg.Server.Mode)
	r := handlers.NewEngine("sentiment-web")
	handlers.NewSentimentHandler(pipeline).RegisterWeb(r, cfg.Static)

	logging.Info().Str("addr", cfg.Server.Addr()).Msg("Starting sentiment web")
	if err := server.Run(ctx, cfg.Server, r); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
}
