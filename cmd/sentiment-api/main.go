// Sentiment-api classifies Indonesian product reviews posted as JSON.
//
//	POST /predict_sentiment  {"text": "..."} -> {"sentiment": "Positive"}
//
// The vectorizer and classifier artifacts are loaded once at startup from
// MODEL_PATH and VECTORIZER_PATH (local files or s3:// URIs). Startup fails
// if either cannot be loaded.
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
	defaults.Server.Port = 8001
	cfg, err := config.Load(defaults)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(cfg.Logging.ToLogging())

	s3Client, err := sentiment.NewS3Client(cfg.AWS.Region)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create S3 client")
	}
	pipeline, err := sentiment.Load(ctx, sentiment.NewLoader(s3Client), cfg.Model)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load sentiment model")
	}

	gin.SetMode(cfg.Server.Mode)
	r := handlers.NewEngine("sentiment-api")
	handlers.NewSentimentHandler(pipeline).RegisterAPI(r)

	logging.Info().Str("addr", cfg.Server.Addr()).Msg("Starting sentiment API")
	if err := server.Run(ctx, cfg.Server, r); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
}
