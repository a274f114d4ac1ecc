package handlers

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"sensor-sentiment/config"
	"sensor-sentiment/logging"
	"sensor-sentiment/metrics"
	"sensor-sentiment/models"
	"sensor-sentiment/sentiment"
)

// Predictor classifies one review.
type Predictor interface {
	Predict(ctx context.Context, text string) (sentiment.Prediction, error)
}

type SentimentHandler struct {
	predictor Predictor
}

func NewSentimentHandler(p Predictor) *SentimentHandler {
	return &SentimentHandler{predictor: p}
}

// RegisterAPI mounts the JSON variant.
func (h *SentimentHandler) RegisterAPI(r gin.IRouter) {
	r.POST("/predict_sentiment", h.PredictJSON)
	r.GET("/healthz", h.Health)
}

// RegisterWeb mounts the form variant plus the static front end.
func (h *SentimentHandler) RegisterWeb(r gin.IRouter, static config.StaticConfig) {
	r.POST("/predict_sentiment", h.PredictForm)
	r.GET("/healthz", h.Health)
	r.StaticFile("/", filepath.Join(static.Dir, static.Index))
	r.Static("/static", static.Dir)
}

// PredictJSON handles POST /predict_sentiment with {"text": "..."}.
func (h *SentimentHandler) PredictJSON(c *gin.Context) {
	var req models.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "body", err)
		return
	}
	h.predict(c, *req.Text)
}

// PredictForm handles POST /predict_sentiment with a form field "text".
func (h *SentimentHandler) PredictForm(c *gin.Context) {
	text, ok := c.GetPostForm("text")
	if !ok {
		respondError(c, http.StatusUnprocessableEntity, []FieldError{{
			Loc:  []string{"body", "text"},
			Msg:  "Field required",
			Type: "required",
		}})
		return
	}
	h.predict(c, text)
}

func (h *SentimentHandler) predict(c *gin.Context, text string) {
	ctx := c.Request.Context()

	pred, err := h.predictor.Predict(ctx, text)
	if err != nil {
		metrics.PredictionErrors.Inc()
		logging.Ctx(ctx).Error().Err(err).Int("class", pred.Class).Msg("Sentiment prediction failed")
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.PredictionsTotal.WithLabelValues(string(pred.Label)).Inc()
	c.JSON(http.StatusOK, models.PredictResponse{Sentiment: pred.Label})
}

// Health reports readiness; the model is loaded before routes are mounted.
func (h *SentimentHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
