package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"sensor-sentiment/models"
)

// SensorRepository is the storage used by the sensor endpoints.
type SensorRepository interface {
	Insert(ctx context.Context, reading *models.SensorReading) bool
	Query(ctx context.Context, page, pageSize int) (*models.SensorPage, error)
	Reset(ctx context.Context) error
	Ping(ctx context.Context) error
}

type SensorHandler struct {
	store SensorRepository
}

func NewSensorHandler(store SensorRepository) *SensorHandler {
	return &SensorHandler{store: store}
}

// Register mounts the sensor store routes.
func (h *SensorHandler) Register(r gin.IRouter) {
	r.POST("/save-data", h.SaveData)
	r.GET("/sensor-data", h.GetSensorData)
	r.DELETE("/delete-table", h.DeleteTable)
	r.GET("/healthz", h.Health)
}

// SaveData handles POST /save-data.
func (h *SensorHandler) SaveData(c *gin.Context) {
	var req models.SaveDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "body", err)
		return
	}

	if !h.store.Insert(c.Request.Context(), req.Reading()) {
		respondError(c, http.StatusInternalServerError, "Failed to save data to database.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Data saved successfully!"})
}

// GetSensorData handles GET /sensor-data?page=&page_size=.
func (h *SensorHandler) GetSensorData(c *gin.Context) {
	var q models.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondValidationError(c, "query", err)
		return
	}

	page, err := h.store.Query(c.Request.Context(), q.Page, q.PageSize)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, page)
}

// DeleteTable handles DELETE /delete-table.
func (h *SensorHandler) DeleteTable(c *gin.Context) {
	if err := h.store.Reset(c.Request.Context()); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete table: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Table deleted successfully!"})
}

// Health reports whether the database answers a ping.
func (h *SensorHandler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
