package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"sensor-sentiment/logging"
	"sensor-sentiment/metrics"
	"sensor-sentiment/models"
)

// SensorStore persists sensor readings in the sensor_data table.
type SensorStore struct {
	db *gorm.DB
}

func NewSensorStore(db *gorm.DB) *SensorStore {
	return &SensorStore{db: db}
}

// Initialize creates sensor_data if it does not exist. Existing tables are
// left untouched.
func (s *SensorStore) Initialize(ctx context.Context) error {
	m := s.db.WithContext(ctx).Migrator()
	if m.HasTable(&models.SensorReading{}) {
		return nil
	}
	if err := m.CreateTable(&models.SensorReading{}); err != nil {
		metrics.DBOperationErrors.WithLabelValues("initialize").Inc()
		return fmt.Errorf("create sensor table: %w", err)
	}
	logging.Ctx(ctx).Info().Msg("Created sensor_data table")
	return nil
}

// Reset drops sensor_data entirely. Reads fail until Initialize runs again.
func (s *SensorStore) Reset(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Migrator().DropTable(&models.SensorReading{}); err != nil {
		metrics.DBOperationErrors.WithLabelValues("reset").Inc()
		logging.Ctx(ctx).Error().Err(err).Msg("Failed to drop sensor table")
		return fmt.Errorf("drop sensor table: %w", err)
	}
	logging.Ctx(ctx).Info().Msg("Dropped sensor_data table")
	return nil
}

// Insert appends one reading. It reports false instead of returning the
// error; the failure is logged here.
func (s *SensorStore) Insert(ctx context.Context, reading *models.SensorReading) bool {
	reading.Timestamp = reading.Timestamp.UTC()
	if err := s.db.WithContext(ctx).Create(reading).Error; err != nil {
		metrics.DBOperationErrors.WithLabelValues("insert").Inc()
		logging.Ctx(ctx).Error().Err(err).Msg("Database Error")
		return false
	}
	metrics.SensorReadingsSaved.Inc()
	return true
}

// Query returns one page of readings, newest first.
func (s *SensorStore) Query(ctx context.Context, page, pageSize int) (*models.SensorPage, error) {
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.SensorReading{}).Count(&total).Error; err != nil {
		metrics.DBOperationErrors.WithLabelValues("count").Inc()
		return nil, fmt.Errorf("count sensor data: %w", err)
	}

	var readings []models.SensorReading
	err := db.Order("timestamp DESC").
		Limit(pageSize).
		Offset(models.Offset(page, pageSize)).
		Find(&readings).Error
	if err != nil {
		metrics.DBOperationErrors.WithLabelValues("query").Inc()
		return nil, fmt.Errorf("query sensor data: %w", err)
	}

	rows := make([]models.SensorRow, 0, len(readings))
	for _, r := range readings {
		rows = append(rows, models.NewSensorRow(r))
	}

	return &models.SensorPage{
		Data:         rows,
		Page:         page,
		PageSize:     pageSize,
		TotalRecords: total,
		TotalPages:   models.TotalPages(total, pageSize),
	}, nil
}

// Ping checks that the database is reachable.
func (s *SensorStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
