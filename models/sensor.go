package models

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// TimestampLayout is the only accepted textual form of a reading timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// RowTimestampLayout is how timestamps are rendered in query results.
const RowTimestampLayout = "2006-01-02T15:04:05"

// Unix seconds accepted for numeric timestamps: 0001-01-01 to 9999-12-31T23:59:59.
const (
	minUnixSeconds = -62135596800
	maxUnixSeconds = 253402300799
)

var ErrInvalidTimestamp = errors.New("Invalid timestamp format")

// SensorReading is one stored row of sensor_data.
type SensorReading struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Distance  float64   `json:"jarak" gorm:"column:jarak;not null"`
	Capacity  float64   `json:"kapasitas" gorm:"column:kapasitas;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"column:timestamp;type:timestamp;not null;default:CURRENT_TIMESTAMP;index"`
}

func (SensorReading) TableName() string {
	return "sensor_data"
}

// Timestamp accepts either "YYYY-MM-DD HH:MM:SS" or Unix seconds in JSON.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("%w: timestamp is null", ErrInvalidTimestamp)
	}

	if data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
		}
		parsed, err := time.Parse(TimestampLayout, s)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
		}
		t.Time = parsed
		return nil
	}

	secs, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimestamp, data)
	}
	if !(secs >= minUnixSeconds && secs <= maxUnixSeconds) {
		return fmt.Errorf("%w: %s is outside years 0001-9999", ErrInvalidTimestamp, data)
	}
	whole := int64(secs)
	t.Time = time.Unix(whole, int64((secs-float64(whole))*1e9)).UTC()
	return nil
}

// SaveDataRequest is the body of POST /save-data. Pointers let gin's
// "required" distinguish a missing field from an explicit zero.
type SaveDataRequest struct {
	Timestamp *Timestamp `json:"timestamp" binding:"required"`
	Distance  *float64   `json:"jarak" binding:"required"`
	Capacity  *float64   `json:"kapasitas" binding:"required"`
}

// Reading converts a validated request into a row to insert.
func (r SaveDataRequest) Reading() *SensorReading {
	return &SensorReading{
		Timestamp: r.Timestamp.Time,
		Distance:  *r.Distance,
		Capacity:  *r.Capacity,
	}
}

// SensorRow is a reading as returned by GET /sensor-data.
type SensorRow struct {
	Timestamp string  `json:"timestamp"`
	Distance  float64 `json:"jarak"`
	Capacity  float64 `json:"kapasitas"`
}

func NewSensorRow(r SensorReading) SensorRow {
	return SensorRow{
		Timestamp: r.Timestamp.UTC().Format(RowTimestampLayout),
		Distance:  r.Distance,
		Capacity:  r.Capacity,
	}
}
