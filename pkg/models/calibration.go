package models

import (
	"time"
)

// CalibrationKind identifies which correction curve a calibration holds
type CalibrationKind string

const (
	KindAntennaFactor CalibrationKind = "antenna_factor"
	KindCableLoss     CalibrationKind = "cable_loss"
)

// Valid reports whether k is a known kind
func (k CalibrationKind) Valid() bool {
	return k == KindAntennaFactor || k == KindCableLoss
}

// Calibration represents a stored correction curve (for internal use).
// The curve itself lives in object storage as a CSV file under S3Key.
type Calibration struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Kind          CalibrationKind `json:"kind"`
	FrequencyUnit float64         `json:"frequency_unit"` // multiplier applied to the CSV frequency column
	S3Key         string          `json:"s3_key"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
