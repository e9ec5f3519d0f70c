package repository

import (
	"context"
	"errors"

	"github.com/RMahshie/applyaf/pkg/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no calibration matches the given ID
var ErrNotFound = errors.New("calibration not found")

// CalibrationRepository defines the interface for calibration metadata operations
type CalibrationRepository interface {
	Create(ctx context.Context, calibration *models.Calibration) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Calibration, error)
	// List returns calibrations newest first; an empty kind matches all kinds.
	List(ctx context.Context, kind models.CalibrationKind) ([]*models.Calibration, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
