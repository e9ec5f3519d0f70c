package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/applyaf/internal/processing"
)

// correctionError maps processing errors onto HTTP status errors
func correctionError(err error) error {
	switch {
	case errors.Is(err, processing.ErrInvalidReference), errors.Is(err, processing.ErrKindMismatch):
		return huma.Error400BadRequest(err.Error(), err)
	case errors.Is(err, processing.ErrCalibrationNotFound):
		return huma.Error404NotFound(err.Error(), err)
	case errors.Is(err, processing.ErrCalibrationParse):
		return huma.Error422UnprocessableEntity(err.Error(), err)
	default:
		log.Error().Err(err).Msg("Correction failed")
		return huma.Error500InternalServerError("Failed to run correction", err)
	}
}
