package handlers

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/RMahshie/applyaf/internal/correction"
	"github.com/RMahshie/applyaf/internal/processing"
	"github.com/RMahshie/applyaf/pkg/models"
)

// CorrectionHandler handles apply and remove requests
type CorrectionHandler struct {
	svc            processing.CorrectionService
	defaultKeepMax bool
}

// NewCorrectionHandler creates a new correction handler. defaultKeepMax is
// used when a request does not set keep_max.
func NewCorrectionHandler(svc processing.CorrectionService, defaultKeepMax bool) *CorrectionHandler {
	return &CorrectionHandler{
		svc:            svc,
		defaultKeepMax: defaultKeepMax,
	}
}

// ApplyCorrection adds the antenna factor and cable loss to analyzer readings
func (h *CorrectionHandler) ApplyCorrection(ctx context.Context, req *models.CorrectionRequest) (*models.CorrectionResponse, error) {
	return h.correct(ctx, correction.DirectionApply, req)
}

// RemoveCorrection subtracts the antenna factor and cable loss from a field series
func (h *CorrectionHandler) RemoveCorrection(ctx context.Context, req *models.CorrectionRequest) (*models.CorrectionResponse, error) {
	return h.correct(ctx, correction.DirectionRemove, req)
}

func (h *CorrectionHandler) correct(ctx context.Context, dir correction.Direction, req *models.CorrectionRequest) (*models.CorrectionResponse, error) {
	keepMax := h.defaultKeepMax
	if req.Body.KeepMax != nil {
		keepMax = *req.Body.KeepMax
	}

	log.Info().
		Str("direction", dir.String()).
		Int("readings", len(req.Body.Readings)).
		Bool("cable_loss", req.Body.CableLoss != nil).
		Msg("Correction request received")

	result, err := h.svc.Correct(ctx, processing.CorrectionRequest{
		Direction:     dir,
		Readings:      req.Body.Readings,
		AntennaFactor: req.Body.AntennaFactor,
		CableLoss:     req.Body.CableLoss,
		KeepMax:       keepMax,
	})
	if err != nil {
		return nil, correctionError(err)
	}

	resp := &models.CorrectionResponse{
		Body: models.CorrectionResponseBody{
			Direction: dir.String(),
			Points:    result.Field,
		},
	}
	if req.Body.IncludeCurves {
		resp.Body.AntennaFactors = result.AntennaFactors
		resp.Body.CableLosses = result.CableLosses
	}

	return resp, nil
}
