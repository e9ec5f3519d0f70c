package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/applyaf/internal/processing"
	"github.com/RMahshie/applyaf/internal/repository"
	"github.com/RMahshie/applyaf/internal/storage"
	"github.com/RMahshie/applyaf/pkg/models"
)

// calibrationContentType is the content type clients upload curves with
const calibrationContentType = "text/csv"

// CalibrationHandler handles calibration-related HTTP requests
type CalibrationHandler struct {
	repo      repository.CalibrationRepository
	s3Service storage.S3Service
	svc       processing.CorrectionService
}

// NewCalibrationHandler creates a new calibration handler
func NewCalibrationHandler(repo repository.CalibrationRepository, s3Service storage.S3Service, svc processing.CorrectionService) *CalibrationHandler {
	return &CalibrationHandler{
		repo:      repo,
		s3Service: s3Service,
		svc:       svc,
	}
}

// CreateCalibration registers a calibration and returns an upload URL for its CSV
func (h *CalibrationHandler) CreateCalibration(ctx context.Context, req *models.CreateCalibrationRequest) (*models.CreateCalibrationResponse, error) {
	if !req.Body.Kind.Valid() {
		return nil, huma.Error400BadRequest(fmt.Sprintf("Unknown calibration kind %q", req.Body.Kind))
	}
	if !(req.Body.FrequencyUnit > 0) {
		return nil, huma.Error400BadRequest("frequency_unit must be positive")
	}

	calibrationID := uuid.New()
	key := fmt.Sprintf("calibrations/%s.csv", calibrationID)

	log.Info().
		Str("calibrationID", calibrationID.String()).
		Str("kind", string(req.Body.Kind)).
		Str("key", key).
		Msg("Creating calibration")

	uploadURL, err := h.s3Service.GenerateUploadURL(ctx, key, calibrationContentType)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to prepare upload", err)
	}

	now := time.Now().UTC()
	calibration := &models.Calibration{
		ID:            calibrationID.String(),
		Name:          req.Body.Name,
		Kind:          req.Body.Kind,
		FrequencyUnit: req.Body.FrequencyUnit,
		S3Key:         key,
		Description:   req.Body.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := h.repo.Create(ctx, calibration); err != nil {
		return nil, huma.Error500InternalServerError("Failed to create calibration", err)
	}

	return &models.CreateCalibrationResponse{
		Body: models.CreateCalibrationResponseBody{
			Calibration: calibration,
			UploadURL:   uploadURL,
			ExpiresIn:   int(storage.UploadURLExpiry.Seconds()),
		},
	}, nil
}

// ListCalibrations returns stored calibrations, optionally filtered by kind
func (h *CalibrationHandler) ListCalibrations(ctx context.Context, req *models.ListCalibrationsRequest) (*models.ListCalibrationsResponse, error) {
	kind := models.CalibrationKind(req.Kind)
	if kind != "" && !kind.Valid() {
		return nil, huma.Error400BadRequest(fmt.Sprintf("Unknown calibration kind %q", req.Kind))
	}

	calibrations, err := h.repo.List(ctx, kind)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list calibrations", err)
	}

	resp := &models.ListCalibrationsResponse{}
	resp.Body.Calibrations = calibrations
	return resp, nil
}

// GetCalibration returns calibration metadata
func (h *CalibrationHandler) GetCalibration(ctx context.Context, req *models.GetCalibrationRequest) (*models.GetCalibrationResponse, error) {
	calibrationID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid calibration ID", err)
	}

	calibration, err := h.repo.GetByID(ctx, calibrationID)
	if err != nil {
		return nil, lookupError(err)
	}

	resp := &models.GetCalibrationResponse{}
	resp.Body.Calibration = *calibration

	downloadURL, err := h.s3Service.GenerateDownloadURL(ctx, calibration.S3Key)
	if err != nil {
		log.Warn().Err(err).Str("calibrationID", calibration.ID).Msg("Failed to generate download URL")
	} else {
		resp.Body.DownloadURL = downloadURL
	}

	return resp, nil
}

// GetCalibrationPoints returns the stored curve of a calibration
func (h *CalibrationHandler) GetCalibrationPoints(ctx context.Context, req *models.GetCalibrationPointsRequest) (*models.GetCalibrationPointsResponse, error) {
	calibrationID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid calibration ID", err)
	}

	calibration, curve, err := h.svc.LoadCalibration(ctx, calibrationID, req.KeepMax)
	if err != nil {
		return nil, correctionError(err)
	}

	resp := &models.GetCalibrationPointsResponse{}
	resp.Body.ID = calibration.ID
	resp.Body.Points = curve
	return resp, nil
}

// DeleteCalibration removes calibration metadata and its stored CSV
func (h *CalibrationHandler) DeleteCalibration(ctx context.Context, req *models.DeleteCalibrationRequest) (*struct{}, error) {
	calibrationID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid calibration ID", err)
	}

	calibration, err := h.repo.GetByID(ctx, calibrationID)
	if err != nil {
		return nil, lookupError(err)
	}

	if err := h.repo.Delete(ctx, calibrationID); err != nil {
		return nil, lookupError(err)
	}

	// metadata is gone, so a leftover object is only wasted space
	if err := h.s3Service.DeleteFile(ctx, calibration.S3Key); err != nil {
		log.Warn().Err(err).Str("calibrationID", calibration.ID).Str("key", calibration.S3Key).Msg("Failed to delete calibration file")
	}

	log.Info().Str("calibrationID", calibration.ID).Msg("Calibration deleted")
	return nil, nil
}

func lookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return huma.Error404NotFound("Calibration not found", err)
	}
	return huma.Error500InternalServerError("Failed to load calibration", err)
}
