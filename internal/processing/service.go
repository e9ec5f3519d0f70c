package processing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/applyaf/internal/correction"
	"github.com/RMahshie/applyaf/internal/csvio"
	"github.com/RMahshie/applyaf/internal/repository"
	"github.com/RMahshie/applyaf/internal/storage"
	"github.com/RMahshie/applyaf/pkg/models"
)

var (
	// ErrInvalidReference marks a curve source that is malformed: neither or
	// both of inline points and calibration ID, or an unparsable ID.
	ErrInvalidReference = errors.New("invalid curve reference")
	// ErrCalibrationNotFound marks an unknown calibration or one whose CSV
	// has not been uploaded yet.
	ErrCalibrationNotFound = errors.New("calibration not found")
	// ErrKindMismatch marks a calibration used in the wrong role
	ErrKindMismatch = errors.New("calibration kind mismatch")
	// ErrCalibrationParse marks a stored CSV that cannot be read as a curve
	ErrCalibrationParse = errors.New("calibration file could not be parsed")
)

// CorrectionRequest describes one apply or remove run
type CorrectionRequest struct {
	Direction     correction.Direction
	Readings      models.Series
	AntennaFactor models.CurveSource
	CableLoss     *models.CurveSource // nil means no cable loss
	KeepMax       bool
}

// CorrectionService resolves curve references and runs corrections
type CorrectionService interface {
	Correct(ctx context.Context, req CorrectionRequest) (*correction.Result, error)
	// LoadCalibration returns a stored calibration with its curve deduplicated.
	LoadCalibration(ctx context.Context, id uuid.UUID, keepMax bool) (*models.Calibration, models.Series, error)
}

type correctionService struct {
	s3         storage.S3Service
	repository repository.CalibrationRepository
}

// NewCorrectionService creates a correction service backed by the calibration
// repository and object storage
func NewCorrectionService(s3Service storage.S3Service, repo repository.CalibrationRepository) CorrectionService {
	return &correctionService{
		s3:         s3Service,
		repository: repo,
	}
}

func (s *correctionService) Correct(ctx context.Context, req CorrectionRequest) (*correction.Result, error) {
	start := time.Now()

	af, err := s.resolve(ctx, req.AntennaFactor, models.KindAntennaFactor)
	if err != nil {
		return nil, fmt.Errorf("antenna factor: %w", err)
	}

	var cl *models.Series
	if req.CableLoss != nil {
		curve, err := s.resolve(ctx, *req.CableLoss, models.KindCableLoss)
		if err != nil {
			return nil, fmt.Errorf("cable loss: %w", err)
		}
		cl = &curve
	}
	resolved := time.Since(start)

	result := correction.Correct(req.Direction, req.Readings, af, cl, req.KeepMax)

	log.Info().
		Str("direction", req.Direction.String()).
		Int("readings", len(req.Readings)).
		Int("points", len(result.Field)).
		Bool("cable_loss", cl != nil).
		Bool("keep_max", req.KeepMax).
		Dur("resolve", resolved).
		Dur("total", time.Since(start)).
		Msg("Correction completed")

	return &result, nil
}

func (s *correctionService) LoadCalibration(ctx context.Context, id uuid.UUID, keepMax bool) (*models.Calibration, models.Series, error) {
	calibration, curve, err := s.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return calibration, correction.Dedupe(curve, keepMax), nil
}

// resolve returns the curve a source points at, checking a stored
// calibration against the role it is used in.
func (s *correctionService) resolve(ctx context.Context, src models.CurveSource, kind models.CalibrationKind) (models.Series, error) {
	hasPoints := src.Points != nil
	hasID := src.CalibrationID != ""

	switch {
	case hasPoints && hasID:
		return nil, fmt.Errorf("%w: give either points or calibration_id, not both", ErrInvalidReference)
	case hasPoints:
		return src.Points, nil
	case !hasID:
		return nil, fmt.Errorf("%w: points or calibration_id is required", ErrInvalidReference)
	}

	id, err := uuid.Parse(src.CalibrationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidReference, err)
	}

	calibration, curve, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if calibration.Kind != kind {
		return nil, fmt.Errorf("%w: calibration %s is %s, want %s", ErrKindMismatch, id, calibration.Kind, kind)
	}

	return curve, nil
}

func (s *correctionService) load(ctx context.Context, id uuid.UUID) (*models.Calibration, models.Series, error) {
	start := time.Now()

	calibration, err := s.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: %s", ErrCalibrationNotFound, id)
		}
		return nil, nil, fmt.Errorf("failed to get calibration %s: %w", id, err)
	}

	data, err := s.s3.DownloadFile(ctx, calibration.S3Key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, fmt.Errorf("%w: %s has no uploaded curve", ErrCalibrationNotFound, id)
		}
		return nil, nil, fmt.Errorf("failed to download calibration %s: %w", id, err)
	}

	curve, err := csvio.Read(bytes.NewReader(data), calibration.FrequencyUnit)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrCalibrationParse, id, err)
	}

	log.Debug().
		Str("calibration_id", calibration.ID).
		Str("kind", string(calibration.Kind)).
		Int("bytes", len(data)).
		Int("points", len(curve)).
		Dur("elapsed", time.Since(start)).
		Msg("Loaded calibration")

	return calibration, curve, nil
}
