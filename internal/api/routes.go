package api

import (
	"net/http"

	"github.com/RMahshie/applyaf/internal/api/handlers"
	"github.com/RMahshie/applyaf/internal/processing"
	"github.com/RMahshie/applyaf/internal/repository"
	"github.com/RMahshie/applyaf/internal/storage"
	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, s3Service storage.S3Service, calibrationRepo repository.CalibrationRepository, correctionSvc processing.CorrectionService, defaultKeepMax bool) {
	// Initialize handlers
	correctionHandler := handlers.NewCorrectionHandler(correctionSvc, defaultKeepMax)
	calibrationHandler := handlers.NewCalibrationHandler(calibrationRepo, s3Service, correctionSvc)

	// Register correction routes
	huma.Register(api, huma.Operation{
		OperationID: "applyCorrection",
		Method:      http.MethodPost,
		Path:        "/api/corrections/apply",
		Summary:     "Apply correction",
		Description: "Adds the antenna factor and optional cable loss to spectrum analyzer readings, yielding the incident field",
		Tags:        []string{"Corrections"},
	}, correctionHandler.ApplyCorrection)

	huma.Register(api, huma.Operation{
		OperationID: "removeCorrection",
		Method:      http.MethodPost,
		Path:        "/api/corrections/remove",
		Summary:     "Remove correction",
		Description: "Subtracts the antenna factor and optional cable loss from a field series, recovering analyzer readings",
		Tags:        []string{"Corrections"},
	}, correctionHandler.RemoveCorrection)

	// Register calibration routes
	huma.Register(api, huma.Operation{
		OperationID:   "createCalibration",
		Method:        http.MethodPost,
		Path:          "/api/calibrations",
		Summary:       "Register a calibration",
		Description:   "Creates a calibration record and returns an upload URL for its CSV curve",
		Tags:          []string{"Calibrations"},
		DefaultStatus: http.StatusCreated,
	}, calibrationHandler.CreateCalibration)

	huma.Register(api, huma.Operation{
		OperationID: "listCalibrations",
		Method:      http.MethodGet,
		Path:        "/api/calibrations",
		Summary:     "List calibrations",
		Tags:        []string{"Calibrations"},
	}, calibrationHandler.ListCalibrations)

	huma.Register(api, huma.Operation{
		OperationID: "getCalibration",
		Method:      http.MethodGet,
		Path:        "/api/calibrations/{id}",
		Summary:     "Get calibration",
		Tags:        []string{"Calibrations"},
	}, calibrationHandler.GetCalibration)

	huma.Register(api, huma.Operation{
		OperationID: "getCalibrationPoints",
		Method:      http.MethodGet,
		Path:        "/api/calibrations/{id}/points",
		Summary:     "Get calibration curve",
		Description: "Returns the stored curve sorted by frequency with duplicate frequencies resolved",
		Tags:        []string{"Calibrations"},
	}, calibrationHandler.GetCalibrationPoints)

	huma.Register(api, huma.Operation{
		OperationID:   "deleteCalibration",
		Method:        http.MethodDelete,
		Path:          "/api/calibrations/{id}",
		Summary:       "Delete calibration",
		Tags:          []string{"Calibrations"},
		DefaultStatus: http.StatusNoContent,
	}, calibrationHandler.DeleteCalibration)
}
