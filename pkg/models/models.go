package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// CurveSource references a correction curve either inline or by calibration ID.
// Exactly one of the two must be set.
type CurveSource struct {
	Points        Series `json:"points,omitempty" doc:"Inline curve samples"`
	CalibrationID string `json:"calibration_id,omitempty" doc:"ID of a stored calibration"`
}

// CorrectionRequestBody is the body shared by the apply and remove operations
type CorrectionRequestBody struct {
	Readings      Series       `json:"readings" doc:"Spectrum analyzer readings; their deduplicated frequencies form the output grid"`
	AntennaFactor CurveSource  `json:"antenna_factor" doc:"Antenna factor curve"`
	CableLoss     *CurveSource `json:"cable_loss,omitempty" doc:"Optional cable loss curve"`
	KeepMax       *bool        `json:"keep_max,omitempty" doc:"Keep the maximum amplitude for duplicate frequencies (default true)"`
	IncludeCurves bool         `json:"include_curves,omitempty" doc:"Also return the interpolated correction curves"`
}

// CorrectionRequest represents a request to apply or remove a correction
type CorrectionRequest struct {
	Body CorrectionRequestBody
}

// CorrectionResponseBody is the body of a correction response
type CorrectionResponseBody struct {
	Direction      string    `json:"direction" enum:"apply,remove" doc:"Operation performed"`
	Points         Series    `json:"points" doc:"Corrected series on the deduplicated readings grid"`
	AntennaFactors []float64 `json:"antenna_factors,omitempty" doc:"Antenna factor interpolated onto the output grid"`
	CableLosses    []float64 `json:"cable_losses,omitempty" doc:"Cable loss interpolated onto the output grid"`
}

// CorrectionResponse represents the result of a correction
type CorrectionResponse struct {
	Body CorrectionResponseBody
}

// CreateCalibrationRequestBody describes a calibration curve to register
type CreateCalibrationRequestBody struct {
	Name          string          `json:"name" minLength:"1" maxLength:"200" required:"true" doc:"Human-readable name"`
	Kind          CalibrationKind `json:"kind" enum:"antenna_factor,cable_loss" required:"true" doc:"Curve kind"`
	FrequencyUnit float64         `json:"frequency_unit" exclusiveMinimum:"0" required:"true" doc:"Multiplier applied to the CSV frequency column (1e6 for MHz)"`
	Description   string          `json:"description,omitempty" maxLength:"1000" doc:"Free-form notes"`
}

// CreateCalibrationRequest represents a request to register a calibration curve
type CreateCalibrationRequest struct {
	Body CreateCalibrationRequestBody
}

// CreateCalibrationResponseBody is the body of the create calibration response
type CreateCalibrationResponseBody struct {
	Calibration *Calibration `json:"calibration" doc:"Registered calibration"`
	UploadURL   string       `json:"upload_url" doc:"Pre-signed S3 URL; PUT the curve CSV to it with Content-Type text/csv"`
	ExpiresIn   int          `json:"expires_in" doc:"URL expiration time in seconds"`
}

// CreateCalibrationResponse represents the response from registering a calibration
type CreateCalibrationResponse struct {
	Body CreateCalibrationResponseBody
}

// ListCalibrationsRequest represents a request to list calibrations
type ListCalibrationsRequest struct {
	Kind string `query:"kind" enum:"antenna_factor,cable_loss" doc:"Only return calibrations of this kind"`
}

// ListCalibrationsResponse represents a list of calibrations
type ListCalibrationsResponse struct {
	Body struct {
		Calibrations []*Calibration `json:"calibrations" doc:"Stored calibrations, newest first"`
	}
}

// GetCalibrationRequest represents a request addressing a single calibration
type GetCalibrationRequest struct {
	ID string `path:"id" doc:"Calibration ID"`
}

// CalibrationDetail is calibration metadata plus a short-lived link to its CSV
type CalibrationDetail struct {
	Calibration
	DownloadURL string `json:"download_url,omitempty" doc:"Pre-signed URL for the stored CSV"`
}

// GetCalibrationResponse represents a single calibration
type GetCalibrationResponse struct {
	Body CalibrationDetail
}

// GetCalibrationPointsRequest represents a request for a stored curve
type GetCalibrationPointsRequest struct {
	ID      string `path:"id" doc:"Calibration ID"`
	KeepMax bool   `query:"keep_max" default:"true" doc:"Keep the maximum amplitude for duplicate frequencies"`
}

// GetCalibrationPointsResponse represents a stored curve after deduplication
type GetCalibrationPointsResponse struct {
	Body struct {
		ID     string `json:"id" doc:"Calibration ID"`
		Points Series `json:"points" doc:"Deduplicated curve, ascending by frequency"`
	}
}

// DeleteCalibrationRequest represents a request to delete a calibration
type DeleteCalibrationRequest struct {
	ID string `path:"id" doc:"Calibration ID"`
}
