package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/applyaf/internal/correction"
	"github.com/RMahshie/applyaf/internal/processing"
	"github.com/RMahshie/applyaf/internal/repository"
	"github.com/RMahshie/applyaf/pkg/models"
)

// MockCalibrationRepository implements repository.CalibrationRepository for testing
type MockCalibrationRepository struct {
	mock.Mock
}

func (m *MockCalibrationRepository) Create(ctx context.Context, calibration *models.Calibration) error {
	args := m.Called(ctx, calibration)
	return args.Error(0)
}

func (m *MockCalibrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Calibration, error) {
	args := m.Called(ctx, id)
	calibration, _ := args.Get(0).(*models.Calibration)
	return calibration, args.Error(1)
}

func (m *MockCalibrationRepository) List(ctx context.Context, kind models.CalibrationKind) ([]*models.Calibration, error) {
	args := m.Called(ctx, kind)
	calibrations, _ := args.Get(0).([]*models.Calibration)
	return calibrations, args.Error(1)
}

func (m *MockCalibrationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockS3Service implements storage.S3Service for testing
type MockS3Service struct {
	mock.Mock
}

func (m *MockS3Service) GenerateUploadURL(ctx context.Context, key string, contentType string) (string, error) {
	args := m.Called(ctx, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockS3Service) GenerateDownloadURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockS3Service) UploadFile(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *MockS3Service) DownloadFile(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockS3Service) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockCorrectionService implements processing.CorrectionService for testing
type MockCorrectionService struct {
	mock.Mock
}

func (m *MockCorrectionService) Correct(ctx context.Context, req processing.CorrectionRequest) (*correction.Result, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*correction.Result)
	return result, args.Error(1)
}

func (m *MockCorrectionService) LoadCalibration(ctx context.Context, id uuid.UUID, keepMax bool) (*models.Calibration, models.Series, error) {
	args := m.Called(ctx, id, keepMax)
	calibration, _ := args.Get(0).(*models.Calibration)
	curve, _ := args.Get(1).(models.Series)
	return calibration, curve, args.Error(2)
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()
	var statusErr huma.StatusError
	require.True(t, errors.As(err, &statusErr), "expected a huma status error, got %v", err)
	assert.Equal(t, want, statusErr.GetStatus())
}

var testCalibrationID = uuid.MustParse("0f5d3c2a-9b1e-4f6a-8c7d-2e4b6a8c0d1e")

func testResult() *correction.Result {
	return &correction.Result{
		Field:          models.Series{{Frequency: 3.0e8, AmplitudeDB: 43.0}},
		AntennaFactors: []float64{13.0},
	}
}

func TestApplyCorrection(t *testing.T) {
	keepMin := false

	tests := []struct {
		name          string
		body          models.CorrectionRequestBody
		defaultKeep   bool
		wantKeepMax   bool
		includeCurves bool
	}{
		{
			name:        "keep_max falls back to default",
			body:        models.CorrectionRequestBody{Readings: models.Series{{Frequency: 3.0e8, AmplitudeDB: 30}}},
			defaultKeep: true,
			wantKeepMax: true,
		},
		{
			name: "explicit keep_max false",
			body: models.CorrectionRequestBody{
				Readings: models.Series{{Frequency: 3.0e8, AmplitudeDB: 30}},
				KeepMax:  &keepMin,
			},
			defaultKeep: true,
			wantKeepMax: false,
		},
		{
			name: "curves included on request",
			body: models.CorrectionRequestBody{
				Readings:      models.Series{{Frequency: 3.0e8, AmplitudeDB: 30}},
				IncludeCurves: true,
			},
			defaultKeep:   true,
			wantKeepMax:   true,
			includeCurves: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockCorrectionService{}
			mockSvc.On("Correct", mock.Anything, mock.MatchedBy(func(req processing.CorrectionRequest) bool {
				return req.Direction == correction.DirectionApply && req.KeepMax == tt.wantKeepMax
			})).Return(testResult(), nil)

			handler := NewCorrectionHandler(mockSvc, tt.defaultKeep)
			resp, err := handler.ApplyCorrection(context.Background(), &models.CorrectionRequest{Body: tt.body})

			require.NoError(t, err)
			assert.Equal(t, "apply", resp.Body.Direction)
			assert.Equal(t, testResult().Field, resp.Body.Points)
			if tt.includeCurves {
				assert.Equal(t, []float64{13.0}, resp.Body.AntennaFactors)
			} else {
				assert.Nil(t, resp.Body.AntennaFactors)
			}
			assert.Nil(t, resp.Body.CableLosses)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestRemoveCorrection_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid reference", err: fmt.Errorf("antenna factor: %w", processing.ErrInvalidReference), wantStatus: http.StatusBadRequest},
		{name: "kind mismatch", err: processing.ErrKindMismatch, wantStatus: http.StatusBadRequest},
		{name: "unknown calibration", err: processing.ErrCalibrationNotFound, wantStatus: http.StatusNotFound},
		{name: "unparsable curve", err: processing.ErrCalibrationParse, wantStatus: http.StatusUnprocessableEntity},
		{name: "storage failure", err: errors.New("connection reset"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockCorrectionService{}
			mockSvc.On("Correct", mock.Anything, mock.MatchedBy(func(req processing.CorrectionRequest) bool {
				return req.Direction == correction.DirectionRemove
			})).Return(nil, tt.err)

			handler := NewCorrectionHandler(mockSvc, true)
			resp, err := handler.RemoveCorrection(context.Background(), &models.CorrectionRequest{})

			assert.Nil(t, resp)
			assertStatus(t, err, tt.wantStatus)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestCreateCalibration(t *testing.T) {
	validBody := models.CreateCalibrationRequestBody{
		Name:          "biconical",
		Kind:          models.KindAntennaFactor,
		FrequencyUnit: 1e6,
	}

	tests := []struct {
		name       string
		body       models.CreateCalibrationRequestBody
		mockSetup  func(*MockCalibrationRepository, *MockS3Service)
		wantStatus int
	}{
		{
			name: "valid calibration",
			body: validBody,
			mockSetup: func(mockRepo *MockCalibrationRepository, mockS3 *MockS3Service) {
				mockS3.On("GenerateUploadURL", mock.Anything, mock.AnythingOfType("string"), "text/csv").Return("https://example.com/upload", nil)
				mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Calibration")).Return(nil)
			},
		},
		{
			name: "unknown kind",
			body: models.CreateCalibrationRequestBody{
				Name:          "preamp",
				Kind:          "preamp_gain",
				FrequencyUnit: 1,
			},
			mockSetup:  func(*MockCalibrationRepository, *MockS3Service) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "presign failure",
			body: validBody,
			mockSetup: func(mockRepo *MockCalibrationRepository, mockS3 *MockS3Service) {
				mockS3.On("GenerateUploadURL", mock.Anything, mock.Anything, "text/csv").Return("", assert.AnError)
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "database failure",
			body: validBody,
			mockSetup: func(mockRepo *MockCalibrationRepository, mockS3 *MockS3Service) {
				mockS3.On("GenerateUploadURL", mock.Anything, mock.Anything, "text/csv").Return("https://example.com/upload", nil)
				mockRepo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockCalibrationRepository{}
			mockS3 := &MockS3Service{}
			tt.mockSetup(mockRepo, mockS3)

			handler := NewCalibrationHandler(mockRepo, mockS3, &MockCorrectionService{})
			resp, err := handler.CreateCalibration(context.Background(), &models.CreateCalibrationRequest{Body: tt.body})

			if tt.wantStatus != 0 {
				assertStatus(t, err, tt.wantStatus)
			} else {
				require.NoError(t, err)
				cal := resp.Body.Calibration
				assert.Equal(t, "calibrations/"+cal.ID+".csv", cal.S3Key)
				assert.Equal(t, models.KindAntennaFactor, cal.Kind)
				assert.Equal(t, 1e6, cal.FrequencyUnit)
				assert.Equal(t, "https://example.com/upload", resp.Body.UploadURL)
				assert.Equal(t, 900, resp.Body.ExpiresIn)
				_, err := uuid.Parse(cal.ID)
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
			mockS3.AssertExpectations(t)
		})
	}
}

func TestListCalibrations(t *testing.T) {
	mockRepo := &MockCalibrationRepository{}
	stored := []*models.Calibration{{ID: testCalibrationID.String(), Kind: models.KindCableLoss}}
	mockRepo.On("List", mock.Anything, models.KindCableLoss).Return(stored, nil)
	mockRepo.On("List", mock.Anything, models.CalibrationKind("")).Return(nil, assert.AnError)

	handler := NewCalibrationHandler(mockRepo, &MockS3Service{}, &MockCorrectionService{})

	resp, err := handler.ListCalibrations(context.Background(), &models.ListCalibrationsRequest{Kind: "cable_loss"})
	require.NoError(t, err)
	assert.Equal(t, stored, resp.Body.Calibrations)

	_, err = handler.ListCalibrations(context.Background(), &models.ListCalibrationsRequest{})
	assertStatus(t, err, http.StatusInternalServerError)

	_, err = handler.ListCalibrations(context.Background(), &models.ListCalibrationsRequest{Kind: "bogus"})
	assertStatus(t, err, http.StatusBadRequest)

	mockRepo.AssertExpectations(t)
}

func TestGetCalibration(t *testing.T) {
	key := "calibrations/" + testCalibrationID.String() + ".csv"
	found := func(mockRepo *MockCalibrationRepository) {
		mockRepo.On("GetByID", mock.Anything, testCalibrationID).
			Return(&models.Calibration{ID: testCalibrationID.String(), S3Key: key}, nil)
	}

	tests := []struct {
		name            string
		id              string
		mockSetup       func(*MockCalibrationRepository, *MockS3Service)
		wantStatus      int
		wantDownloadURL string
	}{
		{
			name: "found",
			id:   testCalibrationID.String(),
			mockSetup: func(mockRepo *MockCalibrationRepository, mockS3 *MockS3Service) {
				found(mockRepo)
				mockS3.On("GenerateDownloadURL", mock.Anything, key).Return("https://example.com/download", nil)
			},
			wantDownloadURL: "https://example.com/download",
		},
		{
			name: "download url failure still returns metadata",
			id:   testCalibrationID.String(),
			mockSetup: func(mockRepo *MockCalibrationRepository, mockS3 *MockS3Service) {
				found(mockRepo)
				mockS3.On("GenerateDownloadURL", mock.Anything, key).Return("", assert.AnError)
			},
		},
		{
			name:       "invalid id",
			id:         "not-a-uuid",
			mockSetup:  func(*MockCalibrationRepository, *MockS3Service) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "not found",
			id:   testCalibrationID.String(),
			mockSetup: func(mockRepo *MockCalibrationRepository, _ *MockS3Service) {
				mockRepo.On("GetByID", mock.Anything, testCalibrationID).Return(nil, fmt.Errorf("%w: x", repository.ErrNotFound))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "database failure",
			id:   testCalibrationID.String(),
			mockSetup: func(mockRepo *MockCalibrationRepository, _ *MockS3Service) {
				mockRepo.On("GetByID", mock.Anything, testCalibrationID).Return(nil, assert.AnError)
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockCalibrationRepository{}
			mockS3 := &MockS3Service{}
			tt.mockSetup(mockRepo, mockS3)

			handler := NewCalibrationHandler(mockRepo, mockS3, &MockCorrectionService{})
			resp, err := handler.GetCalibration(context.Background(), &models.GetCalibrationRequest{ID: tt.id})

			if tt.wantStatus != 0 {
				assertStatus(t, err, tt.wantStatus)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.id, resp.Body.ID)
				assert.Equal(t, key, resp.Body.S3Key)
				assert.Equal(t, tt.wantDownloadURL, resp.Body.DownloadURL)
			}
			mockRepo.AssertExpectations(t)
			mockS3.AssertExpectations(t)
		})
	}
}

func TestGetCalibrationPoints(t *testing.T) {
	mockSvc := &MockCorrectionService{}
	curve := models.Series{{Frequency: 1e8, AmplitudeDB: 0.2}}
	mockSvc.On("LoadCalibration", mock.Anything, testCalibrationID, false).
		Return(&models.Calibration{ID: testCalibrationID.String()}, curve, nil)

	handler := NewCalibrationHandler(&MockCalibrationRepository{}, &MockS3Service{}, mockSvc)

	resp, err := handler.GetCalibrationPoints(context.Background(), &models.GetCalibrationPointsRequest{
		ID:      testCalibrationID.String(),
		KeepMax: false,
	})
	require.NoError(t, err)
	assert.Equal(t, testCalibrationID.String(), resp.Body.ID)
	assert.Equal(t, curve, resp.Body.Points)

	parseFail := uuid.New()
	mockSvc.On("LoadCalibration", mock.Anything, parseFail, true).Return(nil, nil, processing.ErrCalibrationParse)
	_, err = handler.GetCalibrationPoints(context.Background(), &models.GetCalibrationPointsRequest{
		ID:      parseFail.String(),
		KeepMax: true,
	})
	assertStatus(t, err, http.StatusUnprocessableEntity)

	mockSvc.AssertExpectations(t)
}

func TestDeleteCalibration(t *testing.T) {
	stored := &models.Calibration{
		ID:    testCalibrationID.String(),
		S3Key: "calibrations/" + testCalibrationID.String() + ".csv",
	}

	t.Run("deletes metadata and file", func(t *testing.T) {
		mockRepo := &MockCalibrationRepository{}
		mockS3 := &MockS3Service{}
		mockRepo.On("GetByID", mock.Anything, testCalibrationID).Return(stored, nil)
		mockRepo.On("Delete", mock.Anything, testCalibrationID).Return(nil)
		mockS3.On("DeleteFile", mock.Anything, stored.S3Key).Return(nil)

		handler := NewCalibrationHandler(mockRepo, mockS3, &MockCorrectionService{})
		_, err := handler.DeleteCalibration(context.Background(), &models.DeleteCalibrationRequest{ID: stored.ID})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
		mockS3.AssertExpectations(t)
	})

	t.Run("storage failure is not fatal", func(t *testing.T) {
		mockRepo := &MockCalibrationRepository{}
		mockS3 := &MockS3Service{}
		mockRepo.On("GetByID", mock.Anything, testCalibrationID).Return(stored, nil)
		mockRepo.On("Delete", mock.Anything, testCalibrationID).Return(nil)
		mockS3.On("DeleteFile", mock.Anything, stored.S3Key).Return(assert.AnError)

		handler := NewCalibrationHandler(mockRepo, mockS3, &MockCorrectionService{})
		_, err := handler.DeleteCalibration(context.Background(), &models.DeleteCalibrationRequest{ID: stored.ID})

		assert.NoError(t, err)
	})

	t.Run("unknown calibration", func(t *testing.T) {
		mockRepo := &MockCalibrationRepository{}
		mockRepo.On("GetByID", mock.Anything, testCalibrationID).Return(nil, repository.ErrNotFound)

		handler := NewCalibrationHandler(mockRepo, &MockS3Service{}, &MockCorrectionService{})
		_, err := handler.DeleteCalibration(context.Background(), &models.DeleteCalibrationRequest{ID: stored.ID})

		assertStatus(t, err, http.StatusNotFound)
	})
}
