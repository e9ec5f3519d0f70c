package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/RMahshie/applyaf/internal/repository"
	"github.com/RMahshie/applyaf/pkg/models"
)

// PostgresCalibrationRepository implements CalibrationRepository for PostgreSQL
type PostgresCalibrationRepository struct {
	db *sql.DB
}

// NewPostgresCalibrationRepository creates a new PostgreSQL calibration repository
func NewPostgresCalibrationRepository(db *sql.DB) repository.CalibrationRepository {
	return &PostgresCalibrationRepository{db: db}
}

const calibrationColumns = `id, name, kind, frequency_unit, s3_key, description, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// Create inserts a new calibration record
func (r *PostgresCalibrationRepository) Create(ctx context.Context, calibration *models.Calibration) error {
	query := `
		INSERT INTO calibrations (` + calibrationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	var description sql.NullString
	if calibration.Description != "" {
		description = sql.NullString{String: calibration.Description, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		calibration.ID,
		calibration.Name,
		string(calibration.Kind),
		calibration.FrequencyUnit,
		calibration.S3Key,
		description,
		calibration.CreatedAt,
		calibration.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert calibration: %w", err)
	}

	return nil
}

// GetByID retrieves a calibration by ID
func (r *PostgresCalibrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Calibration, error) {
	query := `
		SELECT ` + calibrationColumns + `
		FROM calibrations
		WHERE id = $1`

	calibration, err := scanCalibration(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	return calibration, nil
}

// List retrieves calibrations, optionally filtered by kind
func (r *PostgresCalibrationRepository) List(ctx context.Context, kind models.CalibrationKind) ([]*models.Calibration, error) {
	query := `
		SELECT ` + calibrationColumns + `
		FROM calibrations
		WHERE ($1 = '' OR kind = $1)
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to list calibrations: %w", err)
	}
	defer rows.Close()

	calibrations := []*models.Calibration{}
	for rows.Next() {
		calibration, err := scanCalibration(rows)
		if err != nil {
			return nil, err
		}
		calibrations = append(calibrations, calibration)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate calibrations: %w", err)
	}

	return calibrations, nil
}

// Delete removes a calibration record
func (r *PostgresCalibrationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM calibrations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete calibration: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete calibration: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", repository.ErrNotFound, id)
	}

	return nil
}

func scanCalibration(row rowScanner) (*models.Calibration, error) {
	var calibration models.Calibration
	var kind string
	var description sql.NullString

	err := row.Scan(
		&calibration.ID,
		&calibration.Name,
		&kind,
		&calibration.FrequencyUnit,
		&calibration.S3Key,
		&description,
		&calibration.CreatedAt,
		&calibration.UpdatedAt)
	if err != nil {
		return nil, err
	}

	calibration.Kind = models.CalibrationKind(kind)
	if description.Valid {
		calibration.Description = description.String
	}

	return &calibration, nil
}
