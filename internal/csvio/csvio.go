// Package csvio reads and writes frequency/amplitude series as CSV.
//
// Each data row is `frequency,amplitude_db`; extra columns are ignored.
// Blank lines (including whitespace-only ones) and lines starting with '#'
// are skipped anywhere in the file.
//
// Header detection is a heuristic: the first remaining row is taken as a
// header when either of its first two fields is not a number. A file whose
// first data row is itself malformed is therefore read as if that row were
// a header.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/RMahshie/applyaf/pkg/models"
)

// ErrFileNotFound is returned (wrapped) by ReadFile and CheckFile for missing paths
var ErrFileNotFound = errors.New("file not found")

// ErrTooFewFields marks a data row without both a frequency and an amplitude
var ErrTooFewFields = errors.New("expected frequency and amplitude fields")

// ParseError describes a data row that could not be parsed
type ParseError struct {
	Line   int    // 1-based line number
	Column int    // 1-based field index, 0 when the whole row is at fault
	Value  string // offending field text
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d, column %d (%q): %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Read parses a series from r and multiplies every frequency by
// freqUnitMultiplier (1e6 turns MHz into Hz).
func Read(r io.Reader, freqUnitMultiplier float64) (models.Series, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	series := models.Series{}
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, &ParseError{Line: csvErr.Line, Err: csvErr.Err}
			}
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if isBlank(record) {
			continue
		}
		if first {
			first = false
			record[0] = strings.TrimPrefix(record[0], "\ufeff")
			if isHeader(record) {
				continue
			}
		}

		if len(record) < 2 {
			return nil, &ParseError{Line: line, Err: ErrTooFewFields}
		}
		freq, err := parseField(record, 0, line)
		if err != nil {
			return nil, err
		}
		amp, err := parseField(record, 1, line)
		if err != nil {
			return nil, err
		}

		series = append(series, models.FrequencyPoint{
			Frequency:   freq * freqUnitMultiplier,
			AmplitudeDB: amp,
		})
	}

	return series, nil
}

// ReadFile reads a series from the CSV file at path
func ReadFile(path string, freqUnitMultiplier float64) (models.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	series, err := Read(f, freqUnitMultiplier)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return series, nil
}

// CheckFile verifies that path exists and is a regular file
func CheckFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

func parseField(record []string, idx, line int) (float64, error) {
	raw := strings.TrimSpace(record[idx])
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, &ParseError{Line: line, Column: idx + 1, Value: raw, Err: err}
	}
	return v, nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func isHeader(record []string) bool {
	for i := 0; i < len(record) && i < 2; i++ {
		if _, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64); err != nil {
			return true
		}
	}
	return false
}
