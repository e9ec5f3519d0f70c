package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/RMahshie/applyaf/pkg/models"
)

// Write writes series as `frequency,amplitude_db` rows, preceded by a header
// row when header is set.
func Write(w io.Writer, series models.Series, header bool) error {
	return WriteWithCurves(w, series, nil, nil, header)
}

// WriteWithCurves writes series with the interpolated antenna factor and
// cable loss as extra columns. A nil curve omits its column; a non-nil curve
// must have one value per point.
func WriteWithCurves(w io.Writer, series models.Series, antennaFactors, cableLosses []float64, header bool) error {
	if antennaFactors != nil && len(antennaFactors) != len(series) {
		return fmt.Errorf("antenna factor length %d does not match series length %d", len(antennaFactors), len(series))
	}
	if cableLosses != nil && len(cableLosses) != len(series) {
		return fmt.Errorf("cable loss length %d does not match series length %d", len(cableLosses), len(series))
	}

	writer := csv.NewWriter(w)

	if header {
		row := []string{"frequency", "amplitude_db"}
		if antennaFactors != nil {
			row = append(row, "antenna_factor")
		}
		if cableLosses != nil {
			row = append(row, "cable_loss")
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, p := range series {
		row := []string{formatFloat(p.Frequency), formatFloat(p.AmplitudeDB)}
		if antennaFactors != nil {
			row = append(row, formatFloat(antennaFactors[i]))
		}
		if cableLosses != nil {
			row = append(row, formatFloat(cableLosses[i]))
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
