package correction

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/RMahshie/applyaf/pkg/models"
)

// Direction selects whether correction curves are added to or subtracted
// from the readings.
type Direction int

const (
	// DirectionApply adds the curves, turning analyzer readings into an incident field.
	DirectionApply Direction = iota
	// DirectionRemove subtracts the curves, recovering analyzer readings.
	DirectionRemove
)

func (d Direction) String() string {
	switch d {
	case DirectionApply:
		return "apply"
	case DirectionRemove:
		return "remove"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection parses "apply" or "remove" (case-insensitive)
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "apply":
		return DirectionApply, nil
	case "remove":
		return DirectionRemove, nil
	default:
		return 0, fmt.Errorf("unknown direction %q: want apply or remove", s)
	}
}

// Result is a corrected series together with the correction curves as they
// were evaluated on its frequency grid.
type Result struct {
	Field          models.Series
	AntennaFactors []float64
	// CableLosses is nil when no cable loss curve was supplied.
	CableLosses []float64
}

// Apply adds the antenna factor and, when cableLosses is non-nil, the cable
// loss to readings. The result lies on the deduplicated readings grid.
func Apply(readings, antennaFactors models.Series, cableLosses *models.Series, keepMax bool) models.Series {
	return Correct(DirectionApply, readings, antennaFactors, cableLosses, keepMax).Field
}

// Remove subtracts the antenna factor and, when cableLosses is non-nil, the
// cable loss from readings. It undoes Apply for the same curves.
func Remove(readings, antennaFactors models.Series, cableLosses *models.Series, keepMax bool) models.Series {
	return Correct(DirectionRemove, readings, antennaFactors, cableLosses, keepMax).Field
}

// ApplyWithCurves is Apply that also returns the interpolated curves.
func ApplyWithCurves(readings, antennaFactors models.Series, cableLosses *models.Series, keepMax bool) Result {
	return Correct(DirectionApply, readings, antennaFactors, cableLosses, keepMax)
}

// RemoveWithCurves is Remove that also returns the interpolated curves.
func RemoveWithCurves(readings, antennaFactors models.Series, cableLosses *models.Series, keepMax bool) Result {
	return Correct(DirectionRemove, readings, antennaFactors, cableLosses, keepMax)
}

// Correct runs the dedupe, interpolate and combine pipeline in the given
// direction. keepMax is applied to every input when resolving duplicate
// frequencies. A nil cableLosses means no cable loss; an empty non-nil one
// is interpolated like any other curve.
func Correct(dir Direction, readings, antennaFactors models.Series, cableLosses *models.Series, keepMax bool) Result {
	grid := Dedupe(readings, keepMax)
	freqs := grid.Frequencies()

	afAt := Interpolate(Dedupe(antennaFactors, keepMax), freqs)

	var clAt []float64
	if cableLosses != nil {
		clAt = Interpolate(Dedupe(*cableLosses, keepMax), freqs)
	}

	combine := floats.AddTo
	if dir == DirectionRemove {
		combine = floats.SubTo
	}

	amps := make([]float64, len(grid))
	combine(amps, grid.Amplitudes(), afAt)
	if clAt != nil {
		combine(amps, amps, clAt)
	}

	// freqs and amps both have len(grid) entries
	field, _ := models.NewSeries(freqs, amps)

	return Result{
		Field:          field,
		AntennaFactors: afAt,
		CableLosses:    clAt,
	}
}
