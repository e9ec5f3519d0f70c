package correction

import (
	"math"
	"sort"

	"github.com/RMahshie/applyaf/pkg/models"
)

// Interpolate evaluates curve at every frequency of grid by piecewise linear
// interpolation. curve must be sorted ascending with unique frequencies (see
// Dedupe). Frequencies at or below the first sample take its amplitude and
// frequencies at or above the last sample take the last amplitude.
//
// An empty curve evaluates to zero everywhere.
func Interpolate(curve models.Series, grid []float64) []float64 {
	out := make([]float64, len(grid))
	n := len(curve)
	if n == 0 {
		return out
	}

	first, last := curve[0], curve[n-1]
	for i, f := range grid {
		switch {
		case math.IsNaN(f):
			out[i] = math.NaN()
		case f <= first.Frequency:
			out[i] = first.AmplitudeDB
		case f >= last.Frequency:
			out[i] = last.AmplitudeDB
		default:
			// first < f < last, so 1 <= j <= n-1
			j := sort.Search(n, func(k int) bool { return curve[k].Frequency > f })
			lo, hi := curve[j-1], curve[j]
			t := (f - lo.Frequency) / (hi.Frequency - lo.Frequency)
			out[i] = lo.AmplitudeDB + t*(hi.AmplitudeDB-lo.AmplitudeDB)
		}
	}
	return out
}
