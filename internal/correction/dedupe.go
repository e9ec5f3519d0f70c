package correction

import (
	"cmp"
	"slices"

	"github.com/RMahshie/applyaf/pkg/models"
)

// Dedupe returns series sorted ascending by frequency with exactly one point
// per distinct frequency. When several points share a frequency the one with
// the highest amplitude is kept if keepMax is set, the lowest otherwise.
// Frequencies are compared exactly. The input is not modified.
func Dedupe(series models.Series, keepMax bool) models.Series {
	sorted := series.Clone()
	slices.SortFunc(sorted, comparePoints)
	if keepMax {
		// Descending order puts the largest amplitude first within each frequency.
		slices.Reverse(sorted)
	}

	out := make(models.Series, 0, len(sorted))
	for i, p := range sorted {
		if i > 0 && p.Frequency == sorted[i-1].Frequency {
			continue
		}
		out = append(out, p)
	}

	if keepMax {
		slices.Reverse(out)
	}
	return out
}

func comparePoints(a, b models.FrequencyPoint) int {
	if c := cmp.Compare(a.Frequency, b.Frequency); c != 0 {
		return c
	}
	return cmp.Compare(a.AmplitudeDB, b.AmplitudeDB)
}
