package models

import "fmt"

// FrequencyPoint represents a single frequency measurement
type FrequencyPoint struct {
	Frequency   float64 `json:"frequency" doc:"Frequency in Hz"`
	AmplitudeDB float64 `json:"amplitude_db" doc:"Amplitude in dB"`
}

// Series is an ordered sequence of frequency/amplitude samples. It is not
// required to be sorted or unique.
type Series []FrequencyPoint

// NewSeries zips parallel frequency and amplitude slices into a Series
func NewSeries(frequencies, amplitudes []float64) (Series, error) {
	if len(frequencies) != len(amplitudes) {
		return nil, fmt.Errorf("length mismatch: %d frequencies, %d amplitudes", len(frequencies), len(amplitudes))
	}
	s := make(Series, len(frequencies))
	for i := range frequencies {
		s[i] = FrequencyPoint{Frequency: frequencies[i], AmplitudeDB: amplitudes[i]}
	}
	return s, nil
}

// Frequencies returns a new slice holding the frequency of every point
func (s Series) Frequencies() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Frequency
	}
	return out
}

// Amplitudes returns a new slice holding the amplitude of every point
func (s Series) Amplitudes() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.AmplitudeDB
	}
	return out
}

// Clone returns a copy that shares no memory with s. A nil series clones to
// an empty one.
func (s Series) Clone() Series {
	out := make(Series, len(s))
	copy(out, s)
	return out
}
