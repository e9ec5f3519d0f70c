// Package correction applies or removes frequency dependent calibration
// curves (antenna factor and optional cable loss) to spectrum analyzer
// readings.
//
// Every operation follows the same pipeline:
//
//  1. Dedupe the readings and each correction curve so that every frequency
//     appears once.
//  2. Interpolate each curve onto the deduplicated readings frequencies
//     (the target grid), holding the end values flat outside the curve.
//  3. Add (Apply) or subtract (Remove) the interpolated curves.
//
// The incident field is E(dBuV/m) = Vsa(dBuV) + AF(dB/m) + CL(dB).
//
// All functions are pure: inputs are never modified and every result is a
// freshly allocated value, so they are safe to call from multiple goroutines.
package correction
