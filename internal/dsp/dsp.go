// Package dsp holds the signal-processing primitives the composer draws on:
// a duration-preserving pitch shifter, a phase-vocoder time stretcher and a
// linear-interpolation resampler. All three treat their numeric parameters as
// continuous values and operate on whole in-memory buffers.
package dsp

import "errors"

// ErrShortInput is returned when a buffer is shorter than the analysis window
// a transform needs. Callers see it wrapped with the failing operation.
var ErrShortInput = errors.New("input shorter than analysis window")
