// Package batch applies whole-file randomized transformations: one discrete
// pitch shift followed by one time stretch per track, with no segmentation.
package batch

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"stylemix/internal/audio"
	"stylemix/internal/dsp"
)

// ErrNoPitchChoices is returned when the discrete pitch set is empty.
var ErrNoPitchChoices = errors.New("no pitch choices configured")

// Options configure the per-file transformation.
type Options struct {
	// PitchChoices is the discrete set of semitone shifts; one is drawn
	// uniformly per file.
	PitchChoices []float64

	// Stretch rate bounds, sampled uniformly per file.
	StretchMin float64
	StretchMax float64
}

// DefaultOptions returns the standard batch bounds: whole-tone shifts either
// way (never zero) and up to 10% tempo change.
func DefaultOptions() Options {
	return Options{
		PitchChoices: []float64{-2, -1, 1, 2},
		StretchMin:   0.9,
		StretchMax:   1.1,
	}
}

// Transform applies one random pitch shift from the discrete choice set,
// then one random time stretch to the already shifted signal. Unlike the
// composer the two transforms are sequential, not alternatives.
func Transform(rng *rand.Rand, buf audio.Buffer, opts Options) (audio.Buffer, error) {
	if len(opts.PitchChoices) == 0 {
		return audio.Buffer{}, ErrNoPitchChoices
	}

	steps := opts.PitchChoices[rng.IntN(len(opts.PitchChoices))]
	shifted, err := dsp.PitchShift(buf, steps)
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("batch transform: %w", err)
	}

	rate := opts.StretchMin + rng.Float64()*(opts.StretchMax-opts.StretchMin)
	stretched, err := dsp.TimeStretch(shifted, rate)
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("batch transform: %w", err)
	}
	return stretched, nil
}

// OutputName derives the output filename for a transformed input file.
func OutputName(name string) string {
	return "generated_" + name
}
