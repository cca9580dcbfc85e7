// Package compose implements the cut-and-splice composer: it samples phrases
// from a pool, perturbs each with a random pitch shift or time stretch, and
// concatenates the results into a new track.
package compose

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"stylemix/internal/audio"
	"stylemix/internal/dsp"
)

var (
	// ErrEmptyPool is returned when composition is attempted with no phrases.
	ErrEmptyPool = errors.New("empty phrase pool")
	// ErrInvalidPhraseCount is returned for a non-positive phrase count.
	ErrInvalidPhraseCount = errors.New("invalid phrase count")
)

// Pool is the set of phrases available for sampling. It is aggregated once
// per run and treated as unordered and read-only: Compose never mutates it,
// so concurrent Compose calls may share one pool.
type Pool []audio.Buffer

// Options bound the randomized perturbation applied to each sampled phrase.
type Options struct {
	NumPhrases int

	// Pitch shift bounds in semitones, sampled uniformly.
	PitchMin float64
	PitchMax float64

	// Time stretch rate bounds, sampled uniformly. Rates above 1 shorten
	// a phrase, rates below 1 lengthen it.
	StretchMin float64
	StretchMax float64

	// VariationStrength is accepted for compatibility but currently has no
	// effect; whether it should scale the perturbation ranges is an open
	// question upstream.
	VariationStrength float64
}

// DefaultOptions returns the standard perturbation bounds: eight phrases,
// pitch within one semitone either way, stretch within 5%.
func DefaultOptions() Options {
	return Options{
		NumPhrases:        8,
		PitchMin:          -1,
		PitchMax:          1,
		StretchMin:        0.95,
		StretchMax:        1.05,
		VariationStrength: 0.1,
	}
}

// Compose builds a new track from opts.NumPhrases draws. Each draw picks a
// phrase uniformly at random with replacement, then flips a fair coin: heads
// applies a pitch shift drawn from the pitch range, tails a time stretch
// drawn from the stretch range. Transformed phrases are concatenated in draw
// order with no crossfading. Consecutive draws are independent; the same
// phrase may appear twice in a row. A transform failure aborts the whole
// call.
func Compose(rng *rand.Rand, pool Pool, opts Options) (audio.Buffer, error) {
	if len(pool) == 0 {
		return audio.Buffer{}, ErrEmptyPool
	}
	if opts.NumPhrases < 1 {
		return audio.Buffer{}, fmt.Errorf("%w: %d", ErrInvalidPhraseCount, opts.NumPhrases)
	}

	parts := make([]audio.Buffer, 0, opts.NumPhrases)
	for i := 0; i < opts.NumPhrases; i++ {
		phrase := pool[rng.IntN(len(pool))]

		var (
			transformed audio.Buffer
			err         error
		)
		if rng.Float64() < 0.5 {
			steps := uniform(rng, opts.PitchMin, opts.PitchMax)
			transformed, err = dsp.PitchShift(phrase, steps)
		} else {
			rate := uniform(rng, opts.StretchMin, opts.StretchMax)
			transformed, err = dsp.TimeStretch(phrase, rate)
		}
		if err != nil {
			return audio.Buffer{}, fmt.Errorf("compose phrase %d: %w", i, err)
		}
		parts = append(parts, transformed)
	}

	return audio.Concat(parts...), nil
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
