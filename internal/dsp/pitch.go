package dsp

import (
	"fmt"

	"github.com/cwbudde/algo-dsp/dsp/effects/pitch"

	"stylemix/internal/audio"
)

// minPitchLen is the shortest input the spectral shifter is fed; anything
// below it cannot fill the shifter's analysis window.
const minPitchLen = 1024

// PitchShift shifts buf by the given number of semitones (fractional values
// allowed) without changing its duration, using a phase-vocoder pitch
// shifter. Inputs shorter than the analysis window fail with ErrShortInput.
func PitchShift(buf audio.Buffer, semitones float64) (audio.Buffer, error) {
	if buf.Len() < minPitchLen {
		return audio.Buffer{}, fmt.Errorf("pitch shift %d samples: %w", buf.Len(), ErrShortInput)
	}
	if semitones == 0 {
		return buf.Clone(), nil
	}

	shifter, err := pitch.NewSpectralPitchShifter(float64(buf.SampleRate))
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("pitch shift: %w", err)
	}
	if err := shifter.SetPitchSemitones(semitones); err != nil {
		return audio.Buffer{}, fmt.Errorf("pitch shift %v semitones: %w", semitones, err)
	}

	processed := shifter.Process(buf.Samples)
	out := make([]float64, len(processed))
	copy(out, processed)

	return audio.Buffer{Samples: out, SampleRate: buf.SampleRate}, nil
}
