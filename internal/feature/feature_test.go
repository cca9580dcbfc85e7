package feature

import (
	"errors"
	"math"
	"testing"

	"stylemix/internal/audio"
)

func sine(freq float64, n, rate int) audio.Buffer {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
	}
	return audio.Buffer{Samples: samples, SampleRate: rate}
}

func TestExtract_Dimensions(t *testing.T) {
	e := NewExtractor(22050)
	set, err := e.Extract(sine(440, 22050, 22050))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	wantFrames := (22050-fftSize)/hopSize + 1
	if set.Frames() != wantFrames {
		t.Errorf("frames = %d, want %d", set.Frames(), wantFrames)
	}
	if len(set.MFCC) != wantFrames || len(set.MFCC[0]) != numMFCC {
		t.Errorf("MFCC shape = %dx%d, want %dx%d", len(set.MFCC), len(set.MFCC[0]), wantFrames, numMFCC)
	}
	if len(set.Chroma) != wantFrames || len(set.Chroma[0]) != numChroma {
		t.Errorf("chroma shape = %dx%d, want %dx%d", len(set.Chroma), len(set.Chroma[0]), wantFrames, numChroma)
	}
}

func TestExtract_CentroidNearToneFrequency(t *testing.T) {
	e := NewExtractor(22050)
	set, err := e.Extract(sine(1000, 22050, 22050))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	mean := 0.0
	for _, c := range set.Centroid {
		mean += c
	}
	mean /= float64(len(set.Centroid))

	// Spectral leakage pulls the centroid around; a pure 1 kHz tone should
	// still land in the low kHz.
	if mean < 500 || mean > 2500 {
		t.Errorf("mean centroid = %.0f Hz for a 1 kHz tone", mean)
	}
}

func TestExtract_ChromaPeakAtPitchClass(t *testing.T) {
	e := NewExtractor(22050)
	set, err := e.Extract(sine(440, 22050, 22050)) // A4, pitch class 9
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	avg := make([]float64, numChroma)
	for _, frame := range set.Chroma {
		for i, v := range frame {
			avg[i] += v
		}
	}

	best := 0
	for i, v := range avg {
		if v > avg[best] {
			best = i
		}
	}
	if best != 9 {
		t.Errorf("chroma peak at class %d, want 9 (A)", best)
	}
}

func TestExtract_ZCRScalesWithFrequency(t *testing.T) {
	e := NewExtractor(22050)
	low, err := e.Extract(sine(200, 22050, 22050))
	if err != nil {
		t.Fatalf("Extract low: %v", err)
	}
	high, err := e.Extract(sine(2000, 22050, 22050))
	if err != nil {
		t.Fatalf("Extract high: %v", err)
	}

	if high.ZCR[0] <= low.ZCR[0] {
		t.Errorf("ZCR high=%v should exceed low=%v", high.ZCR[0], low.ZCR[0])
	}
}

func TestExtract_TooShort(t *testing.T) {
	e := NewExtractor(22050)
	_, err := e.Extract(sine(440, fftSize-1, 22050))
	if !errors.Is(err, ErrTooShort) {
		t.Errorf("err = %v, want ErrTooShort", err)
	}
}

func TestExtract_RateMismatch(t *testing.T) {
	e := NewExtractor(22050)
	if _, err := e.Extract(sine(440, 8000, 8000)); err == nil {
		t.Error("expected error for mismatched sample rate")
	}
}
