// Package feature extracts frame-level spectral features from waveforms:
// MFCCs, chroma vectors, spectral centroid and rolloff, zero-crossing rate
// and RMS energy. Features feed the evaluation tooling and the placeholder
// model; the composer itself never consults them.
package feature

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"stylemix/internal/audio"
)

const (
	// fftSize gives good frequency resolution at the pipeline rates.
	fftSize = 2048
	hopSize = 512

	numMFCC       = 13
	numMelFilters = 26
	numChroma     = 12

	// rolloffFraction is the share of spectral energy below the rolloff bin.
	rolloffFraction = 0.85

	logFloor = 1e-10
)

// ErrTooShort is returned for waveforms shorter than one analysis frame.
var ErrTooShort = errors.New("waveform shorter than one analysis frame")

// Set holds the extracted features, one row per analysis frame.
type Set struct {
	MFCC     [][]float64 // [frame][numMFCC]
	Chroma   [][]float64 // [frame][12] pitch class energy
	Centroid []float64   // brightness, Hz
	Rolloff  []float64   // high-frequency content threshold, Hz
	ZCR      []float64   // zero-crossing rate per frame
	RMS      []float64   // frame energy

	SampleRate int
}

// Frames returns the number of analysis frames in the set.
func (s *Set) Frames() int { return len(s.Centroid) }

// Extractor computes feature sets over Hann-windowed FFT frames. One
// extractor serves one sample rate; it is not safe for concurrent use.
type Extractor struct {
	sampleRate int
	fft        *fourier.FFT
	window     []float64
	melFilters [][]float64
	dctBasis   [][]float64
}

// NewExtractor builds an extractor for the given sample rate.
func NewExtractor(sampleRate int) *Extractor {
	return &Extractor{
		sampleRate: sampleRate,
		fft:        fourier.NewFFT(fftSize),
		window:     hannWindow(fftSize),
		melFilters: melFilterbank(numMelFilters, fftSize, sampleRate),
		dctBasis:   dctBasis(numMFCC, numMelFilters),
	}
}

// Extract computes the feature set for buf. The buffer's sample rate must
// match the extractor's.
func (e *Extractor) Extract(buf audio.Buffer) (*Set, error) {
	if buf.SampleRate != e.sampleRate {
		return nil, fmt.Errorf("extract: buffer rate %d does not match extractor rate %d", buf.SampleRate, e.sampleRate)
	}
	if buf.Len() < fftSize {
		return nil, fmt.Errorf("extract %d samples: %w", buf.Len(), ErrTooShort)
	}

	set := &Set{SampleRate: e.sampleRate}
	frame := make([]float64, fftSize)
	binHz := float64(e.sampleRate) / float64(fftSize)

	for off := 0; off+fftSize <= buf.Len(); off += hopSize {
		raw := buf.Samples[off : off+fftSize]
		for i := range frame {
			frame[i] = raw[i] * e.window[i]
		}
		spectrum := e.fft.Coefficients(nil, frame)

		mags := make([]float64, len(spectrum))
		for k, c := range spectrum {
			mags[k] = math.Hypot(real(c), imag(c))
		}

		set.MFCC = append(set.MFCC, e.mfcc(mags))
		set.Chroma = append(set.Chroma, e.chroma(mags, binHz))
		set.Centroid = append(set.Centroid, centroid(mags, binHz))
		set.Rolloff = append(set.Rolloff, rolloff(mags, binHz))
		set.ZCR = append(set.ZCR, zeroCrossingRate(raw))
		set.RMS = append(set.RMS, frameRMS(raw))
	}

	return set, nil
}

func (e *Extractor) mfcc(mags []float64) []float64 {
	energies := make([]float64, numMelFilters)
	for m, filter := range e.melFilters {
		sum := 0.0
		for k, w := range filter {
			if w > 0 {
				sum += w * mags[k] * mags[k]
			}
		}
		energies[m] = math.Log(sum + logFloor)
	}

	coeffs := make([]float64, numMFCC)
	for k := range coeffs {
		sum := 0.0
		for m := range energies {
			sum += energies[m] * e.dctBasis[k][m]
		}
		coeffs[k] = sum
	}
	return coeffs
}

// chroma folds spectral energy into the 12 pitch classes. Bins below the
// audible pitch floor are skipped.
func (e *Extractor) chroma(mags []float64, binHz float64) []float64 {
	out := make([]float64, numChroma)
	for k := 1; k < len(mags); k++ {
		freq := float64(k) * binHz
		if freq < 30 {
			continue
		}
		midi := 12*math.Log2(freq/440) + 69
		class := ((int(math.Round(midi)) % numChroma) + numChroma) % numChroma
		out[class] += mags[k] * mags[k]
	}
	return out
}

func centroid(mags []float64, binHz float64) float64 {
	num, den := 0.0, 0.0
	for k, m := range mags {
		num += float64(k) * binHz * m
		den += m
	}
	if den == 0 {
		return 0
	}
	return num / den
}

func rolloff(mags []float64, binHz float64) float64 {
	total := 0.0
	for _, m := range mags {
		total += m * m
	}
	if total == 0 {
		return 0
	}
	target := total * rolloffFraction
	acc := 0.0
	for k, m := range mags {
		acc += m * m
		if acc >= target {
			return float64(k) * binHz
		}
	}
	return float64(len(mags)-1) * binHz
}

func zeroCrossingRate(frame []float64) float64 {
	if len(frame) < 2 {
		return 0
	}
	crossings := 0
	for i := 1; i < len(frame); i++ {
		if (frame[i-1] >= 0) != (frame[i] >= 0) {
			crossings++
		}
	}
	return float64(crossings) / float64(len(frame)-1)
}

func frameRMS(frame []float64) float64 {
	sum := 0.0
	for _, s := range frame {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(frame)))
}

func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n)))
	}
	return w
}

// melFilterbank builds triangular filters spaced evenly on the mel scale
// from 0 Hz to Nyquist, indexed by FFT bin.
func melFilterbank(numFilters, fftLen, sampleRate int) [][]float64 {
	numBins := fftLen/2 + 1
	melLow := hzToMel(0)
	melHigh := hzToMel(float64(sampleRate) / 2)

	points := make([]float64, numFilters+2)
	for i := range points {
		mel := melLow + (melHigh-melLow)*float64(i)/float64(numFilters+1)
		points[i] = melToHz(mel) * float64(fftLen) / float64(sampleRate)
	}

	filters := make([][]float64, numFilters)
	for m := range filters {
		filter := make([]float64, numBins)
		left, center, right := points[m], points[m+1], points[m+2]
		for k := 0; k < numBins; k++ {
			f := float64(k)
			switch {
			case f > left && f <= center && center > left:
				filter[k] = (f - left) / (center - left)
			case f > center && f < right && right > center:
				filter[k] = (right - f) / (right - center)
			}
		}
		filters[m] = filter
	}
	return filters
}

func dctBasis(numCoeffs, numInputs int) [][]float64 {
	basis := make([][]float64, numCoeffs)
	for k := range basis {
		row := make([]float64, numInputs)
		for m := range row {
			row[m] = math.Cos(math.Pi * float64(k) * (float64(m) + 0.5) / float64(numInputs))
		}
		basis[k] = row
	}
	return basis
}

func hzToMel(hz float64) float64 {
	return 2595 * math.Log10(1+hz/700)
}

func melToHz(mel float64) float64 {
	return 700 * (math.Pow(10, mel/2595) - 1)
}
