// Package eval quantifies tonal characteristics of waveforms via their
// chroma features: pitch class entropy as a tonal-diversity proxy and
// cosine similarity of average chroma vectors as a tonal fingerprint match.
package eval

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const entropyEpsilon = 1e-8

// AverageChroma collapses per-frame chroma vectors into one time-averaged
// vector, the tonal fingerprint of the whole signal. Empty input returns nil.
func AverageChroma(chroma [][]float64) []float64 {
	if len(chroma) == 0 {
		return nil
	}
	avg := make([]float64, len(chroma[0]))
	for _, frame := range chroma {
		floats.Add(avg, frame)
	}
	floats.Scale(1/float64(len(chroma)), avg)
	return avg
}

// PitchClassEntropy returns the entropy in bits of the time-averaged pitch
// class distribution. Higher values mean energy spread over more pitch
// classes; a single sustained pitch scores near zero.
func PitchClassEntropy(chroma [][]float64) float64 {
	p := AverageChroma(chroma)
	if p == nil {
		return 0
	}
	total := floats.Sum(p)
	if total == 0 {
		return 0
	}

	entropy := 0.0
	for _, v := range p {
		q := v / total
		entropy -= q * math.Log2(q+entropyEpsilon)
	}
	return entropy
}

// ChromaSimilarity returns the cosine similarity of the average chroma
// vectors of two chromagrams: 1 for identical tonal fingerprints, 0 for
// orthogonal ones.
func ChromaSimilarity(a, b [][]float64) float64 {
	va, vb := AverageChroma(a), AverageChroma(b)
	if va == nil || vb == nil || len(va) != len(vb) {
		return 0
	}

	na := math.Sqrt(floats.Dot(va, va))
	nb := math.Sqrt(floats.Dot(vb, vb))
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(va, vb) / (na * nb)
}
