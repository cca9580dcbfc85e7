package dsp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"stylemix/internal/audio"
)

const (
	stretchFFTSize = 2048
	stretchSynHop  = stretchFFTSize / 4
)

// TimeStretch changes the duration of buf by 1/rate without changing pitch,
// using a phase vocoder: rate > 1 shortens the signal, rate < 1 lengthens it.
// Inputs shorter than one analysis window fail with ErrShortInput.
func TimeStretch(buf audio.Buffer, rate float64) (audio.Buffer, error) {
	if rate <= 0 {
		return audio.Buffer{}, fmt.Errorf("time stretch: rate %v must be positive", rate)
	}
	if buf.Len() < stretchFFTSize {
		return audio.Buffer{}, fmt.Errorf("time stretch %d samples: %w", buf.Len(), ErrShortInput)
	}
	if rate == 1 {
		return buf.Clone(), nil
	}

	anaHop := float64(stretchSynHop) * rate
	numFrames := int(float64(buf.Len()-stretchFFTSize)/anaHop) + 1

	window := hannWindow(stretchFFTSize)
	fft := fourier.NewFFT(stretchFFTSize)
	numBins := stretchFFTSize/2 + 1

	outLen := (numFrames-1)*stretchSynHop + stretchFFTSize
	out := make([]float64, outLen)
	norm := make([]float64, outLen)

	prevPhase := make([]float64, numBins)
	phaseAcc := make([]float64, numBins)
	frame := make([]float64, stretchFFTSize)
	synth := make([]complex128, numBins)

	for f := 0; f < numFrames; f++ {
		anaPos := int(float64(f) * anaHop)
		for i := 0; i < stretchFFTSize; i++ {
			frame[i] = buf.Samples[anaPos+i] * window[i]
		}
		spectrum := fft.Coefficients(nil, frame)

		for k := 0; k < numBins; k++ {
			mag := math.Hypot(real(spectrum[k]), imag(spectrum[k]))
			phase := math.Atan2(imag(spectrum[k]), real(spectrum[k]))

			if f == 0 {
				phaseAcc[k] = phase
			} else {
				// Deviation of the measured phase advance from the bin
				// center frequency, unwrapped to (-pi, pi].
				binFreq := 2 * math.Pi * float64(k) / float64(stretchFFTSize)
				delta := princArg(phase - prevPhase[k] - binFreq*anaHop)
				instFreq := binFreq + delta/anaHop
				phaseAcc[k] += instFreq * float64(stretchSynHop)
			}
			prevPhase[k] = phase

			sin, cos := math.Sincos(phaseAcc[k])
			synth[k] = complex(mag*cos, mag*sin)
		}

		resyn := fft.Sequence(nil, synth)
		synPos := f * stretchSynHop
		for i := 0; i < stretchFFTSize; i++ {
			// fft.Sequence is unnormalized; divide by the transform size.
			out[synPos+i] += resyn[i] / float64(stretchFFTSize) * window[i]
			norm[synPos+i] += window[i] * window[i]
		}
	}

	for i := range out {
		if norm[i] > 1e-9 {
			out[i] /= norm[i]
		}
	}

	return audio.Buffer{Samples: out, SampleRate: buf.SampleRate}, nil
}

// princArg wraps a phase angle into (-pi, pi].
func princArg(phase float64) float64 {
	phase = math.Mod(phase+math.Pi, 2*math.Pi)
	if phase < 0 {
		phase += 2 * math.Pi
	}
	return phase - math.Pi
}

func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n)))
	}
	return w
}
