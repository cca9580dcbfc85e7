package audio

import (
	"math"
	"time"
)

// Buffer is a mono waveform: a sample slice plus the rate it was recorded at.
// It is a value; nothing in the pipeline mutates a buffer after handing it on.
type Buffer struct {
	Samples    []float64
	SampleRate int
}

// Len returns the number of samples.
func (b Buffer) Len() int { return len(b.Samples) }

// Duration returns the playing time of the buffer.
func (b Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	sec := float64(len(b.Samples)) / float64(b.SampleRate)
	return time.Duration(sec * float64(time.Second))
}

// Seconds returns the playing time in seconds.
func (b Buffer) Seconds() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// Clone returns a deep copy that shares no storage with b.
func (b Buffer) Clone() Buffer {
	out := Buffer{Samples: make([]float64, len(b.Samples)), SampleRate: b.SampleRate}
	copy(out.Samples, b.Samples)
	return out
}

// Slice returns the value sub-buffer [from, to). The returned samples are
// copied so the slice has no reference back to its source.
func (b Buffer) Slice(from, to int) Buffer {
	out := Buffer{Samples: make([]float64, to-from), SampleRate: b.SampleRate}
	copy(out.Samples, b.Samples[from:to])
	return out
}

// Concat joins buffers end to end. All buffers must share one sample rate;
// the result inherits it. Concat of nothing returns a zero buffer.
func Concat(bufs ...Buffer) Buffer {
	if len(bufs) == 0 {
		return Buffer{}
	}
	total := 0
	for _, b := range bufs {
		total += len(b.Samples)
	}
	out := Buffer{Samples: make([]float64, 0, total), SampleRate: bufs[0].SampleRate}
	for _, b := range bufs {
		out.Samples = append(out.Samples, b.Samples...)
	}
	return out
}

// Peak returns the largest absolute sample value.
func (b Buffer) Peak() float64 {
	peak := 0.0
	for _, s := range b.Samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	return peak
}

// RMS returns the root-mean-square level of the buffer.
func (b Buffer) RMS() float64 {
	if len(b.Samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range b.Samples {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(b.Samples)))
}

const (
	trimFrameLen = 512
	trimHopLen   = 128
)

// TrimSilence removes leading and trailing silence, where silence is any
// region whose frame RMS sits more than topDB below the peak level. A buffer
// that is silent throughout trims to empty.
func (b Buffer) TrimSilence(topDB float64) Buffer {
	if len(b.Samples) == 0 {
		return b
	}

	peak := b.Peak()
	if peak == 0 {
		return Buffer{Samples: []float64{}, SampleRate: b.SampleRate}
	}
	threshold := peak * math.Pow(10, -topDB/20)

	first, last := -1, -1
	for off := 0; off < len(b.Samples); off += trimHopLen {
		end := off + trimFrameLen
		if end > len(b.Samples) {
			end = len(b.Samples)
		}
		if frameRMS(b.Samples[off:end]) >= threshold {
			if first < 0 {
				first = off
			}
			last = end
		}
	}
	if first < 0 {
		return Buffer{Samples: []float64{}, SampleRate: b.SampleRate}
	}
	return b.Slice(first, last)
}

func frameRMS(frame []float64) float64 {
	if len(frame) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range frame {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(frame)))
}
