// Package wavio is the file boundary of the pipeline: it decodes WAV files
// into mono float buffers at the shared processing rate and writes buffers
// back out as 16-bit PCM.
package wavio

import (
	"fmt"
	"os"
	"path/filepath"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"stylemix/internal/audio"
	"stylemix/internal/dsp"
)

// trimTopDB is the silence threshold applied on load, relative to peak level.
const trimTopDB = 60.0

// Load decodes a WAV file into a mono buffer at targetRate, with silence
// trimmed at both ends. Multi-channel input is mixed down by averaging.
// A missing file surfaces the underlying os.ErrNotExist.
func Load(path string, targetRate int) (audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("load wav: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return audio.Buffer{}, fmt.Errorf("load wav %s: not a valid WAV file", path)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("decode wav %s: %w", path, err)
	}

	format := pcm.Format
	if format == nil || format.NumChannels < 1 || format.SampleRate < 1 {
		return audio.Buffer{}, fmt.Errorf("decode wav %s: missing format information", path)
	}

	samples := toMonoFloat(pcm, int(dec.BitDepth))
	samples = dsp.Resample(samples, format.SampleRate, targetRate)

	buf := audio.Buffer{Samples: samples, SampleRate: targetRate}
	return buf.TrimSilence(trimTopDB), nil
}

// Write encodes buf as a 16-bit mono WAV file, creating parent directories
// as needed and silently overwriting an existing file.
func Write(path string, buf audio.Buffer) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, buf.SampleRate, 16, 1, 1)

	data := make([]int, buf.Len())
	for i, s := range buf.Samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		data[i] = int(s * 32767)
	}

	pcm := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: 1, SampleRate: buf.SampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(pcm); err != nil {
		return fmt.Errorf("encode wav %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav %s: %w", path, err)
	}
	return nil
}

// toMonoFloat converts interleaved PCM integers to mono float64 in [-1, 1].
func toMonoFloat(pcm *gaudio.IntBuffer, bitDepth int) []float64 {
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))
	channels := pcm.Format.NumChannels

	frames := len(pcm.Data) / channels
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += float64(pcm.Data[i*channels+c])
		}
		out[i] = sum / float64(channels) / scale
	}
	return out
}
