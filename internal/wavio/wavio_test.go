package wavio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"stylemix/internal/audio"
)

func testTone(n, rate int) audio.Buffer {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/float64(rate))
	}
	return audio.Buffer{Samples: samples, SampleRate: rate}
}

func TestWriteLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone.wav")

	in := testTone(8000, 8000)
	if err := Write(path, in); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out, err := Load(path, 8000)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.SampleRate != 8000 {
		t.Errorf("sample rate = %d, want 8000", out.SampleRate)
	}
	// The tone has no silent ends, so trimming should cost at most the
	// trim frame granularity.
	if out.Len() < in.Len()-1024 || out.Len() > in.Len() {
		t.Errorf("round-trip length = %d, want ~%d", out.Len(), in.Len())
	}

	// Content should survive 16-bit quantization.
	for i := 0; i < 100 && i < out.Len(); i++ {
		if math.Abs(out.Samples[i]-in.Samples[i]) > 0.01 {
			t.Fatalf("sample %d = %v, want ~%v", i, out.Samples[i], in.Samples[i])
		}
	}
}

func TestLoad_Resamples(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone.wav")

	in := testTone(8000, 8000)
	if err := Write(path, in); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out, err := Load(path, 4000)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.SampleRate != 4000 {
		t.Errorf("sample rate = %d, want 4000", out.SampleRate)
	}
	if out.Len() < 3000 || out.Len() > 4000 {
		t.Errorf("resampled length = %d, want ~4000", out.Len())
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.wav"), 8000)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestWrite_CreatesParentDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "tone.wav")

	if err := Write(path, testTone(4000, 8000)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestWrite_Overwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone.wav")

	if err := Write(path, testTone(4000, 8000)); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	if err := Write(path, testTone(2000, 8000)); err != nil {
		t.Fatalf("second Write: %v", err)
	}

	out, err := Load(path, 8000)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.Len() > 2000 {
		t.Errorf("overwrite kept old content: %d samples", out.Len())
	}
}
