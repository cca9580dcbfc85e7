package segment

import (
	"errors"
	"testing"

	"stylemix/internal/audio"
)

func buffer(n, rate int) audio.Buffer {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = float64(i)
	}
	return audio.Buffer{Samples: samples, SampleRate: rate}
}

func TestSplit_ExactFit(t *testing.T) {
	// 10 s at 22050 Hz with 2 s phrases: exactly 5 phrases, no remainder.
	buf := buffer(10*22050, 22050)

	phrases, err := Split(buf, 2.0)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(phrases) != 5 {
		t.Fatalf("got %d phrases, want 5", len(phrases))
	}
	for i, p := range phrases {
		if p.Len() != 44100 {
			t.Errorf("phrase %d length = %d, want 44100", i, p.Len())
		}
		if p.SampleRate != 22050 {
			t.Errorf("phrase %d sample rate = %d, want 22050", i, p.SampleRate)
		}
	}
}

func TestSplit_DropsPartialTail(t *testing.T) {
	// 3 s at 22050 Hz with 2 s phrases: one phrase, 1 s remainder discarded.
	buf := buffer(3*22050, 22050)

	phrases, err := Split(buf, 2.0)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(phrases) != 1 {
		t.Fatalf("got %d phrases, want 1", len(phrases))
	}
	if phrases[0].Len() != 44100 {
		t.Errorf("phrase length = %d, want 44100", phrases[0].Len())
	}
}

func TestSplit_PreservesOrderAndContent(t *testing.T) {
	buf := buffer(40, 10)

	phrases, err := Split(buf, 1.0)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(phrases) != 4 {
		t.Fatalf("got %d phrases, want 4", len(phrases))
	}
	for i, p := range phrases {
		if p.Samples[0] != float64(i*10) {
			t.Errorf("phrase %d starts with %v, want %v", i, p.Samples[0], float64(i*10))
		}
	}
}

func TestSplit_ShorterThanOnePhrase(t *testing.T) {
	buf := buffer(100, 22050)

	phrases, err := Split(buf, 2.0)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(phrases) != 0 {
		t.Errorf("got %d phrases, want 0", len(phrases))
	}
}

func TestSplit_EmptyWaveform(t *testing.T) {
	phrases, err := Split(audio.Buffer{SampleRate: 22050}, 2.0)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(phrases) != 0 {
		t.Errorf("got %d phrases, want 0", len(phrases))
	}
}

func TestSplit_InvalidLength(t *testing.T) {
	buf := buffer(1000, 22050)

	for _, sec := range []float64{0, -1} {
		_, err := Split(buf, sec)
		if !errors.Is(err, ErrInvalidSegmentLength) {
			t.Errorf("Split(%v s): err = %v, want ErrInvalidSegmentLength", sec, err)
		}
	}
}

func TestSplit_NoAliasing(t *testing.T) {
	buf := buffer(20, 10)
	phrases, err := Split(buf, 1.0)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	phrases[0].Samples[0] = -1
	if buf.Samples[0] == -1 {
		t.Error("phrase aliases source waveform")
	}
}
