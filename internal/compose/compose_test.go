package compose

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"stylemix/internal/audio"
)

const (
	testRate      = 8000
	testPhraseLen = 4000
)

func testPool(n int) Pool {
	pool := make(Pool, 0, n)
	for p := 0; p < n; p++ {
		samples := make([]float64, testPhraseLen)
		freq := 220.0 * float64(p+1)
		for i := range samples {
			samples[i] = 0.4 * math.Sin(2*math.Pi*freq*float64(i)/testRate)
		}
		pool = append(pool, audio.Buffer{Samples: samples, SampleRate: testRate})
	}
	return pool
}

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestCompose_EmptyPool(t *testing.T) {
	_, err := Compose(testRNG(1), nil, DefaultOptions())
	if !errors.Is(err, ErrEmptyPool) {
		t.Errorf("err = %v, want ErrEmptyPool", err)
	}
}

func TestCompose_InvalidPhraseCount(t *testing.T) {
	opts := DefaultOptions()
	opts.NumPhrases = 0
	_, err := Compose(testRNG(1), testPool(2), opts)
	if !errors.Is(err, ErrInvalidPhraseCount) {
		t.Errorf("err = %v, want ErrInvalidPhraseCount", err)
	}
}

func TestCompose_OutputLengthBounds(t *testing.T) {
	opts := DefaultOptions()
	opts.NumPhrases = 8

	out, err := Compose(testRNG(42), testPool(3), opts)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if out.SampleRate != testRate {
		t.Errorf("sample rate = %d, want %d", out.SampleRate, testRate)
	}

	// Each transformed phrase keeps its length (pitch branch) or lands near
	// phraseLen/rate with vocoder framing slack (stretch branch).
	minPer := float64(testPhraseLen)/opts.StretchMax - 2560
	maxPer := float64(testPhraseLen)/opts.StretchMin + 2560
	lo := int(minPer) * opts.NumPhrases
	hi := int(maxPer) * opts.NumPhrases
	if out.Len() < lo || out.Len() > hi {
		t.Errorf("output length = %d, want within [%d, %d]", out.Len(), lo, hi)
	}
}

func TestCompose_SinglePhrasePool(t *testing.T) {
	// A pool of one phrase must still compose, and across repeated calls both
	// transform branches must occur. The pitch branch preserves phrase length
	// exactly; the stretch branch never does for these parameters.
	pool := testPool(1)
	opts := DefaultOptions()
	opts.NumPhrases = 1

	rng := testRNG(7)
	pitch, stretch := 0, 0
	for i := 0; i < 40; i++ {
		out, err := Compose(rng, pool, opts)
		if err != nil {
			t.Fatalf("Compose #%d: %v", i, err)
		}
		if out.Len() == testPhraseLen {
			pitch++
		} else {
			stretch++
		}
	}
	if pitch == 0 || stretch == 0 {
		t.Errorf("over 40 calls: pitch branch %d, stretch branch %d; want both > 0", pitch, stretch)
	}
}

func TestCompose_Deterministic(t *testing.T) {
	pool := testPool(2)
	opts := DefaultOptions()
	opts.NumPhrases = 4

	a, err := Compose(testRNG(99), pool, opts)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	b, err := Compose(testRNG(99), pool, opts)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if a.Len() != b.Len() {
		t.Fatalf("seeded runs differ in length: %d vs %d", a.Len(), b.Len())
	}
	for i := range a.Samples {
		if a.Samples[i] != b.Samples[i] {
			t.Fatalf("seeded runs diverge at sample %d", i)
		}
	}
}

func TestCompose_PoolUnchanged(t *testing.T) {
	pool := testPool(2)
	before := make([]float64, testPhraseLen)
	copy(before, pool[0].Samples)

	opts := DefaultOptions()
	opts.NumPhrases = 6
	if _, err := Compose(testRNG(3), pool, opts); err != nil {
		t.Fatalf("Compose: %v", err)
	}

	for i := range before {
		if pool[0].Samples[i] != before[i] {
			t.Fatal("Compose mutated the pool")
		}
	}
}

func TestCompose_ShortPhrasePropagates(t *testing.T) {
	// Phrases shorter than the transform analysis window abort the call.
	pool := Pool{{Samples: make([]float64, 128), SampleRate: testRate}}
	opts := DefaultOptions()
	opts.NumPhrases = 2

	if _, err := Compose(testRNG(5), pool, opts); err == nil {
		t.Error("expected transform error for short phrases")
	}
}
