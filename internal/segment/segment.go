// Package segment slices waveforms into the fixed-length phrases the
// composer recombines.
package segment

import (
	"errors"
	"fmt"

	"stylemix/internal/audio"
)

// ErrInvalidSegmentLength is returned when the requested segment duration
// rounds to zero samples or less.
var ErrInvalidSegmentLength = errors.New("invalid segment length")

// Split cuts buf into non-overlapping phrases of segmentSeconds each,
// walking from offset 0 with no overlap. A trailing window shorter than one
// phrase is discarded, never padded. Splitting is pure and deterministic;
// a waveform shorter than one phrase yields an empty slice.
func Split(buf audio.Buffer, segmentSeconds float64) ([]audio.Buffer, error) {
	phraseLen := int(segmentSeconds * float64(buf.SampleRate))
	if phraseLen <= 0 {
		return nil, fmt.Errorf("%w: %v s at %d Hz", ErrInvalidSegmentLength, segmentSeconds, buf.SampleRate)
	}

	var phrases []audio.Buffer
	for off := 0; off+phraseLen <= buf.Len(); off += phraseLen {
		phrases = append(phrases, buf.Slice(off, off+phraseLen))
	}
	return phrases, nil
}
