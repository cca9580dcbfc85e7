package dsp

// Resample converts samples from one rate to another by linear interpolation.
// Lightweight and good enough for a splicing pipeline; a rate match returns
// the input unchanged.
func Resample(samples []float64, fromRate, toRate int) []float64 {
	if fromRate == toRate || len(samples) == 0 {
		return samples
	}

	ratio := float64(toRate) / float64(fromRate)
	outLen := int(float64(len(samples)) * ratio)
	if outLen == 0 {
		return []float64{}
	}

	out := make([]float64, outLen)
	for i := range out {
		srcPos := float64(i) / ratio
		srcIdx := int(srcPos)
		frac := srcPos - float64(srcIdx)

		s1 := samples[srcIdx]
		s2 := s1
		if srcIdx+1 < len(samples) {
			s2 = samples[srcIdx+1]
		}
		out[i] = s1 + (s2-s1)*frac
	}
	return out
}
