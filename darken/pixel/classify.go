package pixel

// Sampling parameters for the brightness heuristic. A document-like image
// (white page, dark text or diagrams) shows a large majority of bright
// pixels even though it is far from uniformly white.
const (
	// SampleStride is the byte distance between samples: one pixel in five
	// at four bytes per pixel.
	SampleStride = 20

	// BrightnessThreshold is the channel mean above which a sampled pixel
	// counts as bright.
	BrightnessThreshold = 200

	// BrightRatio is the fraction of bright samples an image must exceed
	// before it is inverted. Exactly this fraction is not enough.
	BrightRatio = 0.6
)

// Verdict holds the sampled statistics behind an inversion decision.
type Verdict struct {
	Samples int
	Bright  int
}

// Fraction returns the share of sampled pixels that were bright.
func (v Verdict) Fraction() float64 {
	if v.Samples == 0 {
		return 0
	}
	return float64(v.Bright) / float64(v.Samples)
}

// ShouldInvert reports whether the sampled image reads as a bright page
// with dark content.
func (v Verdict) ShouldInvert() bool {
	return v.Fraction() > BrightRatio
}

// Classify samples an RGBA buffer at a fixed stride and scores each sample
// by the mean of its color channels, alpha excluded. It is a pure function
// of the buffer.
func Classify(buf []byte) Verdict {
	var v Verdict
	for i := 0; i+2 < len(buf); i += SampleStride {
		v.Samples++
		// mean(R,G,B) > threshold, kept in integer arithmetic
		if int(buf[i])+int(buf[i+1])+int(buf[i+2]) > 3*BrightnessThreshold {
			v.Bright++
		}
	}
	return v
}
