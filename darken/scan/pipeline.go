package scan

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"webdarkmode/darken/pixel"
	"webdarkmode/darken/style"
)

// MinDimension is the rendered size below which an image is treated as an
// icon or UI chrome rather than document-like content.
const MinDimension = 120

// AnimatedExtension marks sources skipped to avoid freezing an animation
// with a destructive redraw. Matching by extension is a weak proxy: it
// misses animated files under other names and flags stills that merely
// carry the suffix.
const AnimatedExtension = ".gif"

// Outcome is the terminal result of one image's trip through the pipeline.
type Outcome int

const (
	// OutcomeRejected means the image failed eligibility and was never drawn.
	OutcomeRejected Outcome = iota
	// OutcomeSkipped means the classifier decided against inverting.
	OutcomeSkipped
	// OutcomeInverted means the pixel path replaced the image source.
	OutcomeInverted
	// OutcomeFiltered means pixel access was denied and the style fallback
	// was applied.
	OutcomeFiltered
	// OutcomeAborted means an environment failure stopped processing with
	// the image untouched.
	OutcomeAborted
)

// Pipeline runs one image at a time through eligibility, pixel access,
// classification and transform. Every outcome is terminal: nothing is
// retried, and no failure escapes to the caller.
type Pipeline struct {
	fallback style.Filter
	log      *zap.Logger
}

// NewPipeline builds a pipeline applying the given fallback filter when
// pixel access is denied.
func NewPipeline(fallback style.Filter, log *zap.Logger) *Pipeline {
	return &Pipeline{fallback: fallback, log: log}
}

// Run processes one loaded element and reports how it ended.
func (p *Pipeline) Run(el Element) Outcome {
	src := shortSrc(el.Src())

	if el.Width() < MinDimension || el.Height() < MinDimension {
		p.log.Info("skipping small image",
			zap.String("src", src),
			zap.Int("width", el.Width()),
			zap.Int("height", el.Height()))
		return OutcomeRejected
	}
	if strings.HasSuffix(strings.ToLower(el.Src()), AnimatedExtension) {
		p.log.Info("skipping animated image", zap.String("src", src))
		return OutcomeRejected
	}

	canvas, err := pixel.NewCanvas(el.NaturalWidth(), el.NaturalHeight())
	if err != nil {
		p.log.Debug("no drawing surface for image", zap.String("src", src), zap.Error(err))
		return OutcomeAborted
	}

	if err := canvas.Draw(el); err != nil {
		if errors.Is(err, pixel.ErrTainted) {
			return p.applyFallback(el)
		}
		p.log.Debug("failed to draw image", zap.String("src", src), zap.Error(err))
		return OutcomeAborted
	}

	buf, err := canvas.ReadPixels()
	if err != nil {
		if errors.Is(err, pixel.ErrTainted) {
			return p.applyFallback(el)
		}
		p.log.Debug("failed to read pixels", zap.String("src", src), zap.Error(err))
		return OutcomeAborted
	}

	verdict := pixel.Classify(buf)
	if !verdict.ShouldInvert() {
		p.log.Info("leaving image as is",
			zap.String("src", src),
			zap.Float64("brightFraction", verdict.Fraction()))
		return OutcomeSkipped
	}

	pixel.Invert(buf)
	if err := canvas.PutPixels(buf); err != nil {
		p.log.Debug("failed to write pixels back", zap.String("src", src), zap.Error(err))
		return OutcomeAborted
	}
	url, err := canvas.ToDataURL()
	if err != nil {
		p.log.Debug("failed to export inverted image", zap.String("src", src), zap.Error(err))
		return OutcomeAborted
	}
	el.SetSrc(url)
	p.log.Info("inverted image",
		zap.String("src", src),
		zap.Float64("brightFraction", verdict.Fraction()))
	return OutcomeInverted
}

// applyFallback handles a pixel-access denial. The filter is applied
// unconditionally, with no brightness sampling possible; a cross-origin
// photograph gets inverted along with everything else.
func (p *Pipeline) applyFallback(el Element) Outcome {
	el.SetStyle(style.Apply(el.Style(), p.fallback))
	p.log.Info("applied filter fallback",
		zap.String("src", shortSrc(el.Src())),
		zap.String("filter", p.fallback.Name))
	return OutcomeFiltered
}

// shortSrc keeps data URIs from flooding the log.
func shortSrc(src string) string {
	if len(src) > 64 {
		return src[:64] + "..."
	}
	return src
}
