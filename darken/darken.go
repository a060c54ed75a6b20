// Package darken converts a saved web page for dark-mode viewing. It scans
// the page's images once and inverts those that look like bright-background
// documents: screenshots, terminal output, scanned text. Photographs and
// already-dark graphics are left alone.
package darken

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"webdarkmode/darken/assets"
	"webdarkmode/darken/page"
	"webdarkmode/darken/scan"
	"webdarkmode/darken/style"
)

// Report summarizes a conversion: how many images were scanned and how
// each one ended up.
type Report = scan.Report

// Options configures one conversion.
type Options struct {
	// InputFile is the saved page to convert.
	InputFile string

	// OutputFile receives the converted page.
	OutputFile string

	// Filter is the style fallback applied to images whose pixels cannot
	// be read.
	Filter style.Filter

	// Logger receives diagnostics. Nil means silent.
	Logger *zap.Logger
}

// Process converts a saved page and writes the result. The returned report
// tallies every image's outcome; it is valid even when an error cut the run
// short.
func Process(ctx context.Context, opts Options) (*Report, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	f, err := os.Open(opts.InputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	doc, err := page.Parse(f)
	f.Close()
	if err != nil {
		return nil, err
	}

	images := doc.Images()
	log.Debug("page parsed", zap.Int("images", len(images)))

	report := &Report{}
	loader := assets.NewLoader(filepath.Dir(opts.InputFile), log)
	loop := scan.NewLoop()
	scanner := scan.NewScanner(scan.NewPipeline(opts.Filter, log), report, log)
	defer scanner.Shutdown()

	// Inline sources decode in place, so their elements enter the scan
	// already loaded.
	for _, el := range images {
		if !assets.IsInline(el.Src()) {
			continue
		}
		res, err := loader.Resolve(ctx, el.Src())
		if err != nil {
			log.Debug("inline source never finished loading",
				zap.String("src", el.Src()[:min(len(el.Src()), 64)]),
				zap.Error(err))
			report.Unloaded++
			continue
		}
		el.FinishLoad(res)
	}

	elements := make([]scan.Element, 0, len(images))
	for _, el := range images {
		elements = append(elements, el)
	}
	loop.Post(func() { scanner.Scan(elements) })

	// Everything else loads off the loop; each completion is posted back
	// and handled by the element's load callback.
	for _, el := range images {
		if el.Complete() || assets.IsInline(el.Src()) {
			continue
		}
		release := loop.Track()
		go func() {
			res, err := loader.Resolve(ctx, el.Src())
			loop.Post(func() {
				defer release()
				if err != nil {
					log.Debug("image never finished loading",
						zap.String("src", el.Src()),
						zap.Error(err))
					report.Unloaded++
					return
				}
				el.FinishLoad(res)
			})
		}()
	}

	if err := loop.Run(ctx); err != nil {
		return report, fmt.Errorf("failed to finish scan: %w", err)
	}
	log.Debug("scan finished",
		zap.Int("inverted", report.Inverted),
		zap.Int("filtered", report.Filtered),
		zap.Int("skipped", report.Skipped),
		zap.Int("rejected", report.Rejected))

	out, err := os.Create(opts.OutputFile)
	if err != nil {
		return report, fmt.Errorf("failed to create output file: %w", err)
	}
	if err := doc.Render(out); err != nil {
		out.Close()
		return report, err
	}
	if err := out.Close(); err != nil {
		return report, fmt.Errorf("failed to write output file: %w", err)
	}
	return report, nil
}
