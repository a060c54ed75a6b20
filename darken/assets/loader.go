package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"go.uber.org/zap"
	_ "golang.org/x/image/webp"

	"webdarkmode/darken/page"
)

// Loader fetches image sources on behalf of a page, enforcing the origin
// policy: it never goes over the network, and bytes from outside the page
// root are handed over cross-origin.
type Loader struct {
	root string
	log  *zap.Logger
}

// NewLoader builds a loader whose same-origin boundary is the given page
// root directory.
func NewLoader(root string, log *zap.Logger) *Loader {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &Loader{root: root, log: log}
}

// Resolve applies the origin policy to a source locator and fetches what it
// allows. The result is ready for Element.FinishLoad. An error means the
// load never completes, as with a missing or undecodable source.
func (l *Loader) Resolve(ctx context.Context, src string) (page.LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return page.LoadResult{}, err
	}

	origin, path := l.classify(src)
	switch origin {
	case OriginInline:
		data, err := decodeDataURI(src)
		if err != nil {
			return page.LoadResult{}, fmt.Errorf("failed to decode inline source: %w", err)
		}
		return l.decoded(data, origin)

	case OriginRemote:
		l.log.Debug("source unreachable without network, bytes withheld",
			zap.String("src", src))
		return page.LoadResult{CrossOrigin: true}, nil

	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return page.LoadResult{}, fmt.Errorf("failed to read image file: %w", err)
		}
		return l.decoded(data, origin)
	}
}

// classify maps a source locator to its origin and, for file-backed
// origins, the filesystem path to read.
func (l *Loader) classify(src string) (Origin, string) {
	if IsInline(src) {
		return OriginInline, ""
	}

	path := src
	if u, err := url.Parse(src); err == nil && u.Scheme != "" {
		if u.Scheme != "file" {
			return OriginRemote, ""
		}
		path = u.Path
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(l.root, path)
	}
	path = filepath.Clean(path)

	rel, err := filepath.Rel(l.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return OriginCross, path
	}
	return OriginSame, path
}

func (l *Loader) decoded(data []byte, origin Origin) (page.LoadResult, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return page.LoadResult{}, fmt.Errorf("failed to decode image: %w", err)
	}
	l.log.Debug("decoded image source",
		zap.String("format", format),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Stringer("origin", origin))
	return page.LoadResult{
		Data:        data,
		Width:       cfg.Width,
		Height:      cfg.Height,
		CrossOrigin: origin == OriginCross,
	}, nil
}
