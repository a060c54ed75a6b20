package pixel

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/webp"
)

// MaxPixels caps the surface area a single canvas may hold, matching the
// per-canvas limits rendering engines enforce.
const MaxPixels = 16384 * 16384

var (
	// ErrNoSurface means a drawing surface could not be acquired at the
	// requested size.
	ErrNoSurface = errors.New("no drawing surface")

	// ErrTainted means the access-control policy blocked pixel access:
	// either the source's bytes are withheld outright, or the canvas holds
	// cross-origin content and refuses readback.
	ErrTainted = errors.New("canvas tainted by cross-origin content")
)

// Source is anything a canvas can rasterize: decoded dimensions plus the
// encoded bytes, which the origin policy may withhold entirely.
type Source interface {
	NaturalWidth() int
	NaturalHeight() int
	// Content returns the encoded image bytes. ok is false when the policy
	// withholds them, in which case Draw fails with ErrTainted.
	Content() (data []byte, ok bool)
	// CrossOrigin reports whether drawing this source taints the canvas,
	// blocking readback while still allowing the draw itself.
	CrossOrigin() bool
}

// Canvas is an offscreen RGBA surface with browser-style taint tracking.
type Canvas struct {
	width   int
	height  int
	surface *image.NRGBA
	tainted bool
}

// NewCanvas acquires a surface of the given size. Non-positive dimensions or
// an area beyond MaxPixels fail with ErrNoSurface.
func NewCanvas(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrNoSurface, width, height)
	}
	if width*height > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds surface limit", ErrNoSurface, width, height)
	}
	return &Canvas{
		width:   width,
		height:  height,
		surface: image.NewNRGBA(image.Rect(0, 0, width, height)),
	}, nil
}

// Width returns the surface width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the surface height in pixels.
func (c *Canvas) Height() int { return c.height }

// Draw rasterizes the source onto the surface. Sources whose bytes are
// withheld fail with ErrTainted; cross-origin sources draw successfully but
// taint the canvas for all later readback.
func (c *Canvas) Draw(src Source) error {
	data, ok := src.Content()
	if !ok {
		return fmt.Errorf("failed to draw source: %w", ErrTainted)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode source: %w", err)
	}
	draw.Draw(c.surface, c.surface.Bounds(), img, img.Bounds().Min, draw.Src)
	if src.CrossOrigin() {
		c.tainted = true
	}
	return nil
}

// ReadPixels copies the surface contents out as a width*height*4 RGBA
// buffer. A tainted canvas refuses with ErrTainted.
func (c *Canvas) ReadPixels() ([]byte, error) {
	if c.tainted {
		return nil, fmt.Errorf("failed to read pixels: %w", ErrTainted)
	}
	buf := make([]byte, len(c.surface.Pix))
	copy(buf, c.surface.Pix)
	return buf, nil
}

// PutPixels writes a buffer produced by ReadPixels back onto the surface.
func (c *Canvas) PutPixels(buf []byte) error {
	if len(buf) != len(c.surface.Pix) {
		return fmt.Errorf("pixel buffer is %d bytes, surface needs %d", len(buf), len(c.surface.Pix))
	}
	copy(c.surface.Pix, buf)
	return nil
}

// ToDataURL re-encodes the surface as a PNG data URI suitable for use as an
// image source. A tainted canvas refuses with ErrTainted.
func (c *Canvas) ToDataURL() (string, error) {
	if c.tainted {
		return "", fmt.Errorf("failed to export surface: %w", ErrTainted)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, c.surface); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
