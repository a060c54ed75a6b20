package scan

import "webdarkmode/darken/pixel"

// Element is the view of an image element the scanner works against. It is
// a drawable pixel source plus the rendered geometry, load state and
// writable surfaces of the underlying document node.
type Element interface {
	pixel.Source

	// Width and Height are the rendered dimensions in pixels.
	Width() int
	Height() int

	// Src is the element's source locator.
	Src() string
	// SetSrc replaces the displayed source.
	SetSrc(src string)

	// Style is the element's inline style.
	Style() string
	// SetStyle replaces the inline style.
	SetStyle(style string)

	// Complete reports whether the element has finished loading.
	Complete() bool
	// OnLoad registers a one-shot callback fired when loading finishes;
	// the returned cancel detaches it.
	OnLoad(fn func()) (cancel func())
}
