package page

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// LoadResult is what the loader learned about an element's source.
type LoadResult struct {
	// Data holds the encoded image bytes, nil when the origin policy
	// withholds them.
	Data []byte

	// Width and Height are the intrinsic dimensions reported by the
	// decoder, zero when the source could not be fetched.
	Width  int
	Height int

	// CrossOrigin marks sources whose bytes may be drawn but never read
	// back through a canvas.
	CrossOrigin bool
}

// Element is one image element of a document. Loading state and listeners
// are confined to the run loop goroutine; only the loader's completion,
// posted back onto the loop, may touch them.
type Element struct {
	node *html.Node

	complete    bool
	data        []byte
	naturalW    int
	naturalH    int
	crossOrigin bool

	listeners []*listener
}

type listener struct {
	fn        func()
	cancelled bool
}

// Src returns the element's source attribute.
func (e *Element) Src() string {
	return getAttr(e.node, "src")
}

// SetSrc replaces the element's source attribute.
func (e *Element) SetSrc(src string) {
	setAttr(e.node, "src", src)
}

// Style returns the element's inline style attribute.
func (e *Element) Style() string {
	return getAttr(e.node, "style")
}

// SetStyle replaces the element's inline style attribute.
func (e *Element) SetStyle(style string) {
	setAttr(e.node, "style", style)
}

// Width is the rendered width: the width attribute when declared, otherwise
// the intrinsic width once loaded, otherwise zero.
func (e *Element) Width() int {
	if w := e.attrInt("width"); w > 0 {
		return w
	}
	return e.NaturalWidth()
}

// Height is the rendered height, resolved like Width.
func (e *Element) Height() int {
	if h := e.attrInt("height"); h > 0 {
		return h
	}
	return e.NaturalHeight()
}

// NaturalWidth is the intrinsic width of the loaded source, zero before the
// load completes. For sources whose bytes the loader could not fetch, the
// declared attribute size stands in for the intrinsic one.
func (e *Element) NaturalWidth() int {
	if !e.complete {
		return 0
	}
	if e.naturalW > 0 {
		return e.naturalW
	}
	return e.attrInt("width")
}

// NaturalHeight is the intrinsic height, resolved like NaturalWidth.
func (e *Element) NaturalHeight() int {
	if !e.complete {
		return 0
	}
	if e.naturalH > 0 {
		return e.naturalH
	}
	return e.attrInt("height")
}

// Complete reports whether the element's load has finished.
func (e *Element) Complete() bool {
	return e.complete
}

// Content returns the loaded source bytes. ok is false before the load
// completes or when the origin policy withholds the bytes.
func (e *Element) Content() ([]byte, bool) {
	if !e.complete || e.data == nil {
		return nil, false
	}
	return e.data, true
}

// CrossOrigin reports whether the loaded source came from outside the page's
// origin.
func (e *Element) CrossOrigin() bool {
	return e.crossOrigin
}

// OnLoad registers a one-shot callback fired when the element's load
// completes. Listeners registered after completion never fire. The returned
// cancel detaches the callback if it has not fired yet.
func (e *Element) OnLoad(fn func()) (cancel func()) {
	l := &listener{fn: fn}
	e.listeners = append(e.listeners, l)
	return func() { l.cancelled = true }
}

// FinishLoad records the load result and fires pending listeners. A second
// call is ignored: the load event fires at most once.
func (e *Element) FinishLoad(res LoadResult) {
	if e.complete {
		return
	}
	e.complete = true
	e.data = res.Data
	e.naturalW = res.Width
	e.naturalH = res.Height
	e.crossOrigin = res.CrossOrigin

	pending := e.listeners
	e.listeners = nil
	for _, l := range pending {
		if l.cancelled {
			continue
		}
		l.fn()
	}
}

func (e *Element) attrInt(key string) int {
	v := strings.TrimSpace(getAttr(e.node, key))
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
