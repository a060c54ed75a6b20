package page

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML page whose image elements can be inspected and
// rewritten in place.
type Document struct {
	root   *html.Node
	images []*Element
}

// Parse reads an HTML document and collects its image elements in document
// order.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	d := &Document{root: root}
	d.collect(root)
	return d, nil
}

// Images returns the document's image elements in document order. Mutating
// an element mutates the document.
func (d *Document) Images() []*Element {
	return d.images
}

// Render writes the document back out as HTML, including any element
// mutations made since parsing.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}
	return nil
}

func (d *Document) collect(n *html.Node) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		d.images = append(d.images, &Element{node: n})
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.collect(c)
	}
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
