package darken

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"webdarkmode/darken/page"
	"webdarkmode/darken/style"
)

// bandedPNG encodes a size x size image whose top brightRows rows are white
// and the rest black.
func bandedPNG(t *testing.T, size, brightRows int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		c := color.NRGBA{0, 0, 0, 255}
		if y < brightRows {
			c = color.NRGBA{255, 255, 255, 255}
		}
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

func dataURI(data []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}

// convert writes a page plus extra files into a temp dir, processes it and
// returns the report with the reparsed output.
func convert(t *testing.T, html string, extra map[string][]byte) (*Report, *page.Document) {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "page.html")
	if err := os.WriteFile(input, []byte(html), 0o644); err != nil {
		t.Fatal(err)
	}
	for name, data := range extra {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	output := filepath.Join(dir, "page_dark.html")

	report, err := Process(context.Background(), Options{
		InputFile:  input,
		OutputFile: output,
		Filter:     style.DefaultFilter(),
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	raw, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("failed to read output page: %v", err)
	}
	doc, err := page.Parse(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("failed to reparse output page: %v", err)
	}
	return report, doc
}

func decodeSrc(t *testing.T, src string) image.Image {
	t.Helper()
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(src, prefix) {
		t.Fatalf("src = %.40q, want a PNG data URI", src)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(src, prefix))
	if err != nil {
		t.Fatalf("failed to decode src payload: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("failed to decode src PNG: %v", err)
	}
	return img
}

func TestProcessInvertsBrightInlineImage(t *testing.T) {
	uri := dataURI(bandedPNG(t, 300, 270)) // 90% bright
	report, doc := convert(t, `<html><body><img src="`+uri+`"></body></html>`, nil)

	if report.Inverted != 1 || report.Scanned != 1 {
		t.Fatalf("report = %+v, want one inverted", *report)
	}
	el := doc.Images()[0]
	if el.Src() == uri {
		t.Fatal("source should have been replaced")
	}
	img := decodeSrc(t, el.Src())
	top := color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA)
	if top != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("bright row inverted to %v, want opaque black", top)
	}
	bottom := color.NRGBAModel.Convert(img.At(0, 299)).(color.NRGBA)
	if bottom != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("dark row inverted to %v, want opaque white", bottom)
	}
}

func TestProcessLeavesDarkInlineImage(t *testing.T) {
	uri := dataURI(bandedPNG(t, 300, 90)) // 30% bright
	report, doc := convert(t, `<html><body><img src="`+uri+`"></body></html>`, nil)

	if report.Skipped != 1 || report.Scanned != 1 {
		t.Fatalf("report = %+v, want one skipped", *report)
	}
	el := doc.Images()[0]
	if el.Src() != uri {
		t.Error("skipped image's source should be unchanged")
	}
	if el.Style() != "" {
		t.Errorf("skipped image's style should be empty, got %q", el.Style())
	}
}

func TestProcessIgnoresSmallImage(t *testing.T) {
	uri := dataURI(bandedPNG(t, 50, 50))
	report, doc := convert(t, `<html><body><img src="`+uri+`"></body></html>`, nil)

	if report.Rejected != 1 || report.Scanned != 1 {
		t.Fatalf("report = %+v, want one rejected", *report)
	}
	el := doc.Images()[0]
	if el.Src() != uri || el.Style() != "" {
		t.Error("rejected image must stay untouched")
	}
}

func TestProcessFallbackForRemoteImage(t *testing.T) {
	const src = "http://example.com/chart.png"
	report, doc := convert(t,
		`<html><body><img src="`+src+`" width="300" height="300"></body></html>`, nil)

	if report.Filtered != 1 || report.Scanned != 1 {
		t.Fatalf("report = %+v, want one filtered", *report)
	}
	el := doc.Images()[0]
	if el.Src() != src {
		t.Errorf("src = %q, fallback must not touch the source", el.Src())
	}
	if !strings.Contains(el.Style(), "invert(100%)") {
		t.Errorf("style = %q, want inversion filter", el.Style())
	}
	if !strings.Contains(el.Style(), "background-color: #ffffff !important") {
		t.Errorf("style = %q, want opaque background", el.Style())
	}
}

func TestProcessLoadsFileImages(t *testing.T) {
	report, doc := convert(t,
		`<html><body><img src="shot.png"></body></html>`,
		map[string][]byte{"shot.png": bandedPNG(t, 300, 270)})

	if report.Inverted != 1 {
		t.Fatalf("report = %+v, want one inverted", *report)
	}
	if !strings.HasPrefix(doc.Images()[0].Src(), "data:image/png;base64,") {
		t.Error("file-backed image should be replaced with a data URI")
	}
}

func TestProcessCrossOriginFileGetsFilter(t *testing.T) {
	other := t.TempDir()
	path := filepath.Join(other, "photo.png")
	if err := os.WriteFile(path, bandedPNG(t, 300, 270), 0o644); err != nil {
		t.Fatal(err)
	}

	report, doc := convert(t, `<html><body><img src="`+path+`"></body></html>`, nil)

	if report.Filtered != 1 {
		t.Fatalf("report = %+v, want one filtered", *report)
	}
	el := doc.Images()[0]
	if el.Src() != path {
		t.Errorf("src = %q, want original path", el.Src())
	}
	if !strings.Contains(el.Style(), "filter:") {
		t.Errorf("style = %q, want filter fallback", el.Style())
	}
}

func TestProcessMissingFileNeverCompletes(t *testing.T) {
	report, doc := convert(t, `<html><body><img src="missing.png" width="300" height="300"></body></html>`, nil)

	if report.Unloaded != 1 || report.Scanned != 0 {
		t.Fatalf("report = %+v, want one unloaded, none scanned", *report)
	}
	el := doc.Images()[0]
	if el.Src() != "missing.png" || el.Style() != "" {
		t.Error("unloaded image must stay untouched")
	}
}

func TestProcessMixedPage(t *testing.T) {
	bright := dataURI(bandedPNG(t, 300, 270))
	small := dataURI(bandedPNG(t, 50, 50))
	html := fmt.Sprintf(`<html><body>
<img src="%s">
<img src="%s">
<img src="http://example.com/banner.png" width="400" height="200">
</body></html>`, bright, small)

	report, _ := convert(t, html, nil)

	if report.Scanned != 3 {
		t.Fatalf("report = %+v, want 3 scanned", *report)
	}
	if report.Inverted != 1 || report.Rejected != 1 || report.Filtered != 1 {
		t.Errorf("report = %+v, want 1 inverted, 1 rejected, 1 filtered", *report)
	}
	if !report.Changed() {
		t.Error("report should count as changed")
	}
}

func TestProcessMissingInput(t *testing.T) {
	_, err := Process(context.Background(), Options{
		InputFile:  filepath.Join(t.TempDir(), "absent.html"),
		OutputFile: filepath.Join(t.TempDir(), "out.html"),
		Filter:     style.DefaultFilter(),
	})
	if err == nil {
		t.Error("missing input should fail")
	}
}

func TestProcessCancelledContext(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "page.html")
	uri := dataURI(bandedPNG(t, 300, 270))
	if err := os.WriteFile(input, []byte(`<img src="`+uri+`">`), 0o644); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Process(ctx, Options{
		InputFile:  input,
		OutputFile: filepath.Join(dir, "out.html"),
		Filter:     style.DefaultFilter(),
	})
	if err == nil {
		t.Error("cancelled context should fail the run")
	}
}
