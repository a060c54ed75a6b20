package style

import (
	"strings"
	"testing"
)

func TestStandardFilterCSS(t *testing.T) {
	got := FilterStandard.CSS()
	want := "invert(100%) hue-rotate(180deg) brightness(105%) contrast(105%)"
	if got != want {
		t.Errorf("CSS() = %q, want %q", got, want)
	}
}

func TestSoftFilterOmitsNoOpFunctions(t *testing.T) {
	got := FilterSoft.CSS()
	want := "invert(100%) hue-rotate(180deg)"
	if got != want {
		t.Errorf("CSS() = %q, want %q", got, want)
	}
}

func TestGetFilter(t *testing.T) {
	f, err := GetFilter("crisp")
	if err != nil {
		t.Fatalf("GetFilter(crisp) returned error: %v", err)
	}
	if f.Name != "crisp" {
		t.Errorf("Name = %q, want crisp", f.Name)
	}

	f, err = GetFilter("STANDARD")
	if err != nil {
		t.Fatalf("GetFilter should be case-insensitive: %v", err)
	}
	if f.Name != "standard" {
		t.Errorf("Name = %q, want standard", f.Name)
	}

	if _, err := GetFilter("sepia"); err == nil {
		t.Error("GetFilter(sepia) should return an error")
	}
}

func TestListFilters(t *testing.T) {
	names := ListFilters()
	if len(names) != len(AvailableFilters) {
		t.Fatalf("ListFilters returned %d names, want %d", len(names), len(AvailableFilters))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("ListFilters not sorted: %v", names)
		}
	}
}

func TestDefaultFilter(t *testing.T) {
	if DefaultFilter().Name != "standard" {
		t.Errorf("DefaultFilter = %q, want standard", DefaultFilter().Name)
	}
}

func TestNewCustomFilter(t *testing.T) {
	f, err := NewCustomFilter(120, 110, "#202020")
	if err != nil {
		t.Fatalf("NewCustomFilter returned error: %v", err)
	}
	if f.Brightness != 120 || f.Contrast != 110 {
		t.Errorf("boosts = %d/%d, want 120/110", f.Brightness, f.Contrast)
	}
	if f.Background != "#202020" {
		t.Errorf("Background = %q, want #202020", f.Background)
	}

	if _, err := NewCustomFilter(100, 100, "white"); err == nil {
		t.Error("NewCustomFilter should reject non-hex backgrounds")
	}
	if _, err := NewCustomFilter(100, 100, "#fff"); err == nil {
		t.Error("NewCustomFilter should reject short hex backgrounds")
	}
}

func TestApplyToEmptyStyle(t *testing.T) {
	got := Apply("", FilterStandard)
	want := "filter: invert(100%) hue-rotate(180deg) brightness(105%) contrast(105%) !important; " +
		"background-color: #ffffff !important"
	if got != want {
		t.Errorf("Apply = %q, want %q", got, want)
	}
}

func TestApplyPreservesUnrelatedDeclarations(t *testing.T) {
	got := Apply("width: 50%; border: 1px solid red", FilterStandard)
	if !strings.HasPrefix(got, "width: 50%; border: 1px solid red; filter:") {
		t.Errorf("unrelated declarations not preserved in order: %q", got)
	}
	if !strings.Contains(got, "background-color: #ffffff !important") {
		t.Errorf("background fill missing: %q", got)
	}
}

func TestApplyReplacesExistingFilter(t *testing.T) {
	got := Apply("filter: blur(2px); margin: 0", FilterSoft)
	if strings.Contains(got, "blur") {
		t.Errorf("existing filter declaration should be replaced: %q", got)
	}
	if strings.Count(got, "filter:") != 1 {
		t.Errorf("want exactly one filter declaration: %q", got)
	}
	if !strings.Contains(got, "margin: 0") {
		t.Errorf("unrelated declaration dropped: %q", got)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	once := Apply("color: red", FilterStandard)
	twice := Apply(once, FilterStandard)
	if once != twice {
		t.Errorf("Apply not idempotent:\nonce  = %q\ntwice = %q", once, twice)
	}
}
