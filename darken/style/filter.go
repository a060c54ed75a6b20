package style

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Filter describes the presentation-level inversion applied to images whose
// pixels cannot be read. It renders to a CSS filter chain plus an opaque
// background fill, so transparent regions invert to dark instead of showing
// through.
type Filter struct {
	Name       string
	Invert     int    // percent, 0-100
	HueRotate  int    // degrees
	Brightness int    // percent, 100 = unchanged
	Contrast   int    // percent, 100 = unchanged
	Background string // opaque CSS hex color painted behind the image
}

// CSS returns the filter function chain, e.g.
// "invert(100%) hue-rotate(180deg) brightness(105%) contrast(105%)".
func (f Filter) CSS() string {
	parts := []string{fmt.Sprintf("invert(%d%%)", f.Invert)}
	if f.HueRotate != 0 {
		parts = append(parts, fmt.Sprintf("hue-rotate(%ddeg)", f.HueRotate))
	}
	if f.Brightness != 100 {
		parts = append(parts, fmt.Sprintf("brightness(%d%%)", f.Brightness))
	}
	if f.Contrast != 100 {
		parts = append(parts, fmt.Sprintf("contrast(%d%%)", f.Contrast))
	}
	return strings.Join(parts, " ")
}

// Predefined fallback filters
var (
	// FilterStandard inverts with a hue rotation that restores original hues,
	// plus mild brightness/contrast boosts to keep text legible.
	FilterStandard = Filter{
		Name:       "standard",
		Invert:     100,
		HueRotate:  180,
		Brightness: 105,
		Contrast:   105,
		Background: "#ffffff",
	}

	// FilterSoft is a plain inversion without the legibility boosts.
	FilterSoft = Filter{
		Name:       "soft",
		Invert:     100,
		HueRotate:  180,
		Brightness: 100,
		Contrast:   100,
		Background: "#ffffff",
	}

	// FilterCrisp pushes brightness and contrast harder, for scans with
	// faint text.
	FilterCrisp = Filter{
		Name:       "crisp",
		Invert:     100,
		HueRotate:  180,
		Brightness: 110,
		Contrast:   112,
		Background: "#ffffff",
	}

	// AvailableFilters maps filter names to their definitions
	AvailableFilters = map[string]Filter{
		"standard": FilterStandard,
		"soft":     FilterSoft,
		"crisp":    FilterCrisp,
	}
)

// GetFilter returns a filter by name, or an error if not found
func GetFilter(name string) (Filter, error) {
	name = strings.ToLower(name)
	if f, ok := AvailableFilters[name]; ok {
		return f, nil
	}
	return Filter{}, fmt.Errorf("unknown filter: %s", name)
}

// ListFilters returns the available filter names, sorted
func ListFilters() []string {
	names := make([]string, 0, len(AvailableFilters))
	for name := range AvailableFilters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultFilter returns the standard filter
func DefaultFilter() Filter {
	return FilterStandard
}

// NewCustomFilter creates a filter with caller-chosen boosts and background.
// The background must be an opaque #rrggbb color.
func NewCustomFilter(brightness, contrast int, background string) (Filter, error) {
	if err := validateHex(background); err != nil {
		return Filter{}, fmt.Errorf("invalid background color: %w", err)
	}
	return Filter{
		Name:       "custom",
		Invert:     100,
		HueRotate:  180,
		Brightness: brightness,
		Contrast:   contrast,
		Background: background,
	}, nil
}

// validateHex checks a #rrggbb color string
func validateHex(hex string) error {
	trimmed := strings.TrimPrefix(hex, "#")
	if len(trimmed) != 6 {
		return fmt.Errorf("expected #rrggbb, got %q", hex)
	}
	if _, err := strconv.ParseUint(trimmed, 16, 32); err != nil {
		return fmt.Errorf("expected #rrggbb, got %q", hex)
	}
	return nil
}
