package style

import "strings"

// declaration is one property: value pair from an inline style attribute.
// Fragments without a colon are kept verbatim so malformed author styles
// survive a round trip.
type declaration struct {
	property string
	value    string
	raw      string
}

// Apply merges a filter into an existing inline style attribute and returns
// the new attribute value. Unrelated declarations keep their order; any
// existing filter or background-color declaration is replaced in place. Both
// injected declarations carry !important so they win over stylesheet rules.
func Apply(existing string, f Filter) string {
	decls := parseStyle(existing)
	decls = setDeclaration(decls, "filter", f.CSS()+" !important")
	decls = setDeclaration(decls, "background-color", f.Background+" !important")

	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		if d.raw != "" {
			parts = append(parts, d.raw)
			continue
		}
		parts = append(parts, d.property+": "+d.value)
	}
	return strings.Join(parts, "; ")
}

// parseStyle splits an inline style attribute into declarations
func parseStyle(s string) []declaration {
	var decls []declaration
	for _, chunk := range strings.Split(s, ";") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		prop, val, ok := strings.Cut(chunk, ":")
		if !ok {
			decls = append(decls, declaration{raw: chunk})
			continue
		}
		decls = append(decls, declaration{
			property: strings.TrimSpace(prop),
			value:    strings.TrimSpace(val),
		})
	}
	return decls
}

// setDeclaration replaces the named property if present, else appends it
func setDeclaration(decls []declaration, property, value string) []declaration {
	for i, d := range decls {
		if strings.EqualFold(d.property, property) {
			decls[i] = declaration{property: property, value: value}
			return decls
		}
	}
	return append(decls, declaration{property: property, value: value})
}
