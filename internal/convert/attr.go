package convert

import (
	"github.com/provtools/prov2ld/internal/jsonld"
)

// Composite value markers from the PROV-JSON value form:
// {"$": lexical, "type": datatype} or {"$": text, "lang": tag}.
const (
	markerValue = "$"
	markerType  = "type"
	markerLang  = "lang"
)

// normalizeValue converts one raw attribute value into its JSON-LD
// representation.
//
//   - plain scalars (string, number, bool) pass through unchanged and are
//     never re-typed
//   - {"$", "type"} becomes {"@value", "@type"}
//   - {"$", "lang"} becomes {"@value", "@language"}
//   - arrays normalize element-wise, order preserved
//   - composite objects without any marker pass through unchanged
//
// A composite carrying a marker but missing its literal form degrades to
// the empty-string scalar with a MALFORMED_ATTRIBUTE warning. A composite
// carrying both a datatype and a language tag keeps the datatype, with a
// warning.
func (c *converter) normalizeValue(sc scope, v any, path RecordPath) (any, error) {
	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			norm, err := c.normalizeValue(sc, elem, path)
			if err != nil {
				return nil, err
			}
			out[i] = norm
		}
		return out, nil
	case map[string]any:
		return c.normalizeComposite(sc, val, path)
	default:
		return v, nil
	}
}

func (c *converter) normalizeComposite(sc scope, m map[string]any, path RecordPath) (any, error) {
	lexical, hasValue := m[markerValue]
	datatype, hasType := m[markerType]
	lang, hasLang := m[markerLang]

	if !hasValue && !hasType && !hasLang {
		// Not a PROV-JSON value form; pass through unchanged.
		return m, nil
	}

	if !hasValue {
		c.warn(WarnMalformedAttribute, path, "value form missing literal ($); emitting empty string")
		lexical = ""
	}

	out := jsonld.NewObject().Set("@value", lexical)

	switch {
	case hasType && hasLang:
		c.warn(WarnMalformedAttribute, path, "value form carries both datatype and language tag; keeping datatype")
		fallthrough
	case hasType:
		if dt, ok := datatype.(string); ok {
			if err := sc.resolve(dt, path); err != nil {
				return nil, err
			}
		}
		out.Set("@type", datatype)
	case hasLang:
		out.Set("@language", lang)
	}

	return out, nil
}

func (c *converter) warn(code string, path RecordPath, message string) {
	c.warnings = append(c.warnings, Warning{Code: code, Path: path, Message: message})
}
