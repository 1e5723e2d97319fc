// Package normalize converts the raw, untrusted link and social-link
// entries from the payload into display-safe records. It never fails:
// malformed entries are skipped or substituted, and every derivation has
// a fallback.
package normalize

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// PlaceholderURL stands in for a link whose record had no usable URL.
	PlaceholderURL = "#"

	// PlaceholderTitle stands in when neither title nor URL yields one.
	PlaceholderTitle = "Link"

	// PlaceholderSocialType stands in for a social link without a type.
	PlaceholderSocialType = "LINK"
)

// Normalizer holds the subtitle override table. The zero value is not
// usable; construct with New.
type Normalizer struct {
	subtitles map[string]string
	titleCase cases.Caser
}

// New returns a Normalizer using the given subtitle overrides, or the
// default table when nil is passed. Keys are matched lower-cased.
func New(subtitles map[string]string) *Normalizer {
	if subtitles == nil {
		subtitles = DefaultSubtitles()
	}
	return &Normalizer{
		subtitles: subtitles,
		titleCase: cases.Title(language.English),
	}
}

// stringField pulls a trimmed string out of a decoded JSON object,
// returning "" when the key is absent or holds a non-string value.
func stringField(fields map[string]any, key string) string {
	v, ok := fields[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// jsonKind names the JSON type of a raw value, for diagnostics.
func jsonKind(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return "empty"
	}
	switch trimmed[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
