package normalize

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/biopage/biopage/pkg/models"
)

// Links converts raw link entries into display-ready records, preserving
// order. Entries that are not JSON objects are skipped with a diagnostic
// noting their position and actual kind. The number of skipped entries is
// returned for the run summary.
func (n *Normalizer) Links(entries []json.RawMessage) ([]models.Link, int) {
	out := make([]models.Link, 0, len(entries))
	skipped := 0

	for i, raw := range entries {
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
			log.Warn().
				Int("position", i).
				Str("kind", jsonKind(raw)).
				Msg("Skipping link entry: not an object")
			skipped++
			continue
		}
		out = append(out, n.link(fields))
	}

	return out, skipped
}

// link builds a single normalized record. Every field has a fallback, so
// this never fails regardless of what the entry contains.
func (n *Normalizer) link(fields map[string]any) models.Link {
	rawURL := stringField(fields, "url")

	linkURL := rawURL
	if linkURL == "" {
		linkURL = PlaceholderURL
	}

	title := stringField(fields, "title")
	if title == "" {
		title = n.hostLabel(rawURL)
	}
	if title == "" {
		title = PlaceholderTitle
	}

	return models.Link{
		Title:    title,
		URL:      linkURL,
		Subtitle: n.Subtitle(title, rawURL),
	}
}

// hostLabel derives a human-readable title from a URL's host: strip a
// leading "www.", keep the part before the first dot, turn hyphens into
// spaces and title-case the result. Returns "" when the URL has no
// usable host.
func (n *Normalizer) hostLabel(rawURL string) string {
	key := hostKey(rawURL)
	if key == "" {
		return ""
	}
	return n.titleCase.String(strings.ReplaceAll(key, "-", " "))
}

// hostKey returns the lower-cased host of rawURL minus "www." and minus
// everything after the first dot, or "" when there is no host.
func hostKey(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if i := strings.Index(host, "."); i >= 0 {
		host = host[:i]
	}
	return host
}
