package normalize

import "strings"

// DefaultSubtitles is the built-in override table mapping a known service
// (by lower-cased title or by URL host) to a fixed subtitle.
func DefaultSubtitles() map[string]string {
	return map[string]string{
		"github":    "Open source projects and code",
		"gitlab":    "Open source projects and code",
		"kaggle":    "Data science notebooks and competitions",
		"last.fm":   "Music scrobbles and listening history",
		"spotify":   "Playlists and favorite tracks",
		"youtube":   "Video channel",
		"twitch":    "Live streams",
		"instagram": "Photos and stories",
		"linkedin":  "Professional profile",
		"medium":    "Essays and write-ups",
		"substack":  "Newsletter",
		"goodreads": "Reading list and reviews",
	}
}

// Subtitle picks the override matching the display title, then the one
// matching the URL's host, and otherwise falls back to a generic line.
// It is total: no input can make it fail.
func (n *Normalizer) Subtitle(displayTitle, rawURL string) string {
	if v, ok := n.subtitles[strings.ToLower(strings.TrimSpace(displayTitle))]; ok {
		return v
	}
	if key := hostKey(rawURL); key != "" {
		if v, ok := n.subtitles[key]; ok {
			return v
		}
	}
	return "Visit " + displayTitle
}
