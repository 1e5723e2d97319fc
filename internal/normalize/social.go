package normalize

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/biopage/biopage/pkg/models"
)

// Socials converts raw social-link entries, preserving order. Entries that
// are not objects or that lack a usable url are dropped; these are sparse,
// optional records, so dropped entries only rate a debug line.
func (n *Normalizer) Socials(entries []json.RawMessage) []models.SocialLink {
	out := make([]models.SocialLink, 0, len(entries))

	for i, raw := range entries {
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
			log.Debug().
				Int("position", i).
				Str("kind", jsonKind(raw)).
				Msg("Dropping social link: not an object")
			continue
		}

		linkURL := stringField(fields, "url")
		if linkURL == "" {
			log.Debug().Int("position", i).Msg("Dropping social link: no usable url")
			continue
		}

		linkType := strings.ToUpper(stringField(fields, "type"))
		if linkType == "" {
			linkType = PlaceholderSocialType
		}

		out = append(out, models.SocialLink{
			Type: linkType,
			URL:  linkURL,
		})
	}

	return out
}
