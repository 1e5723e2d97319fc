package models

// Profile represents the normalized link-in-bio data extracted from a
// saved profile page. It is produced once per run and not mutated after
// extraction.
type Profile struct {
	Username  string       `json:"username"`
	AvatarURL string       `json:"avatar_url,omitempty"`
	Socials   []SocialLink `json:"social_links,omitempty"`
	Links     []Link       `json:"links,omitempty"`
}

// Link is a display-ready outbound link. Title is never empty and URL is
// always present ("#" when the source record had no usable URL).
type Link struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Subtitle string `json:"subtitle,omitempty"`
}

// SocialLink is a display-ready social profile reference. Entries without
// a usable URL never make it into a Profile.
type SocialLink struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Icon returns the single-character glyph rendered for this social link.
func (s SocialLink) Icon() string {
	r := []rune(s.Type)
	if len(r) == 0 {
		return "?"
	}
	return string(r[0])
}
