package app

import (
	"context"
	"fmt"
	"os"

	"github.com/biopage/biopage/internal/extract"
	"github.com/biopage/biopage/pkg/models"
)

// UsernamePlaceholder is used when the payload's account carries no
// username.
const UsernamePlaceholder = "profile"

// Summary reports what a run produced.
type Summary struct {
	Username     string
	Links        int
	SkippedLinks int
	SocialLinks  int
	AvatarSaved  bool
	OutputDir    string
}

// Run executes the whole build: read the saved page, extract and
// normalize the profile, fetch the avatar best-effort, and write the
// site files. Extraction and rendering errors abort the run; per-entry
// normalization problems and avatar failures only degrade it.
func (a *Application) Run(ctx context.Context, inputPath string) (*Summary, error) {
	document, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	raw, err := extract.Profile(string(document))
	if err != nil {
		return nil, err
	}

	username := raw.Username
	if username == "" {
		a.Logger.Warn().Msg("Payload has no username, using placeholder")
		username = UsernamePlaceholder
	}

	links, skipped := a.Normalizer.Links(raw.Links)
	socials := a.Normalizer.Socials(raw.Socials)

	profile := &models.Profile{
		Username:  username,
		AvatarURL: raw.AvatarURL,
		Socials:   socials,
		Links:     links,
	}

	hasAvatar := false
	switch {
	case a.Config.NoAvatar:
		a.Logger.Debug().Msg("Avatar fetch disabled")
	case raw.AvatarURL == "":
		a.Logger.Warn().Msg("Payload has no avatar URL, continuing without image")
	default:
		result := a.Fetcher.Avatar(ctx, raw.AvatarURL, a.Config.OutputDir)
		if result.Success {
			hasAvatar = true
		} else {
			a.Logger.Warn().
				Err(result.Error).
				Str("url", raw.AvatarURL).
				Msg("Avatar fetch failed, continuing without image")
		}
	}

	if err := a.Renderer.WriteSite(profile, a.Config.Site, a.Config.OutputDir, hasAvatar); err != nil {
		return nil, err
	}

	summary := &Summary{
		Username:     username,
		Links:        len(links),
		SkippedLinks: skipped,
		SocialLinks:  len(socials),
		AvatarSaved:  hasAvatar,
		OutputDir:    a.Config.OutputDir,
	}

	a.Logger.Info().
		Str("username", summary.Username).
		Int("links", summary.Links).
		Int("skipped_links", summary.SkippedLinks).
		Int("social_links", summary.SocialLinks).
		Bool("avatar", summary.AvatarSaved).
		Str("output_dir", summary.OutputDir).
		Msg("Build completed")

	return summary, nil
}
