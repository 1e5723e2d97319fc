// Package render turns a normalized profile into the static site files:
// one HTML page and one stylesheet, written to the output directory.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/CloudyKit/jet/v6"
	"github.com/rs/zerolog/log"

	"github.com/biopage/biopage/internal/fetch"
	"github.com/biopage/biopage/pkg/models"
)

// Fixed output filenames; index.html references the stylesheet and the
// avatar image by these relative names.
const (
	IndexFilename = "index.html"
	StyleFilename = "style.css"
)

//go:embed assets/index.jet assets/style.css
var assets embed.FS

// Site carries the page-level presentation settings that do not come from
// the scraped payload.
type Site struct {
	Title    string
	Tagline  string
	Location string
	Role     string
}

// pageContext is the data handed to the page template.
type pageContext struct {
	Title      string
	Site       Site
	Profile    *models.Profile
	HasAvatar  bool
	AvatarFile string
}

// Renderer holds the parsed template set.
type Renderer struct {
	views *jet.Set
}

// New loads the embedded page template into an in-memory template set.
func New() (*Renderer, error) {
	src, err := assets.ReadFile("assets/index.jet")
	if err != nil {
		return nil, fmt.Errorf("failed to load page template: %w", err)
	}

	loader := jet.NewInMemLoader()
	loader.Set("/index.jet", string(src))

	return &Renderer{views: jet.NewSet(loader)}, nil
}

// WriteSite renders the page for profile and writes index.html and
// style.css into outputDir, creating it if needed. hasAvatar controls
// whether the page references the avatar image file.
func (r *Renderer) WriteSite(profile *models.Profile, site Site, outputDir string, hasAvatar bool) error {
	if profile == nil {
		return fmt.Errorf("profile is required")
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	page, err := r.renderIndex(profile, site, hasAvatar)
	if err != nil {
		return err
	}

	indexPath := filepath.Join(outputDir, IndexFilename)
	if err := os.WriteFile(indexPath, page, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", IndexFilename, err)
	}

	style, err := assets.ReadFile("assets/style.css")
	if err != nil {
		return fmt.Errorf("failed to load stylesheet: %w", err)
	}
	stylePath := filepath.Join(outputDir, StyleFilename)
	if err := os.WriteFile(stylePath, style, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", StyleFilename, err)
	}

	log.Debug().
		Str("index", indexPath).
		Str("style", stylePath).
		Int("links", len(profile.Links)).
		Msg("Site files written")

	return nil
}

func (r *Renderer) renderIndex(profile *models.Profile, site Site, hasAvatar bool) ([]byte, error) {
	t, err := r.views.GetTemplate("/index.jet")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	title := site.Title
	if title == "" {
		title = "@" + profile.Username
	}

	ctx := pageContext{
		Title:      title,
		Site:       site,
		Profile:    profile,
		HasAvatar:  hasAvatar,
		AvatarFile: fetch.AvatarFilename,
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, nil, ctx); err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}
	return buf.Bytes(), nil
}
