package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/biopage/biopage/internal/config"
	"github.com/biopage/biopage/internal/fetch"
	"github.com/biopage/biopage/internal/render"
)

func writeInput(t *testing.T, payload string) string {
	t.Helper()
	doc := `<!DOCTYPE html><html><head><title>saved</title></head><body>
		<script id="__NEXT_DATA__" type="application/json">` + payload + `</script>
	</body></html>`

	path := filepath.Join(t.TempDir(), "saved.html")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}
	return path
}

func newTestApp(t *testing.T, cfg *config.Config) *Application {
	t.Helper()
	cfg.LogLevel = "error"
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = config.DefaultHTTPTimeout
	}
	application, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("app.New failed: %v", err)
	}
	t.Cleanup(func() { application.Close(context.Background()) })
	return application
}

func TestRun_RoundTrip(t *testing.T) {
	avatarServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("fake jpeg"))
	}))
	defer avatarServer.Close()

	payload := `{"props":{"pageProps":{
		"account":{"username":"alice","profilePictureUrl":"` + avatarServer.URL + `/img.jpg"},
		"socialLinks":[{"type":"twitter","url":"http://t"}],
		"links":[
			{"title":"Kaggle","url":"http://kaggle.com/alice"},
			{"url":"http://example.org/thing"},
			"not-a-mapping"
		]}}}`

	inputPath := writeInput(t, payload)
	outDir := filepath.Join(t.TempDir(), "public")
	application := newTestApp(t, &config.Config{OutputDir: outDir})

	summary, err := application.Run(context.Background(), inputPath)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Username != "alice" {
		t.Errorf("Username = %q, want %q", summary.Username, "alice")
	}
	if summary.Links != 2 {
		t.Errorf("Links = %d, want 2", summary.Links)
	}
	if summary.SkippedLinks != 1 {
		t.Errorf("SkippedLinks = %d, want 1", summary.SkippedLinks)
	}
	if summary.SocialLinks != 1 {
		t.Errorf("SocialLinks = %d, want 1", summary.SocialLinks)
	}
	if !summary.AvatarSaved {
		t.Error("expected avatar to be saved")
	}

	// All three artifacts exist.
	for _, name := range []string{render.IndexFilename, render.StyleFilename, fetch.AvatarFilename} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing output file %s: %v", name, err)
		}
	}

	page, err := os.ReadFile(filepath.Join(outDir, render.IndexFilename))
	if err != nil {
		t.Fatalf("failed to read index.html: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(page)))
	if err != nil {
		t.Fatalf("failed to parse index.html: %v", err)
	}

	cards := doc.Find("a.link-card")
	if cards.Length() != 2 {
		t.Fatalf("link cards = %d, want 2", cards.Length())
	}
	second := cards.Eq(1)
	if got := second.Find(".link-title").Text(); got != "Example" {
		t.Errorf("second link title = %q, want %q", got, "Example")
	}
	if got := second.Find(".link-subtitle").Text(); got != "Visit Example" {
		t.Errorf("second link subtitle = %q, want %q", got, "Visit Example")
	}
}

func TestRun_AvatarFailureDegrades(t *testing.T) {
	avatarServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer avatarServer.Close()

	payload := `{"props":{"pageProps":{
		"account":{"username":"bob","profilePictureUrl":"` + avatarServer.URL + `/img.jpg"},
		"socialLinks":[],
		"links":[{"title":"Site","url":"http://example.com"}]}}}`

	outDir := filepath.Join(t.TempDir(), "public")
	application := newTestApp(t, &config.Config{OutputDir: outDir})

	summary, err := application.Run(context.Background(), writeInput(t, payload))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.AvatarSaved {
		t.Error("avatar should not be marked saved")
	}

	// Site files are still produced.
	if _, err := os.Stat(filepath.Join(outDir, render.IndexFilename)); err != nil {
		t.Errorf("index.html missing after avatar failure: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, fetch.AvatarFilename)); err == nil {
		t.Error("avatar file should not exist")
	}
}

func TestRun_NoAvatarFlag(t *testing.T) {
	payload := `{"props":{"pageProps":{
		"account":{"username":"bob","profilePictureUrl":"http://127.0.0.1:1/img.jpg"},
		"socialLinks":[],
		"links":[]}}}`

	outDir := filepath.Join(t.TempDir(), "public")
	application := newTestApp(t, &config.Config{OutputDir: outDir, NoAvatar: true})

	summary, err := application.Run(context.Background(), writeInput(t, payload))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.AvatarSaved {
		t.Error("avatar fetch should have been skipped")
	}
}

func TestRun_UsernamePlaceholder(t *testing.T) {
	payload := `{"props":{"pageProps":{
		"account":{},
		"socialLinks":[],
		"links":[]}}}`

	outDir := filepath.Join(t.TempDir(), "public")
	application := newTestApp(t, &config.Config{OutputDir: outDir, NoAvatar: true})

	summary, err := application.Run(context.Background(), writeInput(t, payload))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Username != UsernamePlaceholder {
		t.Errorf("Username = %q, want placeholder %q", summary.Username, UsernamePlaceholder)
	}
}

func TestRun_ExtractionFailureWritesNothing(t *testing.T) {
	cases := []struct {
		name     string
		document string
	}{
		{"missing block", `<html><body><p>no payload here</p></body></html>`},
		{"malformed json", `<html><body><script id="__NEXT_DATA__">{broken</script></body></html>`},
		{"bad shape", `<html><body><script id="__NEXT_DATA__">{"props":{}}</script></body></html>`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inputPath := filepath.Join(t.TempDir(), "saved.html")
			if err := os.WriteFile(inputPath, []byte(tc.document), 0o644); err != nil {
				t.Fatalf("failed to write input: %v", err)
			}

			outDir := filepath.Join(t.TempDir(), "public")
			application := newTestApp(t, &config.Config{OutputDir: outDir, NoAvatar: true})

			if _, err := application.Run(context.Background(), inputPath); err == nil {
				t.Fatal("expected extraction error")
			}
			if _, err := os.Stat(outDir); !os.IsNotExist(err) {
				t.Errorf("output directory should not exist after extraction failure")
			}
		})
	}
}

func TestRun_MissingInputFile(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "public")
	application := newTestApp(t, &config.Config{OutputDir: outDir, NoAvatar: true})

	if _, err := application.Run(context.Background(), filepath.Join(t.TempDir(), "nope.html")); err == nil {
		t.Fatal("expected error for unreadable input")
	}
}
