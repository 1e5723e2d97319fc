// Package fetch retrieves the profile avatar with a single best-effort
// HTTP request. A failed fetch degrades the run, it never aborts it.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// AvatarFilename is the fixed name the image is stored under, matching
// the reference in the rendered page.
const AvatarFilename = "profile_picture.jpg"

// Result reports the outcome of an avatar fetch.
type Result struct {
	URL      string
	FilePath string
	Size     int64
	Success  bool
	Error    error
	Duration time.Duration
}

// Fetcher downloads a single remote image with streaming I/O.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// New creates a Fetcher. The timeout bounds the whole request so the run
// cannot hang on a stalled connection.
func New(timeout time.Duration, userAgent string) *Fetcher {
	if userAgent == "" {
		userAgent = "Biopage/1.0 (https://github.com/biopage/biopage)"
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 30 * time.Second,
			},
		},
		userAgent: userAgent,
	}
}

// CloseIdleConnections releases pooled connections held by the client.
func (f *Fetcher) CloseIdleConnections() {
	f.client.CloseIdleConnections()
}

// Avatar downloads imageURL into outputDir under AvatarFilename. All
// failures are reported through the Result; callers decide whether to
// continue, and this pipeline always does.
func (f *Fetcher) Avatar(ctx context.Context, imageURL, outputDir string) *Result {
	start := time.Now()
	result := &Result{URL: imageURL}

	fail := func(err error) *Result {
		result.Error = err
		result.Duration = time.Since(start)
		return result
	}

	u, err := url.Parse(imageURL)
	if err != nil {
		return fail(fmt.Errorf("invalid avatar URL: %w", err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fail(fmt.Errorf("invalid avatar URL scheme: %q", u.Scheme))
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fail(fmt.Errorf("failed to create output directory: %w", err))
	}
	filePath := filepath.Join(outputDir, AvatarFilename)
	result.FilePath = filePath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return fail(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "image/*,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return fail(fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fail(fmt.Errorf("bad status: %d %s", resp.StatusCode, resp.Status))
	}

	outFile, err := os.Create(filePath)
	if err != nil {
		return fail(fmt.Errorf("failed to create file: %w", err))
	}
	defer outFile.Close()

	bytesWritten, err := io.Copy(outFile, resp.Body)
	if err != nil {
		os.Remove(filePath)
		return fail(fmt.Errorf("failed to write file: %w", err))
	}

	result.Size = bytesWritten
	result.Success = true
	result.Duration = time.Since(start)

	log.Debug().
		Str("url", imageURL).
		Str("file", filePath).
		Int64("bytes", bytesWritten).
		Dur("duration", result.Duration).
		Msg("Avatar download completed")

	return result
}
