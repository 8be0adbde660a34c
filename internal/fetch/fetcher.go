// Package fetch downloads scene images and audio tracks over HTTP.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"reelsmith/internal/config"
	"reelsmith/internal/services"
)

const userAgent = "reelsmith/0.1.0"

// Fetcher downloads remote media into the job workspace. Bodies are streamed
// to disk in bounded chunks; a fixed timeout covers the whole transfer.
type Fetcher struct {
	client     *http.Client
	chunkBytes int
}

// New builds a Fetcher from configuration.
func New(cfg *config.Config) *Fetcher {
	timeout := 60 * time.Second
	chunk := 64 * 1024
	if cfg != nil {
		if cfg.Fetch.TimeoutSeconds > 0 {
			timeout = time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second
		}
		if cfg.Fetch.ChunkBytes > 0 {
			chunk = cfg.Fetch.ChunkBytes
		}
	}
	return &Fetcher{
		client:     &http.Client{Timeout: timeout},
		chunkBytes: chunk,
	}
}

// Fetch retrieves url into destPath, truncating any existing file. It returns
// destPath on success. Failures are classified as fetch errors; the caller
// decides whether they are fatal to the job.
func (f *Fetcher) Fetch(ctx context.Context, url, destPath string) (string, error) {
	if url == "" {
		return "", services.Wrap(services.ErrFetch, "fetch", "", "url required", nil)
	}
	if destPath == "" {
		return "", services.Wrap(services.ErrFetch, "fetch", "", "destination path required", nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", services.Wrap(services.ErrFetch, "fetch", "build request", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrFetch, "fetch", "request", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", services.Wrap(services.ErrFetch, "fetch", "response",
			fmt.Sprintf("%s returned %s", url, resp.Status), nil)
	}

	out, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", services.Wrap(services.ErrFetch, "fetch", "open destination", destPath, err)
	}

	buf := make([]byte, f.chunkBytes)
	_, copyErr := io.CopyBuffer(out, resp.Body, buf)
	closeErr := out.Close()
	if copyErr != nil {
		_ = os.Remove(destPath)
		return "", services.Wrap(services.ErrFetch, "fetch", "stream body", url, copyErr)
	}
	if closeErr != nil {
		_ = os.Remove(destPath)
		return "", services.Wrap(services.ErrFetch, "fetch", "close destination", destPath, closeErr)
	}

	return destPath, nil
}

// IsFetchError reports whether err was produced by a Fetcher.
func IsFetchError(err error) bool {
	return errors.Is(err, services.ErrFetch)
}
