package update

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Downloader streams release assets to local files.
type Downloader struct {
	client    *http.Client
	userAgent string
}

// NewDownloader creates a Downloader. The timeout covers the whole transfer,
// sized for a full binary over a slow link.
func NewDownloader() *Downloader {
	return &Downloader{
		client: &http.Client{
			Timeout: 5 * time.Minute,
		},
		userAgent: toolName + "-updater",
	}
}

// Download streams the response body for url into dst. A non-success status
// fails before any bytes are written; a failed transfer removes the partial
// file rather than leaving a truncated download behind.
func (d *Downloader) Download(ctx context.Context, url, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &HTTPStatusError{URL: url, StatusCode: resp.StatusCode}
	}

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("writing %s: %w", dst, err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("closing %s: %w", dst, err)
	}

	return nil
}
