package binary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 5 * time.Minute
	// DefaultUserAgent is the User-Agent header sent with requests
	DefaultUserAgent = "setup-typst/1.0"
)

// Downloader performs single-attempt HTTP downloads to the scratch directory.
// There is deliberately no retry loop here: the acquirer's candidate-target
// fallback is the recovery mechanism for download failures.
type Downloader struct {
	client    *http.Client
	userAgent string
}

// NewDownloader creates a new downloader.
func NewDownloader(client *http.Client) *Downloader {
	if client == nil {
		client = &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Release assets redirect to object storage; cap the hops.
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		}
	}
	return &Downloader{
		client:    client,
		userAgent: DefaultUserAgent,
	}
}

// DownloadToFile downloads a URL to destPath. It fails on any non-OK status
// and on an empty response body; a zero-byte artifact is as useless as a
// missing one.
func (d *Downloader) DownloadToFile(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	out, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create dest file: %w", err)
	}

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		out.Close()
		os.Remove(destPath)
		return fmt.Errorf("write dest file: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close dest file: %w", err)
	}

	if written == 0 {
		os.Remove(destPath)
		return fmt.Errorf("downloaded artifact is empty")
	}

	return nil
}
