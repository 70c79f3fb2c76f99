// Package fetcher downloads snapshot tarballs over plain HTTPS GET.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/hulla/gittar/internal/utils"
)

// Client wraps an http.Client for tarball downloads. Payloads are staged to a
// scratch file so extraction never reads the network directly; callers own
// removal of the staged file.
type Client struct {
	httpClient *http.Client
	retrier    *Retrier
	logger     *utils.Logger
	progress   bool
}

// Options contains options for creating a Client
type Options struct {
	HTTPClient *http.Client
	Logger     *utils.Logger
	MaxRetries int  // 0 disables retries
	Progress   bool // render a download progress bar
}

// Download describes a completed request. Path is empty for non-2xx
// responses.
type Download struct {
	StatusCode int
	Path       string
	Size       int64
}

// New creates a Client
func New(opts Options) *Client {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	var retrier *Retrier
	if opts.MaxRetries > 0 {
		retrier = NewRetrier(RetrierOptions{MaxRetries: opts.MaxRetries})
	}

	return &Client{
		httpClient: client,
		retrier:    retrier,
		logger:     opts.Logger,
		progress:   opts.Progress,
	}
}

// Get issues a GET for url and stages a 2xx payload to a temp file. A non-2xx
// status is reported in the result, not as an error; only transport-level
// failures return an error. When retries are enabled, transport failures and
// transient statuses (429, 502-504) are re-attempted with exponential
// backoff; 404 never is.
func (c *Client) Get(ctx context.Context, url string) (*Download, error) {
	if c.retrier == nil {
		return c.get(ctx, url)
	}

	var dl *Download
	var lastErr error
	err := c.retrier.Retry(ctx, func() error {
		dl, lastErr = nil, nil
		d, err := c.get(ctx, url)
		if err != nil {
			lastErr = err
			return err
		}
		dl = d
		if ShouldRetryStatus(d.StatusCode) {
			return fmt.Errorf("retryable status %d for %s", d.StatusCode, url)
		}
		return nil
	})
	if err != nil {
		// Exhausted retries on a retryable status: surface the final
		// response so the caller sees the status code.
		if dl != nil {
			return dl, nil
		}
		return nil, lastErr
	}
	return dl, nil
}

func (c *Client) get(ctx context.Context, url string) (*Download, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download request failed: %w", err)
	}
	defer resp.Body.Close()

	if c.logger != nil {
		c.logger.Debug().Str("url", url).Int("status", resp.StatusCode).Msg("Tarball request")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Download{StatusCode: resp.StatusCode}, nil
	}

	path, size, err := c.stage(resp)
	if err != nil {
		return nil, err
	}

	return &Download{StatusCode: resp.StatusCode, Path: path, Size: size}, nil
}

func (c *Client) stage(resp *http.Response) (string, int64, error) {
	tmp, err := os.CreateTemp("", "gittar-*.tar.gz")
	if err != nil {
		return "", 0, err
	}

	var dst io.Writer = tmp
	if c.progress {
		bar := utils.NewProgressBar(resp.ContentLength, utils.DescDownloading)
		dst = io.MultiWriter(tmp, bar)
	}

	size, err := io.Copy(dst, resp.Body)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", 0, fmt.Errorf("staging download failed: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", 0, err
	}

	return tmp.Name(), size, nil
}
