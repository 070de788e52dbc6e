package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/modforge/launchmeta/internal/branding"
	"github.com/modforge/launchmeta/internal/utils/logger"
)

const (
	// maxAttempts is the fixed retry budget for one target. Every transient
	// failure (transport error, body-read error, digest mismatch) consumes
	// one attempt; there is no delay between attempts.
	maxAttempts = 4

	requestTimeout  = 15 * time.Second
	keepalivePeriod = 10 * time.Second
)

// Client fetches metadata documents over HTTP with retry and checksum
// validation. A Client is safe for concurrent use; any number of fetches may
// be in flight at once.
type Client struct {
	httpClient *http.Client
}

// NewClient builds a Client with the fixed keepalive and timeout settings.
func NewClient() *Client {
	dialer := &net.Dialer{
		Timeout:   requestTimeout,
		KeepAlive: keepalivePeriod,
	}
	transport := &http.Transport{
		DialContext:       dialer.DialContext,
		ForceAttemptHTTP2: true,
	}
	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   requestTimeout,
		},
	}
}

// Fetch downloads url, retrying transient failures up to the attempt budget.
// When sha1sum is non-empty the body is verified against it and a mismatch
// counts as a transient failure. The first attempt that yields a valid body
// returns immediately. Cancelling ctx aborts the whole operation.
func (c *Client) Fetch(ctx context.Context, url string, sha1sum string) ([]byte, error) {
	log := logger.Logger()

	for attempt := 1; ; attempt++ {
		body, err := c.get(ctx, url)
		if err != nil {
			if attempt < maxAttempts && ctx.Err() == nil {
				log.Debugf("fetch %s attempt %d failed: %v", url, attempt, err)
				continue
			}
			return nil, &RequestError{URL: url, Err: err}
		}

		if sha1sum != "" {
			sum, err := Checksum(ctx, body)
			if err != nil {
				return nil, err
			}
			if sum != sha1sum {
				if attempt < maxAttempts {
					log.Debugf("fetch %s attempt %d checksum mismatch: want %s got %s", url, attempt, sha1sum, sum)
					continue
				}
				return nil, &ChecksumError{Hash: sha1sum, URL: url, Tries: attempt}
			}
		}

		return body, nil
	}
}

// FetchMirrors tries the relative path against each mirror prefix in order,
// running the full retry policy of Fetch per mirror, and returns the first
// success. The mirror prefix is concatenated with path as-is; callers supply
// any separators. The last mirror's error is returned when all fail.
func (c *Client) FetchMirrors(ctx context.Context, path string, mirrors []string, sha1sum string) ([]byte, error) {
	if len(mirrors) == 0 {
		return nil, &ConfigError{Message: "no mirrors provided"}
	}

	log := logger.Logger()
	last := len(mirrors) - 1
	for _, mirror := range mirrors[:last] {
		data, err := c.Fetch(ctx, mirror+path, sha1sum)
		if err == nil {
			return data, nil
		}
		log.Debugf("mirror %s failed for %s: %v", mirror, path, err)
	}

	return c.Fetch(ctx, mirrors[last]+path, sha1sum)
}

// get performs one GET attempt and reads the full body. Any failure,
// including a non-success status, is transient from the caller's view.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	// Read per request so a client built before branding was set still
	// sends the final identification header.
	req.Header.Set("User-Agent", branding.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused for the retry.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return body, nil
}
