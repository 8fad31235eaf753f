// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gists walks the GitHub public-gists stream page by page,
// following the Link header's opaque next-page cursor.
package gists

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tnkrsec/gist-hunter/pkg/types"
)

// publicGistsURL is the first page of the public gists stream. Declared
// as a var so tests can substitute an httptest server.
var publicGistsURL = "https://api.github.com/gists/public"

// Client issues authenticated page requests.
type Client struct {
	HTTPClient *http.Client
	Token      string
	UserAgent  string

	// BaseURL overrides the stream head; empty means the GitHub API.
	BaseURL string
}

// FetchPage retrieves one page of gists. It returns the page's records
// and the next-page URL, which is empty when the stream is exhausted.
// Network and timeout failures wrap ErrUpstreamUnavailable; a non-200
// status wraps ErrUpstreamError. Neither is retried.
func (c *Client) FetchPage(ctx context.Context, pageURL string) ([]types.Gist, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating page request: %w", err)
	}
	req.Header.Set("Authorization", "token "+c.Token)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("page request: %v: %w", err, types.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, "", fmt.Errorf("gists endpoint returned HTTP %d: %w", resp.StatusCode, types.ErrUpstreamError)
	}

	var page []types.Gist
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, "", fmt.Errorf("parsing gists page: %w", err)
	}

	return page, nextPageURL(resp.Header.Get("Link")), nil
}

// Walk issues up to maxRequests page requests, sleeping interval between
// consecutive requests (never before the first), and passes every record
// to visit eagerly, page by page. It stops at maxRequests, at stream
// exhaustion (no next cursor), on the first transport or status failure,
// or when visit returns an error. The page count is returned either way.
// The cursor lives only for the duration of one Walk; a fresh call
// restarts from the head of the stream.
func (c *Client) Walk(ctx context.Context, maxRequests int, interval time.Duration, visit func(types.Gist) error) (int, error) {
	pages := 0
	pageURL := c.BaseURL
	if pageURL == "" {
		pageURL = publicGistsURL
	}

	for i := 0; i < maxRequests && pageURL != ""; i++ {
		if i > 0 {
			if err := sleep(ctx, interval); err != nil {
				return pages, err
			}
		}

		page, next, err := c.FetchPage(ctx, pageURL)
		if err != nil {
			return pages, err
		}
		pages++

		for _, g := range page {
			if err := visit(g); err != nil {
				return pages, err
			}
		}

		pageURL = next
	}

	return pages, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// nextPageURL extracts the rel="next" target from a Link header, e.g.
// <https://api.github.com/gists/public?page=2>; rel="next", <...>; rel="last".
// It returns "" when the header is absent or carries no next relation.
func nextPageURL(header string) string {
	for _, part := range strings.Split(header, ",") {
		segments := strings.Split(part, ";")
		if len(segments) < 2 {
			continue
		}
		target := strings.TrimSpace(segments[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}
		for _, param := range segments[1:] {
			if strings.TrimSpace(param) == `rel="next"` {
				return strings.Trim(target, "<>")
			}
		}
	}
	return ""
}
