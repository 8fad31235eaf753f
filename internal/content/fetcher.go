// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package content fetches a gist's HTML page and extracts the rendered
// code blocks as plain text.
package content

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tnkrsec/gist-hunter/pkg/types"
)

// codeBlockSelector matches the rendered file contents on a gist page.
const codeBlockSelector = ".file .highlight pre"

// Fetcher retrieves gist pages. Content requests are unauthenticated;
// the bounded timeout lives on the HTTP client.
type Fetcher struct {
	Client    *http.Client
	UserAgent string
}

// Fetch GETs the gist page and returns the text of its code blocks in
// document order, newline-joined. Timeouts, non-200 statuses, pages with
// no code blocks, and whitespace-only extractions all wrap
// ErrContentUnavailable: absence, not failure. The crawl treats it as
// "no match for this record" and moves on.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating content request: %w", err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %v: %w", url, err, types.ErrContentUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: HTTP %d: %w", url, resp.StatusCode, types.ErrContentUnavailable)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %v: %w", url, err, types.ErrContentUnavailable)
	}

	text := extractCodeBlocks(doc)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no extractable content at %s: %w", url, types.ErrContentUnavailable)
	}
	return text, nil
}

func extractCodeBlocks(doc *goquery.Document) string {
	var blocks []string
	doc.Find(codeBlockSelector).Each(func(_ int, sel *goquery.Selection) {
		blocks = append(blocks, sel.Text())
	})
	return strings.Join(blocks, "\n")
}
