// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ratelimit plans request pacing against the GitHub rate-limit
// budget. The crawl issues requests strictly sequentially at the planned
// interval and never retries, so the interval computed here is the whole
// rate-limit contract.
package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tnkrsec/gist-hunter/pkg/types"
)

// rateLimitURL is the GitHub rate-limit endpoint. Declared as a var so
// tests can substitute an httptest server.
var rateLimitURL = "https://api.github.com/rate_limit"

// minInterval is the floor for the per-request interval, avoiding
// degenerate high-frequency bursts near the reset deadline.
const minInterval = time.Second

// Budget is the remaining request allowance and its reset deadline.
type Budget struct {
	Remaining int
	ResetAt   time.Time
}

// Planner queries the rate-limit endpoint with the caller's credential.
type Planner struct {
	Client    *http.Client
	Token     string
	UserAgent string

	// URL overrides the rate-limit endpoint; empty means the GitHub API.
	URL string
}

// CurrentBudget fetches the current core rate-limit budget. Network and
// timeout failures wrap ErrUpstreamUnavailable; a non-200 status wraps
// ErrUpstreamError.
func (p *Planner) CurrentBudget(ctx context.Context) (Budget, error) {
	resp, err := p.get(ctx)
	if err != nil {
		return Budget{}, err
	}
	defer resp.Body.Close()

	var rlr rateLimitResponse
	if err := json.NewDecoder(resp.Body).Decode(&rlr); err != nil {
		return Budget{}, fmt.Errorf("parsing rate-limit response: %w", err)
	}

	return Budget{
		Remaining: rlr.Rate.Remaining,
		ResetAt:   time.Unix(rlr.Rate.Reset, 0),
	}, nil
}

// SafeInterval computes the per-request pacing interval that spreads
// planned requests evenly across the remaining budget window, with a
// one-second floor. It fails with ErrBudgetExhausted when nothing
// remains and ErrInsufficientBudget when planned exceeds the remaining
// allowance; both must stop the crawl before any page request is issued.
func SafeInterval(b Budget, planned int, now time.Time) (time.Duration, error) {
	if b.Remaining == 0 {
		return 0, fmt.Errorf("0 requests remaining until %s: %w",
			b.ResetAt.Format(time.RFC3339), types.ErrBudgetExhausted)
	}
	if planned > b.Remaining {
		return 0, fmt.Errorf("planned %d requests but only %d remaining: %w",
			planned, b.Remaining, types.ErrInsufficientBudget)
	}

	interval := b.ResetAt.Sub(now) / time.Duration(b.Remaining)
	if interval < minInterval {
		interval = minInterval
	}
	return interval, nil
}

// Raw returns the rate-limit response body verbatim, for the ad-hoc
// fuzzy grep in the ratelimit command. Same error classification as
// CurrentBudget.
func (p *Planner) Raw(ctx context.Context) (string, error) {
	resp, err := p.get(ctx)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading rate-limit response: %w", err)
	}
	return string(body), nil
}

// get issues the rate-limit GET and classifies transport and status
// failures. Callers own the response body on success.
func (p *Planner) get(ctx context.Context) (*http.Response, error) {
	endpoint := p.URL
	if endpoint == "" {
		endpoint = rateLimitURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating rate-limit request: %w", err)
	}
	req.Header.Set("Authorization", "token "+p.Token)
	if p.UserAgent != "" {
		req.Header.Set("User-Agent", p.UserAgent)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rate-limit request: %v: %w", err, types.ErrUpstreamUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("rate-limit endpoint returned HTTP %d: %w", resp.StatusCode, types.ErrUpstreamError)
	}
	return resp, nil
}

// GitHub rate-limit JSON structure. Only the legacy top-level "rate"
// object is read; it mirrors resources.core.
type rateLimitResponse struct {
	Rate struct {
		Remaining int   `json:"remaining"`
		Reset     int64 `json:"reset"`
	} `json:"rate"`
}
