// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Error taxonomy for the crawl. Stages wrap these sentinels with
// fmt.Errorf("...: %w", ...) and callers classify with errors.Is; only
// the command layer turns them into process exit status.
var (
	// ErrMissingCredential means no GitHub token could be resolved.
	// Fatal at startup, never retried.
	ErrMissingCredential = errors.New("missing GitHub credential")

	// ErrUpstreamUnavailable is a network or timeout failure talking to
	// the GitHub API. Not retried within a run; the run halts.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrUpstreamError is a non-success HTTP status from the GitHub API.
	// Fatal for the current request; halts pagination.
	ErrUpstreamError = errors.New("upstream error")

	// ErrBudgetExhausted means the rate-limit budget has zero remaining
	// requests. Fatal before any page request is issued.
	ErrBudgetExhausted = errors.New("rate-limit budget exhausted")

	// ErrInsufficientBudget means the planned request count exceeds the
	// remaining budget. Fatal before any page request is issued.
	ErrInsufficientBudget = errors.New("insufficient rate-limit budget")

	// ErrContentUnavailable means a gist's content could not be fetched
	// or extracted. Per-record and non-fatal: the record counts as no
	// match and the crawl continues.
	ErrContentUnavailable = errors.New("content unavailable")
)
