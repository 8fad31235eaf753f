// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "gist-hunter/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ScanConfig holds settings for one scan run.
type ScanConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxRequests is the maximum number of page requests per run (default 10).
	MaxRequests int `json:"max_requests" yaml:"max_requests"`

	// Cutoff is the minimum partial-ratio score for a content line to
	// count as a match (default 50). The batch scan and the ratelimit
	// grep historically used different cutoffs; each command carries its
	// own default rather than silently unifying them.
	Cutoff int `json:"cutoff" yaml:"cutoff"`

	// Verbose enables per-gist diagnostics for non-fatal failures.
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// WorkspaceConfig locates workspace databases on disk.
type WorkspaceConfig struct {
	// Dir is the directory holding <name>.db workspace files (default ".").
	Dir string `json:"dir" yaml:"dir"`

	// Name is the active workspace name.
	Name string `json:"name" yaml:"name"`
}

const (
	// DefaultScanCutoff is the content-match threshold for batch scans.
	DefaultScanCutoff = 50

	// DefaultGrepCutoff is the threshold for the single-term ratelimit
	// grep, matching the stricter ad-hoc tool it descends from.
	DefaultGrepCutoff = 80

	// MetadataCutoff is the metadata pre-filter threshold. Deliberately
	// permissive: the pre-filter must not produce false negatives ahead
	// of the expensive content fetch.
	MetadataCutoff = 50
)
