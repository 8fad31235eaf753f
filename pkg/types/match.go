// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// LineMatch is one content line that scored at or above the cutoff for a
// search term.
type LineMatch struct {
	Line  string `json:"line" yaml:"line"`
	Score int    `json:"score" yaml:"score"`
}

// TermMatches maps a search term to its matched lines, ordered by
// descending score. Terms with no qualifying line are absent.
type TermMatches map[string][]LineMatch

// MatchResult is the persisted outcome for one gist: its URL and the
// per-term matched lines.
type MatchResult struct {
	URL   string      `json:"url" yaml:"url"`
	Terms TermMatches `json:"terms" yaml:"terms"`
}
