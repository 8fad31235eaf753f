// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match scores gist metadata and content against search terms
// using partial-ratio fuzzy similarity in [0,100].
package match

import (
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/tnkrsec/gist-hunter/pkg/types"
)

// Metadata is the cheap pre-filter run before any content fetch. It
// concatenates the description and all filenames into one blob and
// reports whether any term scores at least MetadataCutoff against it.
// Adding terms can only widen the set of matching gists.
func Metadata(g types.Gist, terms []string) bool {
	parts := append([]string{g.Description}, g.Filenames()...)
	blob := strings.TrimSpace(strings.Join(parts, " "))
	if blob == "" {
		return false
	}
	for _, term := range terms {
		if term == "" {
			continue
		}
		if fuzzy.PartialRatio(term, blob) >= types.MetadataCutoff {
			return true
		}
	}
	return false
}

// Content runs a line-level fuzzy search of content against each term
// independently. Lines scoring at least cutoff are kept and ordered by
// descending score; equal scores keep document order. Terms with no
// qualifying line are omitted from the result.
func Content(content string, terms []string, cutoff int) types.TermMatches {
	if cutoff <= 0 {
		cutoff = types.DefaultScanCutoff
	}
	lines := strings.Split(content, "\n")

	result := types.TermMatches{}
	for _, term := range terms {
		if term == "" {
			continue
		}

		var matched []types.LineMatch
		for _, line := range lines {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if score := fuzzy.PartialRatio(term, line); score >= cutoff {
				matched = append(matched, types.LineMatch{Line: line, Score: score})
			}
		}
		if len(matched) == 0 {
			continue
		}

		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Score > matched[j].Score
		})
		result[term] = matched
	}
	return result
}
