// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workspace

import (
	"context"
	"fmt"
	"io"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/tnkrsec/gist-hunter/pkg/types"
)

// Sink accumulates one run's match results in memory and writes them to
// the workspace in a single transaction at run end.
type Sink struct {
	ws      *Workspace
	order   []string
	results map[string]types.TermMatches
}

// NewSink returns an empty sink bound to the workspace.
func NewSink(ws *Workspace) *Sink {
	return &Sink{ws: ws, results: make(map[string]types.TermMatches)}
}

// Record stores the term matches for a gist URL. Recording the same URL
// again within a run replaces the earlier entry.
func (s *Sink) Record(url string, terms types.TermMatches) {
	if len(terms) == 0 {
		return
	}
	if _, seen := s.results[url]; !seen {
		s.order = append(s.order, url)
	}
	s.results[url] = terms
}

// Len returns the number of gists with recorded matches.
func (s *Sink) Len() int {
	return len(s.results)
}

// Flush writes every accumulated result in one transaction and returns
// the number of gists persisted. With nothing accumulated it performs no
// write at all and returns zero; the caller reports that, it is not an
// error. Matches for a URL recorded in an earlier run are replaced.
func (s *Sink) Flush(ctx context.Context) (int, error) {
	if len(s.results) == 0 {
		return 0, nil
	}

	tx, err := s.ws.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning flush transaction: %w", err)
	}
	defer tx.Rollback()

	for _, url := range s.order {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO gists (url) VALUES (?)`, url,
		); err != nil {
			return 0, fmt.Errorf("inserting gist %s: %w", url, err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM matches WHERE gist_url = ?`, url,
		); err != nil {
			return 0, fmt.Errorf("clearing stale matches for %s: %w", url, err)
		}

		terms := s.results[url]
		for _, term := range sortedTerms(terms) {
			for rank, lm := range terms[term] {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO matches (gist_url, term, line, score, rank) VALUES (?, ?, ?, ?, ?)`,
					url, term, lm.Line, lm.Score, rank,
				); err != nil {
					return 0, fmt.Errorf("inserting match for %s: %w", url, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing flush: %w", err)
	}
	return len(s.results), nil
}

// Matches reads back every persisted result, grouped by gist URL with
// lines in stored rank order.
func (w *Workspace) Matches(ctx context.Context) ([]types.MatchResult, error) {
	rows, err := w.db.QueryContext(ctx,
		`SELECT gist_url, term, line, score FROM matches ORDER BY gist_url, term, rank`)
	if err != nil {
		return nil, fmt.Errorf("reading matches: %w", err)
	}
	defer rows.Close()

	byURL := make(map[string]types.TermMatches)
	var order []string
	for rows.Next() {
		var url, term, line string
		var score int
		if err := rows.Scan(&url, &term, &line, &score); err != nil {
			return nil, fmt.Errorf("scanning match row: %w", err)
		}
		if _, ok := byURL[url]; !ok {
			byURL[url] = types.TermMatches{}
			order = append(order, url)
		}
		byURL[url][term] = append(byURL[url][term], types.LineMatch{Line: line, Score: score})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]types.MatchResult, 0, len(order))
	for _, url := range order {
		out = append(out, types.MatchResult{URL: url, Terms: byURL[url]})
	}
	return out, nil
}

// ExportYAML writes every persisted result as a YAML document.
func (w *Workspace) ExportYAML(ctx context.Context, out io.Writer) error {
	results, err := w.Matches(ctx)
	if err != nil {
		return err
	}

	doc := struct {
		Workspace string              `yaml:"workspace"`
		Matches   []types.MatchResult `yaml:"matches"`
	}{Workspace: w.Name, Matches: results}

	enc := yaml.NewEncoder(out)
	defer enc.Close()
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding matches: %w", err)
	}
	return nil
}

func sortedTerms(tm types.TermMatches) []string {
	terms := make([]string, 0, len(tm))
	for term := range tm {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
