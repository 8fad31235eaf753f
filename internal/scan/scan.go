// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan drives one crawl run through its states: Planning
// computes the pacing interval from the rate-limit budget, Crawling
// walks the gist stream through the filter/fetch/match pipeline,
// Draining runs when the stream or budget is spent, and Done flushes the
// sink. Fatal is reachable from every state; per-record failures are
// not fatal and degrade to "no match".
package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tnkrsec/gist-hunter/internal/content"
	"github.com/tnkrsec/gist-hunter/internal/gists"
	"github.com/tnkrsec/gist-hunter/internal/match"
	"github.com/tnkrsec/gist-hunter/internal/progress"
	"github.com/tnkrsec/gist-hunter/internal/ratelimit"
	"github.com/tnkrsec/gist-hunter/internal/workspace"
	"github.com/tnkrsec/gist-hunter/pkg/types"
)

// State is the orchestration state a run is in, or ended in.
type State int

const (
	Planning State = iota
	Crawling
	Draining
	Done
	Fatal
)

func (s State) String() string {
	switch s {
	case Planning:
		return "planning"
	case Crawling:
		return "crawling"
	case Draining:
		return "draining"
	case Done:
		return "done"
	case Fatal:
		return "fatal"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Runner wires the crawl stages together. All requests run on the
// calling goroutine; pacing is the rate-limit contract, so there is no
// concurrent fan-out anywhere.
type Runner struct {
	Planner   *ratelimit.Planner
	Gists     *gists.Client
	Content   *content.Fetcher
	Workspace *workspace.Workspace

	// Out receives run status and verbose diagnostics.
	Out io.Writer

	// ProgressOut, when non-nil, gets a cosmetic spinner while crawling.
	ProgressOut io.Writer
}

// Summary is the outcome of one run.
type Summary struct {
	State      State
	Interval   time.Duration
	Pages      int
	Scanned    int
	Duplicates int
	Matched    int
	Flushed    int
}

// Run executes Planning through Done. The returned summary reports the
// terminal state; a non-nil error always means Fatal.
func (r *Runner) Run(ctx context.Context, terms []string, cfg types.ScanConfig) (Summary, error) {
	summary := Summary{State: Planning}

	budget, err := r.Planner.CurrentBudget(ctx)
	if err != nil {
		summary.State = Fatal
		return summary, err
	}

	interval, err := ratelimit.SafeInterval(budget, cfg.MaxRequests, time.Now())
	if err != nil {
		summary.State = Fatal
		return summary, err
	}
	summary.Interval = interval

	fmt.Fprintf(r.Out, "Scanning public gists (%d requests, one every %s)...\n",
		cfg.MaxRequests, interval.Round(time.Millisecond))

	var spinner *progress.Spinner
	if r.ProgressOut != nil {
		spinner = progress.Start(r.ProgressOut, 0)
		defer spinner.Stop()
	}

	summary.State = Crawling
	sink := workspace.NewSink(r.Workspace)
	pages, err := r.Gists.Walk(ctx, cfg.MaxRequests, interval, func(g types.Gist) error {
		return r.visit(ctx, g, terms, cfg, sink, &summary)
	})
	summary.Pages = pages

	summary.State = Draining
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		summary.State = Fatal
		return summary, err
	}

	fmt.Fprintf(r.Out, "Scanned %d gists across %d pages (%d already processed).\n",
		summary.Scanned, summary.Pages, summary.Duplicates)
	fmt.Fprintf(r.Out, "Found %d matching gists with valid content.\n", summary.Matched)

	flushed, err := sink.Flush(ctx)
	if err != nil {
		summary.State = Fatal
		return summary, err
	}
	summary.Flushed = flushed

	if flushed == 0 {
		fmt.Fprintln(r.Out, "No matching gists with valid content found; nothing written.")
	} else {
		fmt.Fprintf(r.Out, "Saved %d gists to workspace %q.\n", flushed, r.Workspace.Name)
	}

	summary.State = Done
	return summary, nil
}

// visit runs one record through the pipeline. The ledger check comes
// before any filtering, and the ledger write commits before the walk
// advances; a crash between the ledger write and the flush loses at most
// that record's matches, by design the record is not retried.
func (r *Runner) visit(ctx context.Context, g types.Gist, terms []string, cfg types.ScanConfig, sink *workspace.Sink, summary *Summary) error {
	summary.Scanned++

	seen, err := r.Workspace.Contains(ctx, g.ID)
	if err != nil {
		return err
	}
	if seen {
		summary.Duplicates++
		return nil
	}

	if err := r.Workspace.MarkProcessed(ctx, g.ID); err != nil {
		return err
	}

	// Gists with no file of positive size are ledgered above but never
	// filtered or fetched.
	if !g.HasContent() {
		return nil
	}

	if !match.Metadata(g, terms) {
		return nil
	}

	text, err := r.Content.Fetch(ctx, g.HTMLURL)
	if err != nil {
		if errors.Is(err, types.ErrContentUnavailable) {
			if cfg.Verbose {
				fmt.Fprintf(r.Out, "skipping %s: %v\n", g.HTMLURL, err)
			}
			return nil
		}
		return err
	}

	found := match.Content(text, terms, cfg.Cutoff)
	if len(found) == 0 {
		return nil
	}

	sink.Record(g.HTMLURL, found)
	summary.Matched++
	if cfg.Verbose {
		fmt.Fprintf(r.Out, "found matching gist: %s\n", g.HTMLURL)
	}
	return nil
}
