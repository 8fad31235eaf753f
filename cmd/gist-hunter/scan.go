package main

import (
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/tnkrsec/gist-hunter/internal/content"
	"github.com/tnkrsec/gist-hunter/internal/gists"
	"github.com/tnkrsec/gist-hunter/internal/ratelimit"
	"github.com/tnkrsec/gist-hunter/internal/scan"
	"github.com/tnkrsec/gist-hunter/pkg/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan [search terms...]",
	Short: "Crawl public gists and record fuzzy matches",
	Long: `Scan walks the public gists stream, pre-filters each gist's description
and filenames against the search terms, fetches content for survivors,
and records every content line whose partial-ratio score reaches the
cutoff. Matches are written to the active workspace at the end of the
run; every observed gist is remembered so later runs skip it.

The pace of page requests is planned from the current rate-limit budget
before the first request goes out. A budget too small for the requested
page count stops the run immediately.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().Int("max-requests", 10, "maximum number of page requests")
	scanCmd.Flags().Int("cutoff", types.DefaultScanCutoff, "minimum content match score in [0,100]")
	scanCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 10s)")
	scanCmd.Flags().Bool("verbose", false, "log per-gist diagnostics")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	token, err := resolveToken()
	if err != nil {
		return err
	}

	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer ws.Close()

	maxRequests, _ := cmd.Flags().GetInt("max-requests")
	cutoff, _ := cmd.Flags().GetInt("cutoff")
	verbose, _ := cmd.Flags().GetBool("verbose")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	cfg := types.ScanConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		MaxRequests: maxRequests,
		Cutoff:      cutoff,
		Verbose:     verbose,
	}

	client := &http.Client{Timeout: cfg.Timeout}
	runner := &scan.Runner{
		Planner:     &ratelimit.Planner{Client: client, Token: token, UserAgent: cfg.UserAgent},
		Gists:       &gists.Client{HTTPClient: client, Token: token, UserAgent: cfg.UserAgent},
		Content:     &content.Fetcher{Client: client, UserAgent: cfg.UserAgent},
		Workspace:   ws,
		Out:         os.Stdout,
		ProgressOut: os.Stderr,
	}

	_, err = runner.Run(cmd.Context(), args, cfg)
	return err
}
