package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/tnkrsec/gist-hunter/internal/match"
	"github.com/tnkrsec/gist-hunter/internal/ratelimit"
	"github.com/tnkrsec/gist-hunter/pkg/types"
)

var ratelimitCmd = &cobra.Command{
	Use:   "ratelimit",
	Short: "Show the current GitHub API rate-limit budget",
	Long: `Ratelimit queries the GitHub rate-limit endpoint and prints the remaining
request count and seconds until the quota resets. With --grep it also
fuzzy-searches the raw response for a term; this ad-hoc search uses a
stricter default cutoff (80) than the batch scan (50).`,
	Args: cobra.NoArgs,
	RunE: runRatelimit,
}

func init() {
	ratelimitCmd.Flags().String("grep", "", "fuzzy-search the raw response for this term")
	ratelimitCmd.Flags().Int("cutoff", types.DefaultGrepCutoff, "minimum grep match score in [0,100]")
	ratelimitCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 10s)")

	rootCmd.AddCommand(ratelimitCmd)
}

func runRatelimit(cmd *cobra.Command, args []string) error {
	token, err := resolveToken()
	if err != nil {
		return err
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	planner := &ratelimit.Planner{
		Client:    &http.Client{Timeout: timeout},
		Token:     token,
		UserAgent: defaultUserAgent,
	}

	budget, err := planner.CurrentBudget(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Remaining requests: %d\n", budget.Remaining)
	fmt.Printf("Seconds until reset: %.2f\n", time.Until(budget.ResetAt).Seconds())

	term, _ := cmd.Flags().GetString("grep")
	if term == "" {
		return nil
	}
	cutoff, _ := cmd.Flags().GetInt("cutoff")

	raw, err := planner.Raw(cmd.Context())
	if err != nil {
		return err
	}

	found := match.Content(raw, []string{term}, cutoff)
	lines := found[term]
	if len(lines) == 0 {
		fmt.Println("No matches found.")
		return nil
	}

	fmt.Println("Fuzzy search results:")
	for _, lm := range lines {
		fmt.Printf("  [%3d] %s\n", lm.Score, lm.Line)
	}
	return nil
}
