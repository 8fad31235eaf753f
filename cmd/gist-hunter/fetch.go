package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tnkrsec/gist-hunter/internal/content"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <row-id>",
	Short: "Fetch a discovered gist's content by its listing id",
	Long: `Fetch looks up a gist by the row id shown in 'workspace list', retrieves
its page, and prints the extracted code blocks.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 10s)")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	rowID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid gist id %q", args[0])
	}

	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer ws.Close()

	url, ok, err := ws.GistURL(cmd.Context(), rowID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no gist found with id %d", rowID)
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	fmt.Printf("Fetching %s...\n", url)
	fetcher := &content.Fetcher{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: defaultUserAgent,
	}

	text, err := fetcher.Fetch(cmd.Context(), url)
	if err != nil {
		fmt.Println("No content available for this gist.")
		return nil
	}

	rule := strings.Repeat("-", 40)
	fmt.Printf("\nGist content:\n%s\n%s\n%s\n", rule, text, rule)
	return nil
}
