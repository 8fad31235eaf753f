package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tnkrsec/gist-hunter/internal/workspace"
)

var workspaceCmd = &cobra.Command{
	Use:   "workspace",
	Short: "Manage named crawl workspaces",
	Long: `A workspace is one SQLite database binding a dedup ledger and a match
store to a logical crawl context. Workspaces are created explicitly and
never deleted by gist-hunter.`,
}

var workspaceDefineCmd = &cobra.Command{
	Use:   "define <name>",
	Short: "Create a workspace (or reopen an existing one)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		ws, err := workspace.Define(workspaceDir(), name)
		if err != nil {
			return err
		}
		defer ws.Close()

		fmt.Printf("Workspace %q has been defined (%s).\n", name, workspace.Path(workspaceDir(), name))
		fmt.Printf("Select it with --workspace %s, GIST_HUNTER_WORKSPACE_NAME, or workspace.name in gist-hunter.yaml.\n", name)
		return nil
	},
}

var workspaceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered gists in the active workspace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()

		discovered, err := ws.ListDiscovered(cmd.Context())
		if err != nil {
			return err
		}
		if len(discovered) == 0 {
			fmt.Println("No discovered gists found.")
			return nil
		}

		fmt.Println("Discovered gists:")
		for _, g := range discovered {
			fmt.Printf("%d %s\n", g.RowID, g.URL)
		}
		return nil
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "Print recorded term matches from the active workspace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()

		asYAML, _ := cmd.Flags().GetBool("yaml")
		if asYAML {
			return ws.ExportYAML(cmd.Context(), os.Stdout)
		}

		results, err := ws.Matches(cmd.Context())
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No matches recorded.")
			return nil
		}

		for _, r := range results {
			fmt.Println(r.URL)
			for term, lines := range r.Terms {
				fmt.Printf("  %s:\n", term)
				for _, lm := range lines {
					fmt.Printf("    [%3d] %s\n", lm.Score, lm.Line)
				}
			}
		}
		return nil
	},
}

func init() {
	matchesCmd.Flags().Bool("yaml", false, "output matches as YAML")

	workspaceCmd.AddCommand(workspaceDefineCmd)
	workspaceCmd.AddCommand(workspaceListCmd)
	rootCmd.AddCommand(workspaceCmd)
	rootCmd.AddCommand(matchesCmd)
}
