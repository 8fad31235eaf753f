// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the gist-hunter CLI. It wires the
// workspace, credential, and crawl stages behind cobra subcommands; the
// core packages under internal/ never read flags, env, or config files.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tnkrsec/gist-hunter/internal/credentials"
	"github.com/tnkrsec/gist-hunter/internal/workspace"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "gist-hunter/0.1"
)

// rootCmd is the base command for the gist-hunter CLI.
var rootCmd = &cobra.Command{
	Use:   "gist-hunter",
	Short: "Search public GitHub gists with fuzzy matching and rate-limit aware pacing",
	Long: `gist-hunter crawls the public GitHub gists stream page by page, pre-filters
gists by metadata, fetches content for survivors, and fuzzy-scores it
against your search terms. Requests are paced against the API rate-limit
budget and every observed gist is remembered per workspace, so reruns
never reprocess the same gist.

Persistence is scoped to named workspaces; define one first:

  gist-hunter workspace define hunt
  gist-hunter scan --workspace hunt "aws secret" token`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./gist-hunter.yaml or ~/.config/gist-hunter/config.yaml)")
	rootCmd.PersistentFlags().String("workspace", "", "workspace name (default: workspace.name from config)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("gist-hunter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "gist-hunter"))
		}
	}

	viper.SetDefault("workspace.dir", ".")
	viper.SetEnvPrefix("GIST_HUNTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// workspaceDir returns the directory holding workspace databases.
func workspaceDir() string {
	return viper.GetString("workspace.dir")
}

// workspaceName resolves the active workspace name: the --workspace flag
// wins, then workspace.name from config or environment.
func workspaceName(cmd *cobra.Command) string {
	if name, _ := cmd.Flags().GetString("workspace"); name != "" {
		return name
	}
	return viper.GetString("workspace.name")
}

// openWorkspace opens the active workspace as an explicit handle passed
// down to the core; it must already have been defined.
func openWorkspace(cmd *cobra.Command) (*workspace.Workspace, error) {
	return workspace.Open(workspaceDir(), workspaceName(cmd))
}

// resolveToken loads the GitHub credential. Missing credentials are
// fatal at startup for commands that talk to the API.
func resolveToken() (string, error) {
	return credentials.Provider{EnvFile: ".env", SecretsDir: ".secrets/"}.Resolve()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
