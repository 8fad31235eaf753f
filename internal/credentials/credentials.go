// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package credentials resolves the GitHub API token presented on crawl
// requests. The token is looked up in order: the GITHUB_TOKEN environment
// variable, a .env file in the working directory, then a plain-text file
// in the secrets directory. Each file in that directory represents one
// secret: the filename is the key name and the trimmed contents are the
// value.
package credentials

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/tnkrsec/gist-hunter/pkg/types"
)

// tokenEnvVar is the environment variable holding the GitHub token.
const tokenEnvVar = "GITHUB_TOKEN"

// tokenSecretFile is the filename looked up inside the secrets directory.
const tokenSecretFile = "github-token"

// Provider resolves a bearer credential. The zero value checks only the
// process environment.
type Provider struct {
	// EnvFile is the dotenv file to load before checking the environment
	// (typically ".env"). A missing file is not an error.
	EnvFile string

	// SecretsDir is a directory of plain-text secret files checked as a
	// last resort (typically ".secrets/").
	SecretsDir string
}

// Resolve returns the token, or an error wrapping ErrMissingCredential
// when no source provides one. The token is immutable for the process
// lifetime; callers resolve once at startup.
func (p Provider) Resolve() (string, error) {
	if p.EnvFile != "" {
		if err := godotenv.Load(p.EnvFile); err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("loading %s: %w", p.EnvFile, err)
		}
	}

	if token := strings.TrimSpace(os.Getenv(tokenEnvVar)); token != "" {
		return token, nil
	}

	if p.SecretsDir != "" {
		secrets, err := loadDir(p.SecretsDir)
		if err != nil {
			return "", err
		}
		if token, ok := secrets[tokenSecretFile]; ok {
			return token, nil
		}
	}

	return "", fmt.Errorf("%s not set: %w", tokenEnvVar, types.ErrMissingCredential)
}

// loadDir reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error; Load returns an empty
// map. Unreadable files produce a warning on stderr but do not abort.
func loadDir(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}
