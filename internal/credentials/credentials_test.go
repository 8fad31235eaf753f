// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package credentials

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tnkrsec/gist-hunter/pkg/types"
)

func TestResolveFromEnv(t *testing.T) {
	t.Setenv(tokenEnvVar, "ghp_env_token")

	token, err := Provider{}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if token != "ghp_env_token" {
		t.Errorf("Resolve() = %q, want %q", token, "ghp_env_token")
	}
}

func TestResolveFromDotenv(t *testing.T) {
	t.Setenv(tokenEnvVar, "")
	os.Unsetenv(tokenEnvVar)

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("GITHUB_TOKEN=ghp_dotenv_token\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	token, err := Provider{EnvFile: envFile}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if token != "ghp_dotenv_token" {
		t.Errorf("Resolve() = %q, want %q", token, "ghp_dotenv_token")
	}
}

func TestResolveFromSecretsDir(t *testing.T) {
	t.Setenv(tokenEnvVar, "")
	os.Unsetenv(tokenEnvVar)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, tokenSecretFile), []byte("ghp_secret_token\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	token, err := Provider{SecretsDir: dir}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if token != "ghp_secret_token" {
		t.Errorf("Resolve() = %q, want %q", token, "ghp_secret_token")
	}
}

func TestResolveMissing(t *testing.T) {
	t.Setenv(tokenEnvVar, "")
	os.Unsetenv(tokenEnvVar)

	_, err := Provider{
		EnvFile:    filepath.Join(t.TempDir(), ".env"),
		SecretsDir: t.TempDir(),
	}.Resolve()
	if !errors.Is(err, types.ErrMissingCredential) {
		t.Errorf("Resolve() error = %v, want ErrMissingCredential", err)
	}
}

func TestLoadDirSkipsDotfilesAndEmpty(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"github-token": "tok",
		".hidden":      "nope",
		"empty":        "   \n",
	}
	for name, contents := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	secrets, err := loadDir(dir)
	if err != nil {
		t.Fatalf("loadDir() error = %v", err)
	}
	if len(secrets) != 1 {
		t.Errorf("loadDir() returned %d secrets, want 1: %v", len(secrets), secrets)
	}
	if secrets["github-token"] != "tok" {
		t.Errorf("secrets[github-token] = %q, want %q", secrets["github-token"], "tok")
	}
}

func TestLoadDirMissingDirectory(t *testing.T) {
	secrets, err := loadDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("loadDir() error = %v", err)
	}
	if len(secrets) != 0 {
		t.Errorf("loadDir() = %v, want empty", secrets)
	}
}
