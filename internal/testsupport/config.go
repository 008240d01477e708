package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// IsolateHome points HOME at a fresh temp directory so the default config
// path never resolves to the real user's file, and clears env overrides.
func IsolateHome(t testing.TB) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("NVIMCMD_LOG_LEVEL", "")
	return home
}

// WriteConfig writes content to config.toml in a new temp directory and
// returns its path.
func WriteConfig(t testing.TB, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
