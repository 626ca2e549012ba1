// Package testutil provides common testing utilities shared across packages:
// temporary directories, fixture files, executable scripts and lookups of
// system binaries that tests depend on.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

// TempDir creates a temporary directory for testing with automatic cleanup.
// The directory is created with secure permissions (0700) and is removed
// when the test completes via t.Cleanup().
//
// Example:
//
//	tmpDir := testutil.TempDir(t)
//	manifestPath := filepath.Join(tmpDir, "proc.yaml")
func TempDir(t *testing.T) string {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "procmanage-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}

	t.Cleanup(func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			t.Logf("Failed to clean up temp directory %s: %v", tmpDir, err)
		}
	})

	return tmpDir
}

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// WriteScript writes a /bin/sh script to name inside dir, marks it
// executable and returns its path. The test is skipped on Windows.
//
// Example:
//
//	script := testutil.WriteScript(t, dir, "exit3.sh", "exit 3")
func WriteScript(t *testing.T, dir, name, body string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}

	path := filepath.Join(dir, name)
	content := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(content), 0o700); err != nil { // #nosec G306 - test script must be executable
		t.Fatalf("Failed to write script %s: %v", path, err)
	}
	return path
}

// RequireBinary resolves name on PATH and returns its absolute path, skipping
// the test when the binary is unavailable.
func RequireBinary(t *testing.T, name string) string {
	t.Helper()

	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not available: %v", name, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		t.Fatalf("Failed to resolve %s: %v", path, err)
	}
	return abs
}
