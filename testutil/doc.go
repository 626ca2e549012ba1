// Package testutil provides common testing utilities.
//
// This package includes helpers for:
//   - Creating temporary directories with automatic cleanup (TempDir)
//   - Writing fixture files and executable shell scripts (WriteFile, WriteScript)
//   - Locating system binaries a test depends on (RequireBinary)
//
// All functions use t.Helper() for proper test line reporting.
//
// Example usage:
//
//	func TestEcho(t *testing.T) {
//	    echo := testutil.RequireBinary(t, "echo")
//	    p := process.New(echo, []string{"hi"}, nil)
//	    defer p.Free()
//	    // ...
//	}
package testutil
