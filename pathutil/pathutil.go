// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package pathutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound indicates no executable with the requested name was found.
var ErrNotFound = errors.New("executable not found")

// systemDirs are searched after the PATH entries, for binaries that exist
// even when a minimal PATH hides them.
var systemDirs = []string{"/usr/local/bin", "/usr/bin", "/bin"}

// ResolveBinary turns a binary name into an absolute path suitable for exec,
// which performs no PATH lookup of its own.
//
// A name containing a path separator is made absolute and checked. A bare
// name is searched in pathEnv (a PATH-style list; the caller's PATH when
// empty) and then in the common system directories.
func ResolveBinary(name, pathEnv string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrNotFound)
	}

	if strings.ContainsRune(name, os.PathSeparator) {
		abs, err := filepath.Abs(name)
		if err != nil {
			return "", fmt.Errorf("cannot resolve %s: %w", name, err)
		}
		if err := checkExecutable(abs); err != nil {
			return "", err
		}
		return abs, nil
	}

	if pathEnv == "" {
		pathEnv = os.Getenv("PATH")
	}

	for _, dir := range append(filepath.SplitList(pathEnv), systemDirs...) {
		if dir == "" || !filepath.IsAbs(dir) {
			// Relative PATH entries would resolve against whatever the working directory is.
			continue
		}
		candidate := filepath.Join(dir, name)
		if checkExecutable(candidate) == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// checkExecutable verifies path is a regular file with an execute bit set.
func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrNotFound, path)
	}
	if info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("%w: %s is not executable", ErrNotFound, path)
	}
	return nil
}
