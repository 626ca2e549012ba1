// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package manifest loads YAML launch manifests describing a child process:
// its binary, arguments and environment.
//
//	path: echo
//	args: [hello]
//	env:
//	  - GREETING=hi
//	envFiles: [.env]
//	inheritEnv: false
//
// Relative envFiles are resolved against the manifest's directory. A bare
// path is looked up on the PATH the child will receive.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ClayFreeman/procmanage/env"
	"github.com/ClayFreeman/procmanage/pathutil"
	"github.com/ClayFreeman/procmanage/process"
)

// ErrInvalid indicates a manifest failed validation.
var ErrInvalid = errors.New("invalid manifest")

// Manifest describes one child process.
type Manifest struct {
	Path       string   `yaml:"path"`
	Args       []string `yaml:"args"`
	Env        []string `yaml:"env"`
	EnvFiles   []string `yaml:"envFiles"`
	InheritEnv bool     `yaml:"inheritEnv"`

	// dir is where the manifest was loaded from; relative envFiles resolve against it.
	dir string
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is provided by the operator
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manifest path: %w", err)
	}
	m.dir = filepath.Dir(abs)
	return m, nil
}

// Parse decodes and validates a manifest. Unknown fields are rejected.
func Parse(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalid)
		}
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that a binary is named and every explicit env entry is well formed.
func (m *Manifest) Validate() error {
	if m.Path == "" {
		return fmt.Errorf("%w: path is required", ErrInvalid)
	}
	if err := env.ValidateAll(m.Env); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Environment assembles the child's environment: the caller's own
// environment when InheritEnv is set, then each env file, then Env. Later
// sources override earlier ones.
func (m *Manifest) Environment() ([]string, error) {
	var base []string
	if m.InheritEnv {
		base = env.Inherited()
	}

	files := make([]string, len(m.EnvFiles))
	for i, f := range m.EnvFiles {
		if !filepath.IsAbs(f) && m.dir != "" {
			f = filepath.Join(m.dir, f)
		}
		files[i] = f
	}

	fromFiles, err := env.LoadFiles(files...)
	if err != nil {
		return nil, err
	}

	return env.Merge(base, fromFiles, m.Env), nil
}

// Process builds an unlaunched handle for the manifest. The binary is
// resolved against the PATH entry of the assembled environment.
func (m *Manifest) Process(opts ...process.Option) (*process.Process, error) {
	envp, err := m.Environment()
	if err != nil {
		return nil, err
	}

	pathEnv, _ := env.Lookup(envp, "PATH")
	binary, err := pathutil.ResolveBinary(m.Path, pathEnv)
	if err != nil {
		return nil, err
	}

	return process.New(binary, m.Args, envp, opts...), nil
}
