//go:build !unix

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package process

import (
	"os"
	"syscall"
)

// SystemSpawner reports ErrUnsupported; fork/exec is only available on unix.
type SystemSpawner struct{}

func (SystemSpawner) Pipe() (*os.File, *os.File, error) { return nil, nil, ErrUnsupported }

func (SystemSpawner) Spawn(string, []string, *syscall.ProcAttr) (int, error) {
	return NoPID, ErrUnsupported
}

func (SystemSpawner) Kill(int) error { return ErrUnsupported }

func (SystemSpawner) Reap(int, bool) (bool, int, error) { return true, -1, ErrUnsupported }

func detachedAttr() *syscall.SysProcAttr { return nil }
