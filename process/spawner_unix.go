//go:build unix

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package process

import (
	"errors"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// SystemSpawner creates real pipes and child processes.
type SystemSpawner struct{}

// Pipe returns an os.Pipe; both ends are close-on-exec so they never leak
// into unrelated children.
func (SystemSpawner) Pipe() (*os.File, *os.File, error) {
	return os.Pipe()
}

// Spawn runs syscall.ForkExec. Exec failures in the child are reported here
// through the runtime's status pipe.
func (SystemSpawner) Spawn(path string, argv []string, attr *syscall.ProcAttr) (int, error) {
	return syscall.ForkExec(path, argv, attr)
}

// Kill sends SIGKILL. ESRCH means the child already exited.
func (SystemSpawner) Kill(pid int) error {
	err := unix.Kill(pid, unix.SIGKILL)
	if errors.Is(err, unix.ESRCH) {
		return nil
	}
	return err
}

// Reap wraps wait4. ECHILD means someone else collected the child.
func (SystemSpawner) Reap(pid int, block bool) (bool, int, error) {
	options := 0
	if !block {
		options = unix.WNOHANG
	}

	var status unix.WaitStatus
	for {
		wpid, err := unix.Wait4(pid, &status, options, nil)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.ECHILD):
			return true, -1, nil
		case err != nil:
			return false, -1, err
		case wpid == 0:
			return false, -1, nil
		}
		return true, exitCode(status), nil
	}
}

func exitCode(status unix.WaitStatus) int {
	if status.Exited() {
		return status.ExitStatus()
	}
	return -1
}

// detachedAttr puts the child in a new session so terminal job-control
// signals sent to the caller's process group do not reach it.
func detachedAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
