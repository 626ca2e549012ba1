// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package process

import (
	"os"
	"syscall"
)

// Spawner is the operating-system boundary a Process drives. The default
// is SystemSpawner; tests substitute their own to exercise both sides of a
// launch without forking.
type Spawner interface {
	// Pipe returns a connected pair of close-on-exec descriptors.
	Pipe() (r, w *os.File, err error)
	// Spawn forks and executes path with argv. attr.Files lists the
	// descriptors that become the child's fd 0, 1 and 2.
	Spawn(path string, argv []string, attr *syscall.ProcAttr) (pid int, err error)
	// Kill forcefully terminates pid. A process that is already gone is not an error.
	Kill(pid int) error
	// Reap collects the exit status of pid. With block false it returns
	// done=false when the child has not exited yet. code is -1 when the
	// child was terminated by a signal.
	Reap(pid int, block bool) (done bool, code int, err error)
}
