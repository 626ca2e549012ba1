// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"math"
	"slices"

	"github.com/shirou/gopsutil/v4/process"
)

// IsProcessRunning checks if a process with the given PID exists and has not
// exited. Zombies are not running.
func IsProcessRunning(pid int) bool {
	if pid <= 0 || pid > math.MaxInt32 {
		return false
	}

	exists, err := process.PidExists(int32(pid)) // #nosec G115 - bounds checked above
	if err != nil || !exists {
		return false
	}

	return !isZombie(int32(pid)) // #nosec G115 - bounds checked above
}

// isZombie reports whether the process table lists pid as a zombie.
// Lookup failures mean the process vanished in between, which also counts.
func isZombie(pid int32) bool {
	p, err := process.NewProcess(pid)
	if err != nil {
		return true
	}

	status, err := p.Status()
	if err != nil {
		// Status is unsupported on some platforms; existence is all we know.
		return false
	}

	return slices.Contains(status, process.Zombie)
}
