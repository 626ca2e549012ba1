// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package process

import "errors"

var (
	// ErrAlreadyRunning is returned by Launch when the handle already has a live child.
	ErrAlreadyRunning = errors.New("process already running")
	// ErrNotRunning is returned by Wait when there is no child to wait for.
	ErrNotRunning = errors.New("process not running")
	// ErrFreed is returned by operations on a handle that has been freed.
	ErrFreed = errors.New("process handle freed")
	// ErrPipe indicates a stream pipe could not be created.
	ErrPipe = errors.New("failed to create pipe")
	// ErrSpawn indicates the fork or exec of the child failed.
	ErrSpawn = errors.New("failed to spawn process")
	// ErrUnsupported is returned by the system spawner on platforms without fork/exec.
	ErrUnsupported = errors.New("process spawning not supported on this platform")
)
