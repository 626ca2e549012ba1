// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package process

import (
	"errors"
	"fmt"
	"os"
)

// Close releases the streams, kills the child with SIGKILL and collects it
// without blocking. If the child cannot be collected yet, a background
// goroutine finishes the reap so no zombie is left behind.
//
// Close is idempotent and a no-op on handles that are not running. The
// handle always ends up closed; the returned error only reports failures
// releasing resources.
func (p *Process) Close() error {
	if p == nil {
		return nil
	}

	errs := p.closeStreams()

	if p.pid != NoPID {
		pid := p.pid
		if err := p.spawner.Kill(pid); err != nil {
			errs = append(errs, fmt.Errorf("kill %d: %w", pid, err))
		} else {
			killsTotal.Inc()
		}

		done, _, err := p.spawner.Reap(pid, false)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("reap %d: %w", pid, err))
		case !done:
			go p.reapLater(pid)
		}

		p.pid = NoPID
		runningProcesses.Dec()
		closesTotal.Inc()
		p.log.Debug("closed", "pid", pid, "reaped", done)
	}

	if p.state == Running {
		p.state = Closed
	}

	err := errors.Join(errs...)
	if err != nil {
		p.log.Warn("close incomplete", "error", err)
	}
	return err
}

func (p *Process) closeStreams() []error {
	var errs []error
	for i, f := range [streamCount]**os.File{&p.stdin, &p.stdout, &p.stderr} {
		if err := closeStream(f); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", streamNames[i], err))
		}
	}
	return errs
}

func (p *Process) reapLater(pid int) {
	if _, _, err := p.spawner.Reap(pid, true); err != nil {
		p.log.Warn("deferred reap failed", "pid", pid, "error", err)
		return
	}
	p.log.Debug("reaped", "pid", pid)
}

// Wait blocks until the child exits, collects it and closes the streams,
// leaving the handle closed. It returns the exit code, or -1 if the child
// was terminated by a signal.
//
// Read Stdout and Stderr to completion first: a child blocked on a full pipe
// never exits.
func (p *Process) Wait() (int, error) {
	if p.state != Running {
		return -1, ErrNotRunning
	}

	pid := p.pid
	done, code, err := p.spawner.Reap(pid, true)
	if err != nil || !done {
		// Not collected: leave the PID set so Close kills and reaps it.
		if err == nil {
			err = errors.New("child not collected")
		}
		return -1, errors.Join(fmt.Errorf("wait %d: %w", pid, err), p.Close())
	}

	// The child is collected; its PID may be reused, so Close must not signal it.
	p.pid = NoPID
	runningProcesses.Dec()
	p.log.Debug("exited", "pid", pid, "code", code)

	return code, p.Close()
}

// Free closes the handle and drops its path and lists. A freed handle
// rejects Launch with ErrFreed; freeing nil or an already-freed handle is a
// no-op.
func (p *Process) Free() {
	if p == nil || p.state == Freed {
		return
	}
	_ = p.Close()

	p.path = ""
	p.argv.Clear()
	p.envp.Clear()
	p.state = Freed
	p.log.Debug("freed")
}

// closeStream closes *f if open and resets it. A stream the caller already
// closed is not an error.
func closeStream(f **os.File) error {
	if *f == nil {
		return nil
	}
	err := (*f).Close()
	*f = nil
	if errors.Is(err, os.ErrClosed) {
		return nil
	}
	return err
}
