// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package process

import (
	"fmt"
	"os"
	"syscall"
)

// Stream slots, in the order of the child's descriptors 0, 1 and 2.
const (
	streamIn = iota
	streamOut
	streamErr
	streamCount
)

var streamNames = [streamCount]string{"stdin", "stdout", "stderr"}

// pipe is one unidirectional channel; r is read from, w is written to.
type pipe struct {
	r, w *os.File
}

// Launch starts the child. It returns ErrAlreadyRunning without touching
// the current child when the handle is running, and ErrFreed after Free.
//
// On any failure no child exists, no stream is left open and the handle
// can be launched again.
func (p *Process) Launch() error {
	if !p.state.canMoveTo(Running) {
		launchesTotal.WithLabelValues(resultRejected).Inc()
		if p.state == Freed {
			return ErrFreed
		}
		return fmt.Errorf("%w: pid %d", ErrAlreadyRunning, p.pid)
	}

	pipes, err := p.openPipes()
	if err != nil {
		launchesTotal.WithLabelValues(resultPipeError).Inc()
		p.log.Warn("launch failed", "error", err)
		return err
	}

	argv := p.argv.Strings()
	pid, err := p.spawner.Spawn(p.path, argv, childAttr(pipes, p.envp.Strings()))
	if err == nil && pid <= 0 {
		err = fmt.Errorf("invalid pid %d", pid)
	}
	if err != nil {
		closePipes(pipes[:])
		launchesTotal.WithLabelValues(resultSpawnError).Inc()
		p.log.Warn("launch failed", "error", err)
		return fmt.Errorf("%w %s: %w", ErrSpawn, p.path, err)
	}

	p.recordChild(pipes, pid)
	launchesTotal.WithLabelValues(resultSuccess).Inc()
	runningProcesses.Inc()
	p.log.Debug("launched", "pid", pid, "argc", len(argv), "envc", p.envp.Len())
	return nil
}

// openPipes creates the three stream pipes, releasing any already created
// when a later one fails.
func (p *Process) openPipes() ([streamCount]pipe, error) {
	var pipes [streamCount]pipe
	for i := range pipes {
		r, w, err := p.spawner.Pipe()
		if err != nil {
			closePipes(pipes[:i])
			return pipes, fmt.Errorf("%w for %s: %w", ErrPipe, streamNames[i], err)
		}
		pipes[i] = pipe{r: r, w: w}
	}
	return pipes, nil
}

// childAttr describes the child's side of the launch: its stdin reads from
// the input pipe, its stdout and stderr write into the output and error
// pipes, every other descriptor closes on exec, and it runs detached in a
// new session with exactly envp as its environment.
func childAttr(pipes [streamCount]pipe, envp []string) *syscall.ProcAttr {
	return &syscall.ProcAttr{
		Env: envp,
		Files: []uintptr{
			pipes[streamIn].r.Fd(),
			pipes[streamOut].w.Fd(),
			pipes[streamErr].w.Fd(),
		},
		Sys: detachedAttr(),
	}
}

// recordChild is the parent's side: drop the ends the child owns now and
// keep the other three as the handle's streams.
func (p *Process) recordChild(pipes [streamCount]pipe, pid int) {
	for _, f := range []*os.File{pipes[streamIn].r, pipes[streamOut].w, pipes[streamErr].w} {
		if err := f.Close(); err != nil {
			p.log.Debug("closing child pipe end", "error", err)
		}
	}

	p.stdin = pipes[streamIn].w
	p.stdout = pipes[streamOut].r
	p.stderr = pipes[streamErr].r
	p.pid = pid
	p.state = Running
}

func closePipes(pipes []pipe) {
	for _, pp := range pipes {
		for _, f := range []*os.File{pp.r, pp.w} {
			if f != nil {
				_ = f.Close()
			}
		}
	}
}
