// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package process

import (
	"errors"
	"os"
	"syscall"
	"testing"
)

type spawnCall struct {
	path string
	argv []string
	attr *syscall.ProcAttr
}

// fakeSpawner hands out real pipes but never forks.
type fakeSpawner struct {
	pipeFailAt int // 1-based Pipe call that fails; 0 never fails
	pipeCalls  int
	files      []*os.File
	fds        []uintptr

	spawnErr error
	nextPID  int
	spawns   []spawnCall

	killErr error
	killed  []int

	reapPending bool // non-blocking reaps report the child still alive
	waitCode    int
	waitErr     error
	reaps       []bool
	blocking    chan int
}

func newFakeSpawner() *fakeSpawner {
	return &fakeSpawner{nextPID: 4242, blocking: make(chan int, 8)}
}

func (f *fakeSpawner) Pipe() (*os.File, *os.File, error) {
	f.pipeCalls++
	if f.pipeCalls == f.pipeFailAt {
		return nil, nil, syscall.EMFILE
	}
	r, w, err := os.Pipe()
	if err != nil {
		return nil, nil, err
	}
	f.files = append(f.files, r, w)
	f.fds = append(f.fds, r.Fd(), w.Fd())
	return r, w, nil
}

func (f *fakeSpawner) Spawn(path string, argv []string, attr *syscall.ProcAttr) (int, error) {
	f.spawns = append(f.spawns, spawnCall{path: path, argv: argv, attr: attr})
	if f.spawnErr != nil {
		return NoPID, f.spawnErr
	}
	pid := f.nextPID
	f.nextPID++
	return pid, nil
}

func (f *fakeSpawner) Kill(pid int) error {
	f.killed = append(f.killed, pid)
	return f.killErr
}

func (f *fakeSpawner) Reap(pid int, block bool) (bool, int, error) {
	f.reaps = append(f.reaps, block)
	if block {
		f.blocking <- pid
		return true, f.waitCode, f.waitErr
	}
	if f.reapPending {
		return false, -1, nil
	}
	return true, -1, nil
}

func isClosed(f *os.File) bool {
	_, err := f.Stat()
	return errors.Is(err, os.ErrClosed)
}

func newFakeProcess(t *testing.T, argv, envp []string) (*Process, *fakeSpawner) {
	t.Helper()
	fs := newFakeSpawner()
	p := New("/usr/bin/tool", argv, envp, WithSpawner(fs))
	t.Cleanup(func() {
		p.Free()
		for _, f := range fs.files {
			_ = f.Close()
		}
	})
	return p, fs
}
