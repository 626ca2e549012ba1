// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package process

import (
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/ClayFreeman/procmanage/logutil"
	"github.com/ClayFreeman/procmanage/procutil"
	"github.com/ClayFreeman/procmanage/strlist"
)

// NoPID is the process identifier of a handle without a child.
const NoPID = -1

// Process is a handle to one child process and the resources that connect
// the caller to it.
type Process struct {
	id   string
	path string
	argv strlist.List
	envp strlist.List

	stdin  *os.File
	stdout *os.File
	stderr *os.File
	pid    int
	state  State

	spawner Spawner
	log     *logutil.ComponentLogger
}

// Option configures a Process at construction.
type Option func(*Process)

// WithSpawner replaces the OS collaborator used to create pipes and children.
func WithSpawner(s Spawner) Option {
	return func(p *Process) {
		if s != nil {
			p.spawner = s
		}
	}
}

// WithLogger replaces the component logger.
func WithLogger(l *logutil.ComponentLogger) Option {
	return func(p *Process) {
		if l != nil {
			p.log = l
		}
	}
}

// New creates an unlaunched handle for the binary at path.
//
// The path is stored as the first argument, followed by argv. The
// environment holds exactly envp; when envp is empty the environment list
// stays absent and the child starts with no environment at all.
func New(path string, argv, envp []string, opts ...Option) *Process {
	p := &Process{
		id:      uuid.NewString(),
		path:    strings.Clone(path),
		pid:     NoPID,
		state:   Unlaunched,
		spawner: SystemSpawner{},
	}
	p.argv.Append(path)
	p.argv.AppendAll(argv...)
	p.envp.AppendAll(envp...)

	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logutil.NewLogger("process").WithFields("id", p.id, "path", p.path)
	}
	return p
}

// AddArg appends one argument. Changes made while running only affect the
// next launch.
func (p *Process) AddArg(arg string) {
	if p.state != Freed {
		p.argv.Append(arg)
	}
}

// AddArgs appends arguments in order.
func (p *Process) AddArgs(args ...string) {
	if p.state != Freed {
		p.argv.AppendAll(args...)
	}
}

// AddEnv appends one KEY=VALUE environment entry. The entry is stored verbatim.
func (p *Process) AddEnv(entry string) {
	if p.state != Freed {
		p.envp.Append(entry)
	}
}

// AddEnvs appends environment entries in order.
func (p *Process) AddEnvs(entries ...string) {
	if p.state != Freed {
		p.envp.AppendAll(entries...)
	}
}

// ClearArgv drops every argument, including the leading path.
func (p *Process) ClearArgv() { p.argv.Clear() }

// ClearEnvp drops every environment entry.
func (p *Process) ClearEnvp() { p.envp.Clear() }

// ID returns the handle's identifier used in log records.
func (p *Process) ID() string { return p.id }

// Path returns the binary path.
func (p *Process) Path() string { return p.path }

// Args returns a copy of the argument list, or nil when it is absent.
func (p *Process) Args() []string { return p.argv.Strings() }

// Env returns a copy of the environment list, or nil when it is absent.
func (p *Process) Env() []string { return p.envp.Strings() }

// PID returns the child's process identifier, or NoPID.
func (p *Process) PID() int { return p.pid }

// State returns the current lifecycle state.
func (p *Process) State() State { return p.state }

// Running reports whether the handle holds a launched child.
func (p *Process) Running() bool { return p.state == Running }

// Stdin returns the write end of the child's standard input, or nil.
func (p *Process) Stdin() *os.File { return p.stdin }

// Stdout returns the read end of the child's standard output, or nil.
func (p *Process) Stdout() *os.File { return p.stdout }

// Stderr returns the read end of the child's standard error, or nil.
func (p *Process) Stderr() *os.File { return p.stderr }

// Fds returns the raw descriptors of the three streams, -1 for each one that
// is closed. Retrieving a descriptor puts that stream into blocking mode, so
// read deadlines no longer apply to it.
func (p *Process) Fds() (in, out, errFd int) {
	return fdOf(p.stdin), fdOf(p.stdout), fdOf(p.stderr)
}

func fdOf(f *os.File) int {
	if f == nil {
		return -1
	}
	return int(f.Fd()) // #nosec G115 - descriptors fit in int
}

// Alive reports whether the launched child still exists and has not exited.
func (p *Process) Alive() bool {
	return p.state == Running && procutil.IsProcessRunning(p.pid)
}
