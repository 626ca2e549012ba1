// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package process manages the lifecycle of a single child process whose
// standard streams are connected to pipes owned by the caller.
//
// A Process moves through a small state machine:
//
//	Unlaunched --Launch--> Running --Close/Wait--> Closed --Launch--> Running ...
//	      any --Free--> Freed (terminal)
//
// Launch creates three pipes, forks, wires the child's stdin, stdout and
// stderr to them, detaches the child into its own session and executes the
// binary with exactly the stored argument and environment lists. Nothing is
// inherited from the parent's environment.
//
// Close closes the parent's pipe ends, sends SIGKILL and collects the child
// without blocking the caller. Free closes and then drops everything the
// handle owns.
//
// # Argument zero
//
// New always stores the binary path as the first argument, ahead of any
// caller-supplied arguments. ClearArgv removes it along with the rest.
//
// # Example Usage
//
//	p := process.New("/bin/echo", []string{"hello"}, []string{"LANG=C"})
//	defer p.Free()
//
//	if err := p.Launch(); err != nil {
//	    return err
//	}
//	out, _ := io.ReadAll(p.Stdout())
//	fmt.Print(string(out)) // hello
//
// # Concurrency
//
// A Process is not safe for concurrent use; callers serialize access. Reads
// and writes on the stream handles follow ordinary pipe semantics and may
// block. Drain Stdout and Stderr before calling Wait, as with os/exec.
package process
