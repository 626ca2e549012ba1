// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package process

import (
	"bytes"
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClayFreeman/procmanage/logutil"
)

func TestNewInsertsPathAsFirstArgument(t *testing.T) {
	p, _ := newFakeProcess(t, []string{"-v", "input"}, []string{"A=1"})

	assert.Equal(t, "/usr/bin/tool", p.Path())
	assert.Equal(t, []string{"/usr/bin/tool", "-v", "input"}, p.Args())
	assert.Equal(t, []string{"A=1"}, p.Env())
	assert.Equal(t, Unlaunched, p.State())
	assert.Equal(t, NoPID, p.PID())
	assert.NotEmpty(t, p.ID())
	assert.Nil(t, p.Stdin())
	assert.Nil(t, p.Stdout())
	assert.Nil(t, p.Stderr())
}

func TestNewWithoutEnvironmentLeavesItAbsent(t *testing.T) {
	p, _ := newFakeProcess(t, nil, nil)

	assert.Equal(t, []string{"/usr/bin/tool"}, p.Args())
	assert.Nil(t, p.Env())
}

func TestNewCopiesCallerSlices(t *testing.T) {
	argv := []string{"a"}
	envp := []string{"K=V"}
	p, _ := newFakeProcess(t, argv, envp)

	argv[0] = "changed"
	envp[0] = "CHANGED=1"

	assert.Equal(t, []string{"/usr/bin/tool", "a"}, p.Args())
	assert.Equal(t, []string{"K=V"}, p.Env())
}

func TestMutators(t *testing.T) {
	p, _ := newFakeProcess(t, nil, nil)

	p.AddArg("one")
	p.AddArgs("two", "three")
	p.AddEnv("A=1")
	p.AddEnvs("B=2", "C=3")

	assert.Equal(t, []string{"/usr/bin/tool", "one", "two", "three"}, p.Args())
	assert.Equal(t, []string{"A=1", "B=2", "C=3"}, p.Env())

	p.ClearArgv()
	p.ClearEnvp()
	assert.Nil(t, p.Args())
	assert.Nil(t, p.Env())

	// Clearing twice is harmless.
	p.ClearArgv()
	p.ClearEnvp()
	assert.Nil(t, p.Args())
}

func TestLaunchWiresBothSides(t *testing.T) {
	p, fs := newFakeProcess(t, []string{"x"}, []string{"A=1"})

	require.NoError(t, p.Launch())
	require.Len(t, fs.spawns, 1)
	require.Len(t, fs.files, 6)

	call := fs.spawns[0]
	assert.Equal(t, "/usr/bin/tool", call.path)
	assert.Equal(t, []string{"/usr/bin/tool", "x"}, call.argv)
	assert.Equal(t, []string{"A=1"}, call.attr.Env)

	// Child side: stdin reads the input pipe, stdout/stderr write the others.
	inR, inW := fs.files[0], fs.files[1]
	outR, outW := fs.files[2], fs.files[3]
	errR, errW := fs.files[4], fs.files[5]
	assert.Equal(t, []uintptr{fs.fds[0], fs.fds[3], fs.fds[5]}, call.attr.Files)

	// Parent side: child ends are closed, the rest become the streams.
	assert.True(t, isClosed(inR))
	assert.True(t, isClosed(outW))
	assert.True(t, isClosed(errW))
	assert.Same(t, inW, p.Stdin())
	assert.Same(t, outR, p.Stdout())
	assert.Same(t, errR, p.Stderr())

	assert.Equal(t, Running, p.State())
	assert.True(t, p.Running())
	assert.Equal(t, 4242, p.PID())

	in, out, errFd := p.Fds()
	assert.GreaterOrEqual(t, in, 0)
	assert.NotEqual(t, in, out)
	assert.NotEqual(t, out, errFd)
	assert.NotEqual(t, in, errFd)
}

func TestLaunchTwiceKeepsFirstChild(t *testing.T) {
	p, fs := newFakeProcess(t, nil, nil)
	require.NoError(t, p.Launch())

	pid, stdin, stdout, stderr := p.PID(), p.Stdin(), p.Stdout(), p.Stderr()

	err := p.Launch()
	require.ErrorIs(t, err, ErrAlreadyRunning)

	assert.Len(t, fs.spawns, 1)
	assert.Equal(t, 3, fs.pipeCalls)
	assert.Equal(t, pid, p.PID())
	assert.Same(t, stdin, p.Stdin())
	assert.Same(t, stdout, p.Stdout())
	assert.Same(t, stderr, p.Stderr())
}

func TestLaunchPipeFailureReleasesEarlierPipes(t *testing.T) {
	p, fs := newFakeProcess(t, nil, nil)
	fs.pipeFailAt = 3

	err := p.Launch()
	require.ErrorIs(t, err, ErrPipe)
	require.ErrorIs(t, err, syscall.EMFILE)
	assert.Contains(t, err.Error(), "stderr")

	assert.Empty(t, fs.spawns)
	require.Len(t, fs.files, 4)
	for i, f := range fs.files {
		assert.True(t, isClosed(f), "pipe end %d left open", i)
	}
	assert.Equal(t, Unlaunched, p.State())
	assert.Equal(t, NoPID, p.PID())
	assert.Nil(t, p.Stdin())
}

func TestLaunchSpawnFailureLeavesHandleReusable(t *testing.T) {
	p, fs := newFakeProcess(t, nil, nil)
	fs.spawnErr = syscall.ENOENT

	err := p.Launch()
	require.ErrorIs(t, err, ErrSpawn)
	require.ErrorIs(t, err, os.ErrNotExist)

	for i, f := range fs.files {
		assert.True(t, isClosed(f), "pipe end %d left open", i)
	}
	assert.Equal(t, Unlaunched, p.State())
	assert.Equal(t, NoPID, p.PID())
	assert.Nil(t, p.Stdout())

	fs.spawnErr = nil
	require.NoError(t, p.Launch())
	assert.Equal(t, Running, p.State())
}

func TestMutationAfterLaunchDoesNotReachChild(t *testing.T) {
	p, fs := newFakeProcess(t, []string{"a"}, nil)
	require.NoError(t, p.Launch())

	p.AddArg("late")
	p.AddEnv("LATE=1")

	assert.Equal(t, []string{"/usr/bin/tool", "a"}, fs.spawns[0].argv)
	assert.Nil(t, fs.spawns[0].attr.Env)
	assert.Equal(t, []string{"/usr/bin/tool", "a", "late"}, p.Args())
}

func TestCloseKillsReapsAndResets(t *testing.T) {
	p, fs := newFakeProcess(t, nil, nil)
	require.NoError(t, p.Launch())
	stdin, stdout, stderr := p.Stdin(), p.Stdout(), p.Stderr()

	require.NoError(t, p.Close())

	assert.Equal(t, []int{4242}, fs.killed)
	assert.Equal(t, []bool{false}, fs.reaps)
	assert.Equal(t, Closed, p.State())
	assert.Equal(t, NoPID, p.PID())
	assert.Nil(t, p.Stdin())
	assert.Nil(t, p.Stdout())
	assert.Nil(t, p.Stderr())
	assert.True(t, isClosed(stdin))
	assert.True(t, isClosed(stdout))
	assert.True(t, isClosed(stderr))

	in, out, errFd := p.Fds()
	assert.Equal(t, []int{-1, -1, -1}, []int{in, out, errFd})
}

func TestCloseFinishesReapInBackground(t *testing.T) {
	p, fs := newFakeProcess(t, nil, nil)
	fs.reapPending = true
	require.NoError(t, p.Launch())

	require.NoError(t, p.Close())

	select {
	case pid := <-fs.blocking:
		assert.Equal(t, 4242, pid)
	case <-time.After(2 * time.Second):
		t.Fatal("killed child was never reaped")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	p, fs := newFakeProcess(t, nil, nil)

	require.NoError(t, p.Close())
	assert.Equal(t, Unlaunched, p.State())

	require.NoError(t, p.Launch())
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	assert.Len(t, fs.killed, 1)
	assert.Equal(t, Closed, p.State())

	var nilProcess *Process
	assert.NoError(t, nilProcess.Close())
}

func TestCloseToleratesStreamClosedByCaller(t *testing.T) {
	p, _ := newFakeProcess(t, nil, nil)
	require.NoError(t, p.Launch())

	require.NoError(t, p.Stdin().Close())
	assert.NoError(t, p.Close())
}

func TestCloseReportsKillFailureButStillCloses(t *testing.T) {
	p, fs := newFakeProcess(t, nil, nil)
	require.NoError(t, p.Launch())
	fs.killErr = syscall.EPERM

	err := p.Close()
	require.ErrorIs(t, err, syscall.EPERM)
	assert.Equal(t, Closed, p.State())
	assert.Equal(t, NoPID, p.PID())
}

func TestRelaunchAfterClose(t *testing.T) {
	p, fs := newFakeProcess(t, nil, nil)

	require.NoError(t, p.Launch())
	require.NoError(t, p.Close())
	require.NoError(t, p.Launch())

	assert.Equal(t, Running, p.State())
	assert.Equal(t, 4243, p.PID())
	assert.Len(t, fs.spawns, 2)
}

func TestWaitReturnsExitCodeWithoutKilling(t *testing.T) {
	p, fs := newFakeProcess(t, nil, nil)
	fs.waitCode = 3
	require.NoError(t, p.Launch())

	code, err := p.Wait()
	require.NoError(t, err)
	assert.Equal(t, 3, code)
	assert.Empty(t, fs.killed)
	assert.Equal(t, Closed, p.State())
	assert.Equal(t, NoPID, p.PID())
	assert.Nil(t, p.Stdout())
}

func TestWaitReapFailureStillKillsChild(t *testing.T) {
	p, fs := newFakeProcess(t, nil, nil)
	fs.waitErr = syscall.EINVAL
	require.NoError(t, p.Launch())
	pid := p.PID()

	code, err := p.Wait()
	require.ErrorIs(t, err, syscall.EINVAL)
	assert.Equal(t, -1, code)
	assert.Equal(t, []int{pid}, fs.killed, "an uncollected child must be killed")
	assert.Equal(t, []bool{true, false}, fs.reaps)
	assert.Equal(t, Closed, p.State())
	assert.Equal(t, NoPID, p.PID())
}

func TestWaitRequiresRunning(t *testing.T) {
	p, _ := newFakeProcess(t, nil, nil)

	_, err := p.Wait()
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestFreeClosesRunningChild(t *testing.T) {
	p, fs := newFakeProcess(t, []string{"a"}, []string{"A=1"})
	require.NoError(t, p.Launch())

	p.Free()

	assert.Equal(t, []int{4242}, fs.killed)
	assert.Equal(t, Freed, p.State())
	assert.Empty(t, p.Path())
	assert.Nil(t, p.Args())
	assert.Nil(t, p.Env())
	assert.Nil(t, p.Stdout())

	p.AddArg("ignored")
	p.AddEnvs("IGNORED=1")
	assert.Nil(t, p.Args())
	assert.Nil(t, p.Env())

	assert.ErrorIs(t, p.Launch(), ErrFreed)
	assert.Len(t, fs.spawns, 1)

	// A second Free does nothing.
	p.Free()
	assert.Len(t, fs.killed, 1)
}

func TestFreeNilHandle(t *testing.T) {
	var p *Process
	assert.NotPanics(t, p.Free)
}

func TestLaunchMetrics(t *testing.T) {
	success := testutil.ToFloat64(launchesTotal.WithLabelValues(resultSuccess))
	rejected := testutil.ToFloat64(launchesTotal.WithLabelValues(resultRejected))
	spawnErrors := testutil.ToFloat64(launchesTotal.WithLabelValues(resultSpawnError))
	kills := testutil.ToFloat64(killsTotal)
	closes := testutil.ToFloat64(closesTotal)

	p, fs := newFakeProcess(t, nil, nil)
	require.NoError(t, p.Launch())
	require.Error(t, p.Launch())
	require.NoError(t, p.Close())

	fs.spawnErr = errors.New("boom")
	require.Error(t, p.Launch())

	assert.Equal(t, success+1, testutil.ToFloat64(launchesTotal.WithLabelValues(resultSuccess)))
	assert.Equal(t, rejected+1, testutil.ToFloat64(launchesTotal.WithLabelValues(resultRejected)))
	assert.Equal(t, spawnErrors+1, testutil.ToFloat64(launchesTotal.WithLabelValues(resultSpawnError)))
	assert.Equal(t, kills+1, testutil.ToFloat64(killsTotal))
	assert.Equal(t, closes+1, testutil.ToFloat64(closesTotal))
}

func TestLaunchLogsWithHandleFields(t *testing.T) {
	var buf bytes.Buffer
	logutil.SetupLoggerWithWriter(&buf, true, false)
	t.Cleanup(func() { logutil.SetupLogger(false, false) })

	p, _ := newFakeProcess(t, nil, nil)
	require.NoError(t, p.Launch())

	out := buf.String()
	assert.Contains(t, out, "component=process")
	assert.Contains(t, out, "id="+p.ID())
	assert.Contains(t, out, "msg=launched")
	assert.Contains(t, out, "pid=4242")
}
