// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ClayFreeman/procmanage/cliout"
	"github.com/ClayFreeman/procmanage/logutil"
	"github.com/ClayFreeman/procmanage/manifest"
)

const (
	// exitTimeout and exitInterrupted follow timeout(1) and the shell's 128+SIGINT.
	exitTimeout     = 124
	exitInterrupted = 130
	// exitSignaled is reported when the child was killed by a signal.
	exitSignaled = 1
)

var (
	// pollInterval is how often a running child is checked for exit.
	pollInterval = 50 * time.Millisecond
	// drainGrace bounds how long output is relayed after the child exits.
	drainGrace = 500 * time.Millisecond
)

type runOptions struct {
	env         []string
	envFiles    []string
	inheritEnv  bool
	manifest    string
	timeout     time.Duration
	metricsAddr string
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run [flags] -- PATH [ARGS...]",
		Short: "Launch a child process and relay its standard streams",
		Long: `Launch a child process connected to procmanage through pipes.

Standard input is forwarded to the child unless it is a terminal. The child's
standard output and error are copied to procmanage's own. procmanage exits
with the child's exit code; on timeout or interrupt the child is killed.

The environment is empty unless --inherit-env is set. Sources are applied in
order with later ones winning: inherited environment, --env-file, --env.

With --manifest, PATH comes from the manifest and positional arguments are
appended to the manifest's arguments.`,
		Example: `  procmanage run -- echo hello
  procmanage run --inherit-env --env GREETING=hi -- sh -c 'echo $GREETING'
  procmanage run --manifest job.yaml --timeout 30s
  procmanage run --metrics-addr 127.0.0.1:9464 -- ./server`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.buildManifest(args)
			if err != nil {
				return err
			}
			return runChild(cmd, m, &opts)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&opts.env, "env", "e", nil, "Environment entry KEY=VALUE for the child (repeatable)")
	flags.StringArrayVar(&opts.envFiles, "env-file", nil, "Dotenv file to load into the child's environment (repeatable)")
	flags.BoolVar(&opts.inheritEnv, "inherit-env", false, "Start from procmanage's own environment")
	flags.StringVarP(&opts.manifest, "manifest", "m", "", "YAML manifest describing the child")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Kill the child after this duration (0 disables)")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics at /metrics on this address while the child runs")

	return cmd
}

// buildManifest merges the manifest file, if any, with the command line.
func (o *runOptions) buildManifest(args []string) (*manifest.Manifest, error) {
	m := &manifest.Manifest{}
	if o.manifest != "" {
		loaded, err := manifest.Load(o.manifest)
		if err != nil {
			return nil, err
		}
		m = loaded
		m.Args = append(m.Args, args...)
	} else {
		if len(args) == 0 {
			return nil, errors.New("a binary path is required (procmanage run -- PATH [ARGS...])")
		}
		m.Path = args[0]
		m.Args = args[1:]
	}

	for _, f := range o.envFiles {
		// Command-line files are relative to the working directory, not the manifest.
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("cannot resolve env file %s: %w", f, err)
		}
		m.EnvFiles = append(m.EnvFiles, abs)
	}
	m.Env = append(m.Env, o.env...)
	m.InheritEnv = m.InheritEnv || o.inheritEnv

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func runChild(cmd *cobra.Command, m *manifest.Manifest, opts *runOptions) error {
	log := logutil.NewLogger("cli").WithOperation("run")
	timeout := opts.timeout

	p, err := m.Process()
	if err != nil {
		return err
	}
	defer p.Free()

	if opts.metricsAddr != "" {
		addr, stop, err := serveMetrics(opts.metricsAddr)
		if err != nil {
			return err
		}
		defer stop()
		logutil.Info("serving metrics", "addr", addr.String())
	}

	if err := p.Launch(); err != nil {
		return err
	}
	log = log.WithFields("pid", p.PID(), "path", p.Path())
	log.Debug("child started", "args", p.Args())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	forwardInput(cmd.InOrStdin(), p.Stdin(), log)

	var copies sync.WaitGroup
	relay(&copies, cmd.OutOrStdout(), p.Stdout(), "stdout", log)
	relay(&copies, cmd.ErrOrStderr(), p.Stderr(), "stderr", log)
	drained := make(chan struct{})
	go func() {
		copies.Wait()
		close(drained)
	}()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := p.Close(); err != nil {
				log.Warn("close failed", "error", err)
			}
			<-drained
			return canceled(ctx, cmd, p.Path(), timeout)

		case <-ticker.C:
			if p.Alive() {
				continue
			}
			// Output still buffered in the pipes must be copied before Wait
			// closes them. A background grandchild can hold the pipes open
			// indefinitely, so the drain is bounded.
			grace := time.NewTimer(drainGrace)
			select {
			case <-drained:
			case <-grace.C:
				log.Debug("output still open after exit, closing", "grace", drainGrace)
			case <-ctx.Done():
			}
			grace.Stop()

			code, err := p.Wait()
			<-drained
			if ctx.Err() != nil {
				return canceled(ctx, cmd, p.Path(), timeout)
			}
			if err != nil {
				return err
			}
			log.Debug("child exited", "code", code)
			if code < 0 {
				code = exitSignaled
			}
			if code != 0 {
				return &exitError{code: code}
			}
			return nil
		}
	}
}

// canceled reports a child killed because ctx ended.
func canceled(ctx context.Context, cmd *cobra.Command, path string, timeout time.Duration) error {
	status := cliout.New(cmd.ErrOrStderr())
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		status.Warning("%s timed out after %s and was killed", path, timeout)
		return &exitError{code: exitTimeout}
	}
	status.Warning("interrupted, %s was killed", path)
	return &exitError{code: exitInterrupted}
}

// forwardInput copies in to the child's stdin and closes it at EOF. A
// terminal is not forwarded; the child sees EOF immediately.
func forwardInput(in io.Reader, stdin *os.File, log *logutil.ComponentLogger) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		log.Debug("stdin is a terminal, not forwarding")
		_ = stdin.Close()
		return
	}

	go func() {
		if _, err := io.Copy(stdin, in); err != nil && !errors.Is(err, os.ErrClosed) && !errors.Is(err, syscall.EPIPE) {
			log.Debug("stdin forwarding stopped", "error", err)
		}
		_ = stdin.Close()
	}()
}

func relay(wg *sync.WaitGroup, dst io.Writer, src *os.File, name string, log *logutil.ComponentLogger) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := io.Copy(dst, src); err != nil && !errors.Is(err, os.ErrClosed) {
			log.Debug("relay stopped", "stream", name, "error", err)
		}
	}()
}
