// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ClayFreeman/procmanage/cliout"
	"github.com/ClayFreeman/procmanage/logutil"
	"github.com/ClayFreeman/procmanage/version"
)

const appName = "procmanage"

// exitError carries the child's status out of a command without printing it.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

type globalFlags struct {
	debug     bool
	logLevel  string
	logFormat string
	output    string
}

func (g *globalFlags) addTo(flags *pflag.FlagSet) {
	flags.BoolVar(&g.debug, "debug", false, "Enable debug logging (same as --log-level debug)")
	flags.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&g.logFormat, "log-format", "text", "Log format: text or json")
	flags.StringVarP(&g.output, "output", "o", "", "Output format for informational commands (json)")
}

func (g *globalFlags) setupLogging(cmd *cobra.Command, _ []string) error {
	switch g.logFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q (want text or json)", g.logFormat)
	}
	switch strings.ToLower(g.logLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log level %q (want debug, info, warn or error)", g.logLevel)
	}

	logutil.SetupLoggerWithWriter(cmd.ErrOrStderr(), g.debug, g.logFormat == "json")
	if g.logLevel != "" && !g.debug {
		logutil.SetLevel(logutil.ParseLevel(g.logLevel))
	}
	logutil.Debug("logging configured", "level", logutil.GetLevel().String(), "format", g.logFormat)
	return nil
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:               appName,
		Short:             "Launch and supervise a child process over pipes",
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: flags.setupLogging,
	}
	flags.addTo(cmd.PersistentFlags())

	cmd.AddCommand(
		newRunCmd(),
		version.NewCommand(version.New(appName), &flags.output),
	)
	return cmd
}

// execute runs the CLI and returns the process exit code.
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	cliout.New(stderr).Error("%v", err)
	return 1
}
