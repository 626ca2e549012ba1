// Package cliout formats command output for procmanage's CLI.
//
// A [Printer] is bound to one writer, usually a command's stdout or stderr,
// and prints status lines with a leading icon:
//
//	out := cliout.New(cmd.ErrOrStderr())
//	out.Error("launch failed: %v", err)
//	out.Warning("child timed out after %s", timeout)
//
// ANSI colors are emitted only when the writer is a terminal and NO_COLOR is
// unset, so captured output stays plain. Icons fall back to ASCII on legacy
// Windows consoles.
//
// [ParseFormat] validates the --output flag; [Printer.JSON] renders the json
// format.
package cliout
