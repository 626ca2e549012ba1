package cliout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/term"
)

// Format represents the output format.
type Format string

const (
	// FormatDefault is the default human-readable format.
	FormatDefault Format = "default"
	// FormatJSON is JSON format.
	FormatJSON Format = "json"
)

// ANSI color codes for consistent styling
const (
	Reset        = "\033[0m"
	Bold         = "\033[1m"
	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
)

// Unicode symbols and their ASCII fallbacks
const (
	SymbolCheck   = "✓"
	SymbolCross   = "✗"
	SymbolWarning = "⚠"

	ASCIICheck   = "[+]"
	ASCIICross   = "[-]"
	ASCIIWarning = "[!]"
)

// ParseFormat validates an --output value. An empty value selects the default.
func ParseFormat(format string) (Format, error) {
	switch format {
	case "default", "":
		return FormatDefault, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid output format: %s (valid options: default, json)", format)
	}
}

// Printer writes styled status lines to a single writer. Color is only used
// when the writer is a terminal and NO_COLOR is unset.
type Printer struct {
	w       io.Writer
	color   bool
	unicode bool
}

// New returns a Printer for w.
func New(w io.Writer) *Printer {
	return &Printer{
		w:       w,
		color:   isTerminal(w) && os.Getenv("NO_COLOR") == "",
		unicode: detectUnicodeSupport(),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 - descriptors fit in int
}

// detectUnicodeSupport checks if the terminal can display Unicode properly
func detectUnicodeSupport() bool {
	if runtime.GOOS != "windows" {
		return true
	}
	// Windows Terminal, VS Code and ConEmu handle Unicode; the legacy console does not.
	return os.Getenv("WT_SESSION") != "" ||
		os.Getenv("TERM_PROGRAM") == "vscode" ||
		os.Getenv("ConEmuPID") != "" ||
		os.Getenv("TERM") != ""
}

func (p *Printer) line(color, unicode, ascii, format string, args ...any) {
	icon := ascii
	if p.unicode {
		icon = unicode
	}
	msg := fmt.Sprintf(format, args...)
	if p.color {
		_, _ = fmt.Fprintf(p.w, "%s%s%s %s\n", color, icon, Reset, msg)
		return
	}
	_, _ = fmt.Fprintf(p.w, "%s %s\n", icon, msg)
}

// Success prints a success message with green checkmark
func (p *Printer) Success(format string, args ...any) {
	p.line(BrightGreen, SymbolCheck, ASCIICheck, format, args...)
}

// Error prints an error message with red X
func (p *Printer) Error(format string, args ...any) {
	p.line(BrightRed, SymbolCross, ASCIICross, format, args...)
}

// Warning prints a warning message with yellow triangle
func (p *Printer) Warning(format string, args ...any) {
	p.line(BrightYellow, SymbolWarning, ASCIIWarning, format, args...)
}

// Label prints a bold, aligned label followed by its value.
func (p *Printer) Label(label, value string) {
	if p.color {
		_, _ = fmt.Fprintf(p.w, "  %s%-11s%s %s\n", Bold, label+":", Reset, value)
		return
	}
	_, _ = fmt.Fprintf(p.w, "  %-11s %s\n", label+":", value)
}

// Plain prints an unstyled line.
func (p *Printer) Plain(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

// JSON writes data as indented JSON.
func (p *Printer) JSON(data any) error {
	encoder := json.NewEncoder(p.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
