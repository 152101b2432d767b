package ui

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
)

// ASCII logo for the application
const ASCIILogo = `
    ╔═══════════════════════════════════════════════╗
    ║  ██╗     ███████╗███████╗████████╗██████╗ ██╗   ║
    ║  ██║     ██╔════╝██╔════╝╚══██╔══╝██╔══██╗██║   ║
    ║  ██║     █████╗  █████╗     ██║   ██║  ██║██║   ║
    ║  ██║     ██╔══╝  ██╔══╝     ██║   ██║  ██║██║   ║
    ║  ███████╗███████╗███████╗   ██║   ██████╔╝█████╗║
    ║  ╚══════╝╚══════╝╚══════╝   ╚═╝   ╚═════╝ ╚════╝║
    ║        ACCEPTED SUBMISSION ARCHIVER             ║
    ╚═══════════════════════════════════════════════╝
`

// Color functions for terminal output
var (
	Cyan    = colorize("\033[36m%s\033[0m")
	Yellow  = colorize("\033[33m%s\033[0m")
	Red     = colorize("\033[31m%s\033[0m")
	Green   = colorize("\033[32m%s\033[0m")
	Magenta = colorize("\033[35m%s\033[0m")
	Dim     = colorize("\033[2m%s\033[0m")
)

var (
	quiet  atomic.Bool
	output io.Writer = os.Stdout
)

// SetQuietMode suppresses everything except errors
func SetQuietMode(q bool) {
	quiet.Store(q)
}

// IsQuietMode reports whether quiet mode is on
func IsQuietMode() bool {
	return quiet.Load()
}

// SetOutput redirects terminal output, mainly for tests
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	output = w
}

// Output returns the writer terminal output goes to
func Output() io.Writer {
	return output
}

// colorize returns a function that wraps text with ANSI color codes
func colorize(colorString string) func(string) string {
	return func(text string) string {
		return fmt.Sprintf(colorString, text)
	}
}

// PrintLogo prints the ASCII logo with color
func PrintLogo() {
	if IsQuietMode() {
		return
	}
	fmt.Fprint(output, Cyan(ASCIILogo))
}

// PrintError prints an error message in red. Errors are printed in quiet mode too.
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		fmt.Fprintln(output, Red(msg+": "+fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Fprintln(output, Red(msg))
	}
}

// PrintSuccess prints a success message in green
func PrintSuccess(msg string) {
	if IsQuietMode() {
		return
	}
	fmt.Fprintln(output, Green(msg))
}

// PrintInfo prints a label/value pair
func PrintInfo(label string, value string) {
	if IsQuietMode() {
		return
	}
	fmt.Fprintf(output, "%s: %s\n", Cyan(label), Yellow(value))
}

// PrintWarning prints a warning message in yellow
func PrintWarning(msg string, args ...interface{}) {
	if IsQuietMode() {
		return
	}
	if len(args) > 0 {
		fmt.Fprintln(output, Yellow(msg+": "+fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Fprintln(output, Yellow(msg))
	}
}

// PrintHighlight prints a highlighted message in magenta
func PrintHighlight(msg string) {
	if IsQuietMode() {
		return
	}
	fmt.Fprintln(output, Magenta(msg))
}
