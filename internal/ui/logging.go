package ui

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/pterm/pterm"
)

// debugEnabled gates Debug. The pterm flag itself is only written once on startup,
// since it is read unsynchronized by every pterm printer.
var debugEnabled atomic.Bool

func init() {
	pterm.PrintDebugMessages = true
}

// SetDebugEnabled switches debug output on or off, it is safe for concurrent use
func SetDebugEnabled(enabled bool) {
	debugEnabled.Store(enabled)
}

func DebugEnabled() bool {
	return debugEnabled.Load()
}

func Printf(format string, a ...interface{}) {
	pterm.Printf(format, a...)
}

func Printfln(format string, a ...interface{}) {
	pterm.Printfln(format, a...)
}

func Debug(format string, a ...interface{}) {
	if !debugEnabled.Load() {
		return
	}
	pterm.Debug.Printfln(format, a...)
}

func Info(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

func Success(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

func Warning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

func Error(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// ErrorAndNotify logs the given error and additionally tries to
// show a desktop notification to the user of the current display session.
func ErrorAndNotify(title string, format string, a ...interface{}) {
	text := fmt.Sprintf(format, a...)
	Error("%s: %s", title, text)
	NotifyError(title, text)
}

func Fatal(format string, a ...interface{}) {
	pterm.Fatal.Printfln(format, a...)
}

// FatalWithoutStacktrace prints the given message and exits without
// pterm printing a stacktrace, which is only noise for configuration errors.
func FatalWithoutStacktrace(format string, a ...interface{}) {
	pterm.Fatal.WithFatal(false).Printfln(format, a...)
	os.Exit(1)
}
