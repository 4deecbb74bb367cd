package ui

import (
	"io"
	"os"
	"sync"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func ExamplePrintfln() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "This is a test %d"
	a := 5
	Printfln(msg, a)
	// Output:
	// This is a test 5
}

func ExampleDebug() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()
	SetDebugEnabled(true)

	msg := "This is a test: %d"
	a := 5
	Debug(msg, a)
	// Output:
	// DEBUG: This is a test: 5
}

func ExampleSetDebugEnabled() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()
	SetDebugEnabled(false)

	Debug("hidden")
	Info("shown")
	// Output:
	// INFO: shown
}

func ExampleInfo() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "This is a test: %d"
	a := 5
	Info(msg, a)
	// Output:
	// INFO: This is a test: 5
}

func ExampleWarning() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "This is a test: %d"
	a := 5
	Warning(msg, a)
	// Output:
	// WARNING: This is a test: 5
}

func ExampleError() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "This is a test: %v"
	a := os.ErrClosed
	Error(msg, a)
	// Output:
	// ERROR: This is a test: file already closed
}

func TestParseDisplayUser(t *testing.T) {
	// GIVEN
	who := "root     tty1         2026-10-17 09:12\n" +
		"markus   :0           2026-10-17 09:13 (:0)\n"

	// WHEN
	user := parseDisplayUser(who, ":0")

	// THEN
	assert.Equal(t, "markus", user)
}

func TestParseDisplayUser_NoMatch(t *testing.T) {
	// GIVEN
	who := "root     tty1         2026-10-17 09:12\n"

	// WHEN
	user := parseDisplayUser(who, ":1")

	// THEN
	assert.Equal(t, "", user)
}

func TestSetDebugEnabledWhileLogging(t *testing.T) {
	// GIVEN
	pterm.SetDefaultOutput(io.Discard)
	defer pterm.SetDefaultOutput(os.Stdout)
	var wg sync.WaitGroup

	// WHEN
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(enabled bool) {
			defer wg.Done()
			SetDebugEnabled(enabled)
		}(i%2 == 0)
		go func() {
			defer wg.Done()
			Debug("message %d", 1)
		}()
	}
	wg.Wait()
	SetDebugEnabled(true)

	// THEN
	assert.True(t, DebugEnabled())
}
