package util

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/markusressel/bed2go/internal/ui"
)

var ErrCommandTimeout = errors.New("command timed out")

// SafeCmdExecution runs the given executable, after checking that it can't be tampered
// with by non-root users, and returns its trimmed stdout.
func SafeCmdExecution(ctx context.Context, executable string, args []string, timeout time.Duration) (string, error) {
	if _, err := CheckFilePermissionsForExecution(executable); err != nil {
		return "", fmt.Errorf("cannot execute %s: %w", executable, err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, executable, args...)
	out, err := cmd.Output()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		ui.Warning("Command timed out: %s", executable)
		return "", fmt.Errorf("%s: %w", executable, ErrCommandTimeout)
	}

	if err != nil {
		ui.Warning("Command failed to execute: %s", executable)
		return "", err
	}

	return strings.TrimSpace(string(out)), nil
}
