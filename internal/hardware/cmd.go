package hardware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/markusressel/bed2go/internal/util"
)

const cmdTimeout = 2 * time.Second

// CmdAnalogInput runs an executable which prints the raw sample to stdout
type CmdAnalogInput struct {
	Exec string
	Args []string
}

func (in *CmdAnalogInput) ReadRaw() (int, error) {
	result, err := util.SafeCmdExecution(context.Background(), in.Exec, in.Args, cmdTimeout)
	if err != nil {
		return 0, fmt.Errorf("analog input %s: %w", in.Exec, err)
	}
	value, err := strconv.Atoi(result)
	if err != nil {
		return 0, fmt.Errorf("analog input %s: unable to parse command output '%s': %w", in.Exec, result, err)
	}
	return value, nil
}

// CmdDigitalOutput runs an executable with the level ("0" or "1") appended to its arguments
type CmdDigitalOutput struct {
	Exec string
	Args []string
}

func (out *CmdDigitalOutput) Write(high bool) error {
	level := "0"
	if high {
		level = "1"
	}
	args := append(append([]string{}, out.Args...), level)
	if _, err := util.SafeCmdExecution(context.Background(), out.Exec, args, cmdTimeout); err != nil {
		return fmt.Errorf("digital output %s: %w", out.Exec, err)
	}
	return nil
}

// CmdPulseInput runs an executable which prints the pulse width in microseconds.
// The command is killed when the context is done.
type CmdPulseInput struct {
	Exec string
	Args []string
}

func (in *CmdPulseInput) MeasurePulse(ctx context.Context) (time.Duration, error) {
	timeout := cmdTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	result, err := util.SafeCmdExecution(ctx, in.Exec, in.Args, timeout)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ErrNoPulse
		}
		return 0, fmt.Errorf("pulse input %s: %w", in.Exec, err)
	}
	value, err := strconv.Atoi(result)
	if err != nil {
		return 0, fmt.Errorf("pulse input %s: unable to parse command output '%s': %w", in.Exec, result, err)
	}
	if value <= 0 {
		return 0, ErrNoPulse
	}
	return time.Duration(value) * time.Microsecond, nil
}

// CmdPwmOutput runs an executable with the duty value appended to its arguments
type CmdPwmOutput struct {
	Exec string
	Args []string
}

func (out *CmdPwmOutput) SetDuty(value int) error {
	args := append(append([]string{}, out.Args...), strconv.Itoa(value))
	if _, err := util.SafeCmdExecution(context.Background(), out.Exec, args, cmdTimeout); err != nil {
		return fmt.Errorf("pwm output %s: %w", out.Exec, err)
	}
	return nil
}
