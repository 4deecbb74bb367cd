package hardware

import (
	"context"
	"fmt"
	"time"

	"github.com/markusressel/bed2go/internal/util"
)

// FileAnalogInput reads raw samples from a file, e.g. an IIO "in_voltageX_raw" attribute
type FileAnalogInput struct {
	Path string
}

func (in *FileAnalogInput) ReadRaw() (int, error) {
	value, err := util.ReadIntFromFile(in.Path)
	if err != nil {
		return 0, fmt.Errorf("analog input %s: %w", in.Path, err)
	}
	return value, nil
}

// FileDigitalOutput writes 0/1 to a file, e.g. a sysfs gpio "value" attribute
type FileDigitalOutput struct {
	Path string
}

func (out *FileDigitalOutput) Write(high bool) error {
	value := 0
	if high {
		value = 1
	}
	if err := util.WriteIntToFile(value, out.Path); err != nil {
		return fmt.Errorf("digital output %s: %w", out.Path, err)
	}
	return nil
}

// FilePulseInput reads the last captured pulse width in microseconds from a file,
// which is maintained by an external capture driver. A value <= 0 means no pulse.
type FilePulseInput struct {
	Path string
}

func (in *FilePulseInput) MeasurePulse(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, ErrNoPulse
	}
	value, err := util.ReadIntFromFile(in.Path)
	if err != nil {
		return 0, fmt.Errorf("pulse input %s: %w", in.Path, err)
	}
	if value <= 0 {
		return 0, ErrNoPulse
	}
	return time.Duration(value) * time.Microsecond, nil
}

// FilePwmOutput writes the duty value to a file, e.g. a sysfs pwm "duty_cycle" attribute
type FilePwmOutput struct {
	Path string
	// Atomic replaces the file instead of writing in place, use this for regular
	// files which are polled by another process
	Atomic bool
}

func (out *FilePwmOutput) SetDuty(value int) (err error) {
	if out.Atomic {
		err = util.WriteIntToFileAtomic(value, out.Path)
	} else {
		err = util.WriteIntToFile(value, out.Path)
	}
	if err != nil {
		return fmt.Errorf("pwm output %s: %w", out.Path, err)
	}
	return nil
}
