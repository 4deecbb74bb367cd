package hardware

import (
	"errors"
	"time"

	"github.com/markusressel/bed2go/internal/configuration"
)

var errIoMissing = errors.New("io sub-configuration is missing")

// NewAnalogInput creates the analog input described by the given config
func NewAnalogInput(config configuration.IoConfig) (AnalogInput, error) {
	switch {
	case config.File != nil:
		return &FileAnalogInput{Path: config.File.Path}, nil
	case config.Cmd != nil:
		return &CmdAnalogInput{Exec: config.Cmd.Exec, Args: config.Cmd.Args}, nil
	case config.Virtual != nil:
		return NewVirtualAnalogInput(config.Virtual.Value), nil
	}
	return nil, errIoMissing
}

// NewDigitalOutput creates the digital output described by the given config.
// A virtual output starts at the given idle level.
func NewDigitalOutput(config configuration.IoConfig, idleHigh bool) (DigitalOutput, error) {
	switch {
	case config.File != nil:
		return &FileDigitalOutput{Path: config.File.Path}, nil
	case config.Cmd != nil:
		return &CmdDigitalOutput{Exec: config.Cmd.Exec, Args: config.Cmd.Args}, nil
	case config.Virtual != nil:
		return NewVirtualDigitalOutput(idleHigh), nil
	}
	return nil, errIoMissing
}

// NewPulseInput creates the pulse input described by the given config.
// The value of a virtual input is the pulse width in microseconds.
func NewPulseInput(config configuration.IoConfig) (PulseInput, error) {
	switch {
	case config.File != nil:
		return &FilePulseInput{Path: config.File.Path}, nil
	case config.Cmd != nil:
		return &CmdPulseInput{Exec: config.Cmd.Exec, Args: config.Cmd.Args}, nil
	case config.Virtual != nil:
		return NewVirtualPulseInput(time.Duration(config.Virtual.Value) * time.Microsecond), nil
	}
	return nil, errIoMissing
}

// NewPwmOutput creates the pwm output described by the given config
func NewPwmOutput(config configuration.IoConfig) (PwmOutput, error) {
	switch {
	case config.File != nil:
		return &FilePwmOutput{Path: config.File.Path, Atomic: config.File.Atomic}, nil
	case config.Cmd != nil:
		return &CmdPwmOutput{Exec: config.Cmd.Exec, Args: config.Cmd.Args}, nil
	case config.Virtual != nil:
		return NewVirtualPwmOutput(), nil
	}
	return nil, errIoMissing
}
