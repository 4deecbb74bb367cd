// Package hardware contains the narrow contracts between the control engine and the
// physical board: analog inputs for the thermistors, digital outputs for the relays,
// pulse inputs for the host setpoints and pwm outputs for the temperature feedback.
package hardware

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNoPulse is returned by a PulseInput when no pulse was seen within the allowed time
	ErrNoPulse = errors.New("no pulse detected")
)

// AnalogInput is a single ADC channel
type AnalogInput interface {
	// ReadRaw takes one raw sample
	ReadRaw() (int, error)
}

// DigitalOutput is a single output pin. Level true means logic HIGH.
type DigitalOutput interface {
	Write(high bool) error
}

// PulseInput measures the width of the next high pulse of a pwm signal
type PulseInput interface {
	// MeasurePulse waits for a pulse until the given context is done
	// and returns ErrNoPulse if none was seen.
	MeasurePulse(ctx context.Context) (time.Duration, error)
}

// PwmOutput drives a pwm signal with the given duty value
type PwmOutput interface {
	SetDuty(value int) error
}
