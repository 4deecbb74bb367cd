// Package setpoint decodes the target temperatures sent by the host controller as pwm signals.
package setpoint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/markusressel/bed2go/internal/hardware"
	"github.com/markusressel/bed2go/internal/sensors"
	"github.com/markusressel/bed2go/internal/signal"
)

var (
	ErrSignalTimeout    = errors.New("no setpoint signal")
	ErrSignalOutOfRange = errors.New("setpoint signal out of range")
	ErrNoSetpointInput  = errors.New("section has no setpoint input")
)

// RangeSource provides the currently configured signal range
type RangeSource func() signal.Range

// Reader measures the setpoint pulse of every section. The pulse width in
// microseconds is interpreted as pwm value of the signal range.
type Reader struct {
	inputs  map[int]hardware.PulseInput
	timeout time.Duration
	ranges  RangeSource
}

func NewReader(inputs map[int]hardware.PulseInput, timeout time.Duration, ranges RangeSource) *Reader {
	return &Reader{
		inputs:  inputs,
		timeout: timeout,
		ranges:  ranges,
	}
}

// HasInput returns true if the given section has a setpoint input
func (r *Reader) HasInput(section int) bool {
	_, ok := r.inputs[section]
	return ok
}

// ReadTarget waits at most the configured timeout for a pulse on the input of the given
// section and returns the target temperature it encodes. On error FaultTemperature is returned.
func (r *Reader) ReadTarget(ctx context.Context, section int) (float64, error) {
	input, ok := r.inputs[section]
	if !ok {
		return sensors.FaultTemperature, fmt.Errorf("%w: %d", ErrNoSetpointInput, section)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	width, err := input.MeasurePulse(ctx)
	if err != nil {
		if errors.Is(err, hardware.ErrNoPulse) {
			return sensors.FaultTemperature, ErrSignalTimeout
		}
		return sensors.FaultTemperature, fmt.Errorf("%w: %w", ErrSignalTimeout, err)
	}

	signalRange := r.ranges()
	pwm := float64(width.Microseconds())
	if !signalRange.Contains(pwm) {
		return sensors.FaultTemperature, fmt.Errorf("%w: %.0f not in %d-%d", ErrSignalOutOfRange, pwm, signalRange.PwmMin, signalRange.PwmMax)
	}
	return signalRange.ToTemperature(pwm), nil
}
