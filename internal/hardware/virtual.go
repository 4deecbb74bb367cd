package hardware

import (
	"context"
	"errors"
	"sync"
	"time"
)

// VirtualAnalogInput returns whatever raw value was set last.
// It is used for dry runs without a board and as a test double.
type VirtualAnalogInput struct {
	mu    sync.Mutex
	raw   int
	err   error
	reads int
}

func NewVirtualAnalogInput(raw int) *VirtualAnalogInput {
	return &VirtualAnalogInput{raw: raw}
}

func (in *VirtualAnalogInput) ReadRaw() (int, error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.reads++
	return in.raw, in.err
}

func (in *VirtualAnalogInput) Set(raw int) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.raw = raw
	in.err = nil
}

func (in *VirtualAnalogInput) Fail(err error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.err = err
}

// Reads returns how often the input has been sampled
func (in *VirtualAnalogInput) Reads() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.reads
}

type VirtualDigitalOutput struct {
	mu     sync.Mutex
	high   bool
	writes int
	err    error
}

// NewVirtualDigitalOutput creates an output with the given initial level
func NewVirtualDigitalOutput(high bool) *VirtualDigitalOutput {
	return &VirtualDigitalOutput{high: high}
}

func (out *VirtualDigitalOutput) Write(high bool) error {
	out.mu.Lock()
	defer out.mu.Unlock()
	if out.err != nil {
		return out.err
	}
	out.high = high
	out.writes++
	return nil
}

func (out *VirtualDigitalOutput) High() bool {
	out.mu.Lock()
	defer out.mu.Unlock()
	return out.high
}

func (out *VirtualDigitalOutput) Writes() int {
	out.mu.Lock()
	defer out.mu.Unlock()
	return out.writes
}

// Fail makes all following writes fail with the given error, nil restores normal operation
func (out *VirtualDigitalOutput) Fail(err error) {
	out.mu.Lock()
	defer out.mu.Unlock()
	out.err = err
}

// VirtualPulseInput reports a fixed pulse width, a width <= 0 simulates a missing signal
// which blocks until the context is done, like a real pulse measurement would.
type VirtualPulseInput struct {
	mu    sync.Mutex
	width time.Duration
}

func NewVirtualPulseInput(width time.Duration) *VirtualPulseInput {
	return &VirtualPulseInput{width: width}
}

func (in *VirtualPulseInput) Set(width time.Duration) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.width = width
}

func (in *VirtualPulseInput) MeasurePulse(ctx context.Context) (time.Duration, error) {
	in.mu.Lock()
	width := in.width
	in.mu.Unlock()

	if width > 0 {
		return width, nil
	}

	<-ctx.Done()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return 0, ErrNoPulse
	}
	return 0, ctx.Err()
}

type VirtualPwmOutput struct {
	mu     sync.Mutex
	duty   int
	writes int
}

func NewVirtualPwmOutput() *VirtualPwmOutput {
	return &VirtualPwmOutput{duty: -1}
}

func (out *VirtualPwmOutput) SetDuty(value int) error {
	out.mu.Lock()
	defer out.mu.Unlock()
	out.duty = value
	out.writes++
	return nil
}

// Duty returns the last written duty value, or -1 if nothing has been written yet
func (out *VirtualPwmOutput) Duty() int {
	out.mu.Lock()
	defer out.mu.Unlock()
	return out.duty
}
