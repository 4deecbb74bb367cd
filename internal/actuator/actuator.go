// Package actuator owns the relays of all heating segments.
package actuator

import (
	"errors"
	"fmt"

	"github.com/markusressel/bed2go/internal/configuration"
	"github.com/markusressel/bed2go/internal/hardware"
	"github.com/markusressel/bed2go/internal/ui"
)

var (
	ErrSafetyLatched   = errors.New("system in thermal safety state")
	ErrInvalidChannel  = errors.New("invalid channel")
	ErrChannelInactive = errors.New("channel is not active")
)

// Interlock gates the energizing of relays
type Interlock interface {
	Triggered() bool
}

// Actuator keeps the active flag and the relay state of every channel.
// A channel is "active" if it is enabled by a command and "heating" if its relay is energized.
// An Actuator is not safe for concurrent use.
type Actuator struct {
	outputs   []hardware.DigitalOutput
	activeLow bool
	interlock Interlock

	active  []bool
	heating []bool
}

func New(outputs []hardware.DigitalOutput, polarity configuration.RelayPolarity, interlock Interlock) *Actuator {
	return &Actuator{
		outputs:   outputs,
		activeLow: polarity != configuration.PolarityActiveHigh,
		interlock: interlock,
		active:    make([]bool, len(outputs)),
		heating:   make([]bool, len(outputs)),
	}
}

// IdleHigh returns the output level of a de-energized relay for the given polarity
func IdleHigh(polarity configuration.RelayPolarity) bool {
	return polarity != configuration.PolarityActiveHigh
}

// level returns the output level that energizes (on) or de-energizes the relay
func (a *Actuator) level(on bool) bool {
	if a.activeLow {
		return !on
	}
	return on
}

func (a *Actuator) drive(channel int, on bool) error {
	if err := a.outputs[channel].Write(a.level(on)); err != nil {
		return fmt.Errorf("channel %d: %w", channel+1, err)
	}
	a.heating[channel] = on
	return nil
}

func (a *Actuator) checkChannel(channel int) error {
	if channel < 0 || channel >= len(a.outputs) {
		return fmt.Errorf("%w: %d", ErrInvalidChannel, channel)
	}
	return nil
}

func (a *Actuator) latched() bool {
	return a.interlock != nil && a.interlock.Triggered()
}

// Init de-energizes all relays and clears all active flags
func (a *Actuator) Init() error {
	return a.DeactivateAll()
}

// Activate enables the given channel and energizes its relay
func (a *Actuator) Activate(channel int) error {
	if err := a.checkChannel(channel); err != nil {
		return err
	}
	if a.latched() {
		return ErrSafetyLatched
	}
	if err := a.drive(channel, true); err != nil {
		return err
	}
	a.active[channel] = true
	return nil
}

// Deactivate disables the given channel and de-energizes its relay.
// The channel is disabled even if the relay could not be written.
func (a *Actuator) Deactivate(channel int) error {
	if err := a.checkChannel(channel); err != nil {
		return err
	}
	a.active[channel] = false
	err := a.drive(channel, false)
	if err != nil {
		ui.Error("Unable to switch off %v", err)
	}
	return err
}

func (a *Actuator) ActivateAll() error {
	if a.latched() {
		return ErrSafetyLatched
	}
	var errs []error
	for channel := range a.outputs {
		errs = append(errs, a.Activate(channel))
	}
	return errors.Join(errs...)
}

// DeactivateAll de-energizes every relay, it is always permitted
func (a *Actuator) DeactivateAll() error {
	var errs []error
	for channel := range a.outputs {
		errs = append(errs, a.Deactivate(channel))
	}
	return errors.Join(errs...)
}

// SetHeating energizes or de-energizes the relay of an active channel
// without changing its active flag.
func (a *Actuator) SetHeating(channel int, on bool) error {
	if err := a.checkChannel(channel); err != nil {
		return err
	}
	if on {
		if a.latched() {
			return ErrSafetyLatched
		}
		if !a.active[channel] {
			return fmt.Errorf("%w: %d", ErrChannelInactive, channel+1)
		}
	}
	if a.heating[channel] == on {
		return nil
	}
	return a.drive(channel, on)
}

func (a *Actuator) Channels() int {
	return len(a.outputs)
}

func (a *Actuator) IsActive(channel int) bool {
	return a.checkChannel(channel) == nil && a.active[channel]
}

func (a *Actuator) IsHeating(channel int) bool {
	return a.checkChannel(channel) == nil && a.heating[channel]
}

// ActiveChannels returns the indices of all active channels in ascending order
func (a *Actuator) ActiveChannels() []int {
	var result []int
	for channel, active := range a.active {
		if active {
			result = append(result, channel)
		}
	}
	return result
}
