// Package control decides which heating segments of a section are driven.
package control

import (
	"fmt"
	"time"

	"github.com/markusressel/bed2go/internal/configuration"
	"github.com/markusressel/bed2go/internal/sensors"
)

type Action int

const (
	// Hold keeps the relay in its current state
	Hold Action = iota
	DriveOn
	DriveOff
)

func (a Action) String() string {
	switch a {
	case DriveOn:
		return "on"
	case DriveOff:
		return "off"
	default:
		return "hold"
	}
}

type Decision struct {
	Channel int
	Action  Action
}

// ChannelReading is the reading of a channel of the section together with its active flag
type ChannelReading struct {
	sensors.Reading
	Active bool
}

// Strategy computes the drive decisions of the active channels of a section
type Strategy interface {
	Name() string

	// Decide returns one decision for every active channel in readings
	Decide(section int, target float64, readings []ChannelReading, now time.Time) []Decision

	// Reset drops all accumulated state
	Reset()
	// ResetChannel drops the accumulated state of a single channel
	ResetChannel(channel int)
}

func New(config configuration.ControlConfig) (Strategy, error) {
	switch config.Strategy {
	case configuration.StrategyHysteresis:
		return &Hysteresis{Band: config.Hysteresis.Band}, nil
	case configuration.StrategyPid:
		return NewPid(config.Pid), nil
	}
	return nil, fmt.Errorf("unsupported control strategy: %s", config.Strategy)
}
