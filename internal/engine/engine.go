// Package engine ties sensors, safety, control and actuation of the heated bed together
// into a single controller instance which is advanced one cycle at a time.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/markusressel/bed2go/internal/actuator"
	"github.com/markusressel/bed2go/internal/calibration"
	"github.com/markusressel/bed2go/internal/configuration"
	"github.com/markusressel/bed2go/internal/control"
	"github.com/markusressel/bed2go/internal/hardware"
	"github.com/markusressel/bed2go/internal/safety"
	"github.com/markusressel/bed2go/internal/sensors"
	"github.com/markusressel/bed2go/internal/setpoint"
	"github.com/markusressel/bed2go/internal/signal"
	"github.com/markusressel/bed2go/internal/ui"
)

var ErrUnknownSection = errors.New("unknown section")

type section struct {
	id       int
	channels []int
	target   float64
	output   hardware.PwmOutput

	average    float64
	source     control.AverageSource
	lastOutput int
}

// Engine is the controller state of the whole bed. All methods must be called
// from a single goroutine, readers from other goroutines use the Board.
type Engine struct {
	channelSections []int
	sections        []*section

	reader    *sensors.Reader
	samples   *cycleSamples
	latch     *safety.Latch
	monitor   *safety.Monitor
	actuator  *actuator.Actuator
	strategy  control.Strategy
	setpoints *setpoint.Reader

	signalEnabled bool
	signalRange   signal.Range
	debug         bool

	board *Board
	now   func() time.Time
}

func New(config configuration.Configuration, hw Hardware) (*Engine, error) {
	table, err := calibration.FromConfig(config.Calibration)
	if err != nil {
		return nil, err
	}
	strategy, err := control.New(config.Control)
	if err != nil {
		return nil, err
	}
	if len(hw.Sensors) != len(config.Channels) || len(hw.Relays) != len(config.Channels) {
		return nil, fmt.Errorf("expected io for %d channels", len(config.Channels))
	}

	e := &Engine{
		channelSections: make([]int, len(config.Channels)),
		strategy:        strategy,
		signalEnabled:   config.Signal.Enabled,
		signalRange:     signal.FromConfig(config.Signal),
		board:           NewBoard(),
		now:             time.Now,
	}

	for _, sectionConfig := range config.Sections {
		e.sections = append(e.sections, &section{
			id:         sectionConfig.ID,
			target:     sectionConfig.Target,
			output:     hw.Outputs[sectionConfig.ID],
			lastOutput: -1,
			source:     control.SourceDefault,
			average:    control.DefaultTemperature,
		})
	}
	for _, channelConfig := range config.Channels {
		index := channelConfig.ID - 1
		s, err := e.section(channelConfig.Section)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", channelConfig.ID, err)
		}
		s.channels = append(s.channels, index)
		e.channelSections[index] = channelConfig.Section
	}

	e.reader = sensors.NewReader(table, hw.Sensors, sensors.Config{
		RawMax:         config.RawMax,
		SampleInterval: config.SampleInterval,
		HistorySize:    config.HistorySize,
	})
	e.samples = &cycleSamples{}
	e.latch = &safety.Latch{}
	e.actuator = actuator.New(hw.Relays, config.RelayPolarity, e.latch)
	e.monitor = safety.NewMonitor(e.latch, e.samples, e.actuator, config.Safety.MaxTemperature)
	e.setpoints = setpoint.NewReader(hw.Setpoints, config.Signal.Timeout, func() signal.Range {
		return e.signalRange
	})

	return e, nil
}

// WithClock replaces the time source of the engine and its components, used by tests
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	e.reader.WithClock(now)
	e.monitor.WithClock(now)
	return e
}

func (e *Engine) section(id int) (*section, error) {
	for _, s := range e.sections {
		if s.id == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownSection, id)
}

// Init switches all segments off, like it is done on power up
func (e *Engine) Init() error {
	err := e.actuator.Init()
	e.Publish()
	return err
}

// OnTrip registers a listener for thermal safety trips
func (e *Engine) OnTrip(listener func(trip safety.Trip)) {
	e.monitor.OnTrip(listener)
}

func (e *Engine) Board() *Board {
	return e.board
}

func (e *Engine) Channels() int {
	return e.reader.Channels()
}

func (e *Engine) SectionIds() []int {
	var result []int
	for _, s := range e.sections {
		result = append(result, s.id)
	}
	return result
}

func (e *Engine) Activate(channel int) error {
	return e.actuator.Activate(channel)
}

// Deactivate switches a segment off, its control state starts fresh on the next activation
func (e *Engine) Deactivate(channel int) error {
	err := e.actuator.Deactivate(channel)
	e.strategy.ResetChannel(channel)
	return err
}

func (e *Engine) ActivateAll() error {
	return e.actuator.ActivateAll()
}

func (e *Engine) DeactivateAll() error {
	err := e.actuator.DeactivateAll()
	e.strategy.Reset()
	return err
}

func (e *Engine) ActiveChannels() []int {
	return e.actuator.ActiveChannels()
}

func (e *Engine) SafetyTriggered() bool {
	return e.monitor.Triggered()
}

// ResetSafety clears the thermal safety latch, segments stay off until activated again.
// No control ran while latched, so all control state is dropped.
func (e *Engine) ResetSafety() {
	e.monitor.ResetThermalSafety()
	e.strategy.Reset()
	ui.Info("Thermal safety state reset")
}

func (e *Engine) Debug() bool {
	return e.debug
}

func (e *Engine) SetDebug(enabled bool) {
	e.debug = enabled
}

func (e *Engine) SignalRange() signal.Range {
	return e.signalRange
}

// SetSignalRange replaces the pwm to temperature mapping of the setpoint inputs and outputs
func (e *Engine) SetSignalRange(r signal.Range) error {
	if err := r.Validate(); err != nil {
		return err
	}
	e.signalRange = r
	ui.Info("Signal range set to %s", r)
	return nil
}

// Target returns the target temperature of the given section
func (e *Engine) Target(sectionId int) (float64, error) {
	s, err := e.section(sectionId)
	if err != nil {
		return 0, err
	}
	return s.target, nil
}

// SetTarget overrides the target temperature of the given section
func (e *Engine) SetTarget(sectionId int, target float64) error {
	s, err := e.section(sectionId)
	if err != nil {
		return err
	}
	s.target = target
	return nil
}

// ReadTemperature reads a single channel, see sensors.Reader
func (e *Engine) ReadTemperature(channel int) (float64, error) {
	return e.reader.ReadTemperature(channel)
}
