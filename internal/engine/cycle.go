package engine

import (
	"context"
	"errors"

	"github.com/markusressel/bed2go/internal/actuator"
	"github.com/markusressel/bed2go/internal/control"
	"github.com/markusressel/bed2go/internal/ui"
)

// Cycle advances the controller by one step:
// setpoints, one sample of every channel, thermal safety, control decisions, aggregate outputs and finally the status board.
// Control is skipped entirely while the thermal safety latch is set.
func (e *Engine) Cycle(ctx context.Context) {
	if e.signalEnabled {
		e.updateTargets(ctx)
	}

	e.samples.take(e.reader)
	triggered := e.monitor.CheckThermalSafety()

	for _, s := range e.sections {
		readings := e.readSection(s)
		if !triggered {
			e.applyControl(s, readings)
		}
		e.updateOutput(s, readings)
	}

	e.Publish()
}

func (e *Engine) updateTargets(ctx context.Context) {
	for _, s := range e.sections {
		if !e.setpoints.HasInput(s.id) {
			continue
		}
		target, err := e.setpoints.ReadTarget(ctx, s.id)
		if err != nil {
			ui.Debug("Section %d: keeping target %.1f°C: %v", s.id, s.target, err)
			continue
		}
		s.target = target
	}
}

func (e *Engine) readSection(s *section) []control.ChannelReading {
	readings := make([]control.ChannelReading, 0, len(s.channels))
	for _, channel := range s.channels {
		readings = append(readings, control.ChannelReading{
			Reading: e.samples.reading(channel),
			Active:  e.actuator.IsActive(channel),
		})
	}
	return readings
}

func (e *Engine) applyControl(s *section, readings []control.ChannelReading) {
	decisions := e.strategy.Decide(s.id, s.target, readings, e.now())
	for _, decision := range decisions {
		var err error
		switch decision.Action {
		case control.DriveOn:
			err = e.actuator.SetHeating(decision.Channel, true)
		case control.DriveOff:
			err = e.actuator.SetHeating(decision.Channel, false)
		}
		if err != nil && !errors.Is(err, actuator.ErrSafetyLatched) {
			ui.Warning("Section %d: unable to drive channel %d: %v", s.id, decision.Channel+1, err)
		}
	}
}

func (e *Engine) updateOutput(s *section, readings []control.ChannelReading) {
	value, avg, source := control.AggregateOutput(readings, e.signalRange)
	s.average = avg
	s.source = source
	if s.output == nil {
		return
	}
	if err := s.output.SetDuty(value); err != nil {
		ui.Warning("Section %d: unable to write output: %v", s.id, err)
		return
	}
	s.lastOutput = value
	ui.Debug("Section %d: average %.1f°C (%s) -> output %d", s.id, avg, source, value)
}
