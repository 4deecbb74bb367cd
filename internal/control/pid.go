package control

import (
	"time"

	"github.com/markusressel/bed2go/internal/configuration"
	"github.com/markusressel/bed2go/internal/ui"
	"github.com/markusressel/bed2go/internal/util"
)

// Pid runs an independent pid loop for every channel on the error between the section
// target and the temperature of that channel. A channel is driven while the loop output
// is above Threshold.
type Pid struct {
	config configuration.PidConfig
	loops  map[int]*util.PidLoop
	output map[int]float64
}

func NewPid(config configuration.PidConfig) *Pid {
	return &Pid{
		config: config,
		loops:  map[int]*util.PidLoop{},
		output: map[int]float64{},
	}
}

func (p *Pid) Name() string {
	return "pid"
}

func (p *Pid) loop(channel int) *util.PidLoop {
	loop, ok := p.loops[channel]
	if !ok {
		loop = util.NewPidLoop(p.config.P, p.config.I, p.config.D, 0, 1).
			WithIntegralLimit(p.config.IntegralLimit)
		p.loops[channel] = loop
	}
	return loop
}

func (p *Pid) Decide(section int, target float64, readings []ChannelReading, now time.Time) []Decision {
	var decisions []Decision
	for _, reading := range readings {
		if !reading.Active {
			continue
		}
		if !reading.Valid() {
			// never heat blind, the accumulator keeps its state until the sensor recovers
			decisions = append(decisions, Decision{Channel: reading.Channel, Action: DriveOff})
			continue
		}

		output := p.loop(reading.Channel).LoopAt(target, reading.Temperature, now)
		p.output[reading.Channel] = output

		action := DriveOff
		if output > p.config.Threshold {
			action = DriveOn
		}
		ui.Debug("Section %d channel %d: %.1f°C, target %.1f°C, pid output %.2f -> %s",
			section, reading.Channel+1, reading.Temperature, target, output, action)
		decisions = append(decisions, Decision{Channel: reading.Channel, Action: action})
	}
	return decisions
}

// Output returns the last loop output of the given channel
func (p *Pid) Output(channel int) (float64, bool) {
	output, ok := p.output[channel]
	return output, ok
}

// ResetChannel drops the loop of the given channel, its next update starts like the first one
func (p *Pid) ResetChannel(channel int) {
	delete(p.loops, channel)
	delete(p.output, channel)
}

func (p *Pid) Reset() {
	p.loops = map[int]*util.PidLoop{}
	p.output = map[int]float64{}
}
