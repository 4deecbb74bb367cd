package engine

import (
	"fmt"

	"github.com/markusressel/bed2go/internal/actuator"
	"github.com/markusressel/bed2go/internal/configuration"
	"github.com/markusressel/bed2go/internal/hardware"
)

// Hardware holds the io of all channels and sections. Sensors and Relays are indexed by
// channel index (id - 1), Outputs and Setpoints by section id.
type Hardware struct {
	Sensors   []hardware.AnalogInput
	Relays    []hardware.DigitalOutput
	Outputs   map[int]hardware.PwmOutput
	Setpoints map[int]hardware.PulseInput
}

// NewHardware creates the io described by the given configuration
func NewHardware(config configuration.Configuration) (Hardware, error) {
	result := Hardware{
		Sensors:   make([]hardware.AnalogInput, len(config.Channels)),
		Relays:    make([]hardware.DigitalOutput, len(config.Channels)),
		Outputs:   map[int]hardware.PwmOutput{},
		Setpoints: map[int]hardware.PulseInput{},
	}

	idleHigh := actuator.IdleHigh(config.RelayPolarity)
	for _, channelConfig := range config.Channels {
		index := channelConfig.ID - 1
		if index < 0 || index >= len(config.Channels) {
			return Hardware{}, fmt.Errorf("channel %d: id out of range", channelConfig.ID)
		}

		sensor, err := hardware.NewAnalogInput(channelConfig.Sensor)
		if err != nil {
			return Hardware{}, fmt.Errorf("channel %d: sensor: %w", channelConfig.ID, err)
		}
		relay, err := hardware.NewDigitalOutput(channelConfig.Relay, idleHigh)
		if err != nil {
			return Hardware{}, fmt.Errorf("channel %d: relay: %w", channelConfig.ID, err)
		}
		result.Sensors[index] = sensor
		result.Relays[index] = relay
	}

	for _, sectionConfig := range config.Sections {
		if sectionConfig.Output != nil {
			output, err := hardware.NewPwmOutput(*sectionConfig.Output)
			if err != nil {
				return Hardware{}, fmt.Errorf("section %d: output: %w", sectionConfig.ID, err)
			}
			result.Outputs[sectionConfig.ID] = output
		}
		if sectionConfig.Setpoint != nil {
			input, err := hardware.NewPulseInput(*sectionConfig.Setpoint)
			if err != nil {
				return Hardware{}, fmt.Errorf("section %d: setpoint: %w", sectionConfig.ID, err)
			}
			result.Setpoints[sectionConfig.ID] = input
		}
	}

	return result, nil
}
