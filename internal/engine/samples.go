package engine

import (
	"github.com/markusressel/bed2go/internal/sensors"
)

// cycleSamples holds the readings taken once at the start of a control cycle.
// The safety scan and the control step both work on these, so every channel is
// sampled exactly once per cycle regardless of the sample interval.
type cycleSamples struct {
	readings []sensors.Reading
}

func (s *cycleSamples) take(reader *sensors.Reader) {
	s.readings = s.readings[:0]
	for channel := 0; channel < reader.Channels(); channel++ {
		s.readings = append(s.readings, reader.Read(channel))
	}
}

func (s *cycleSamples) Channels() int {
	return len(s.readings)
}

func (s *cycleSamples) ReadTemperature(channel int) (float64, error) {
	if channel < 0 || channel >= len(s.readings) {
		return sensors.FaultTemperature, sensors.ErrUnknownChannel
	}
	reading := s.readings[channel]
	return reading.Temperature, reading.Err
}

func (s *cycleSamples) reading(channel int) sensors.Reading {
	return s.readings[channel]
}
